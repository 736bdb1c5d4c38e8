package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrApiKeyNotFound     = errors.New("api key not found")
	ErrPromptNotFound     = errors.New("prompt not found")
	ErrDuplicateName      = errors.New("name already in use")
	ErrInvalidFolder      = errors.New("folder must be inside the workspace root")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrSealedValue        = errors.New("stored api key cannot be decrypted")
)
