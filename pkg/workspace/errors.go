package workspace

import (
	"errors"

	"ai-renamer-be/pkg/renamer"
)

var (
	ErrNoApiKey       = errors.New("no api key selected")
	ErrEmptyPrompt    = errors.New("prompt is empty")
	ErrEmptySelection = errors.New("no files selected")
	ErrNotProcessed   = errors.New("file must be processed first")
	ErrNoDirectory    = errors.New("no folder loaded")
	ErrFileNotFound   = errors.New("file not in working set")
	ErrStoreClosed    = errors.New("workspace closed")
)

// UserMessage returns the notification text for err.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoApiKey):
		return "Please select an API key"
	case errors.Is(err, ErrEmptyPrompt):
		return "Please enter a prompt"
	case errors.Is(err, ErrEmptySelection):
		return "Please select at least one file"
	case errors.Is(err, ErrNotProcessed):
		return "File must be processed first"
	case errors.Is(err, ErrNoDirectory):
		return "Please select a folder"
	case errors.Is(err, renamer.ErrPermissionDenied):
		return "Write permission denied"
	case errors.Is(err, renamer.ErrReadPermissionDenied):
		return "Failed to select folder"
	default:
		return err.Error()
	}
}
