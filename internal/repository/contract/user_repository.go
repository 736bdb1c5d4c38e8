package contract

import (
	"context"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/repository/specification"
)

// UserRepository covers what sign-up and sign-in need. Accounts are never
// edited through the API.
type UserRepository interface {
	// Create returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
