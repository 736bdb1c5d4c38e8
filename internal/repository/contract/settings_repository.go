package contract

import (
	"context"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SettingsRepository interface {
	// FindByUser returns nil when the user never saved settings.
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	Upsert(ctx context.Context, settings *entity.UserSettings) error
}

type ApiKeyRepository interface {
	Create(ctx context.Context, key *entity.ApiKey) error
	Update(ctx context.Context, key *entity.ApiKey) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApiKey, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApiKey, error)
}

type PromptRepository interface {
	Create(ctx context.Context, prompt *entity.Prompt) error
	Update(ctx context.Context, prompt *entity.Prompt) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error)
}
