package dto

import (
	"time"

	"github.com/google/uuid"
)

type SettingsResponse struct {
	Theme          string    `json:"theme"`
	SelectedModel  string    `json:"selected_model"`
	SelectedApiKey string    `json:"selected_api_key"`
	SelectedPrompt string    `json:"selected_prompt"`
	CustomPrompt   string    `json:"custom_prompt"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// UpdateSettingsRequest is a partial update: nil fields keep their value.
type UpdateSettingsRequest struct {
	Theme          *string `json:"theme" validate:"omitempty,oneof=light dark"`
	SelectedModel  *string `json:"selected_model" validate:"omitempty,max=100"`
	SelectedApiKey *string `json:"selected_api_key" validate:"omitempty,max=255"`
	SelectedPrompt *string `json:"selected_prompt" validate:"omitempty,max=255"`
	CustomPrompt   *string `json:"custom_prompt"`
}

type SaveApiKeyRequest struct {
	KeyName  string `json:"key_name" validate:"required,max=255"`
	KeyValue string `json:"key_value" validate:"required"`
}

type UpdateApiKeyRequest struct {
	Id       uuid.UUID `json:"-"`
	KeyName  string    `json:"key_name" validate:"required,max=255"`
	KeyValue string    `json:"key_value"` // empty keeps the stored secret
}

// ApiKeyResponse never carries the secret, only a masked hint.
type ApiKeyResponse struct {
	Id        uuid.UUID `json:"id"`
	KeyName   string    `json:"key_name"`
	Masked    string    `json:"masked_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SavePromptRequest struct {
	PromptName string `json:"prompt_name" validate:"required,max=255"`
	PromptText string `json:"prompt_text" validate:"required"`
}

type UpdatePromptRequest struct {
	Id         uuid.UUID `json:"-"`
	PromptName string    `json:"prompt_name" validate:"required,max=255"`
	PromptText string    `json:"prompt_text" validate:"required"`
}

type PromptResponse struct {
	Id         uuid.UUID `json:"id"`
	PromptName string    `json:"prompt_name"`
	PromptText string    `json:"prompt_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
