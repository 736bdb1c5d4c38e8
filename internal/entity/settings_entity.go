package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTheme = "light"
	DefaultModel = "gemini-2.0-flash-exp"
)

type UserSettings struct {
	UserId         uuid.UUID
	Theme          string
	SelectedModel  string
	SelectedApiKey string
	SelectedPrompt string
	CustomPrompt   string
	UpdatedAt      time.Time
}

// NewDefaultSettings is what a user sees before saving anything.
func NewDefaultSettings(userId uuid.UUID) *UserSettings {
	return &UserSettings{
		UserId:        userId,
		Theme:         DefaultTheme,
		SelectedModel: DefaultModel,
	}
}

type ApiKey struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	KeyName   string
	KeyValue  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Prompt struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	PromptName string
	PromptText string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
