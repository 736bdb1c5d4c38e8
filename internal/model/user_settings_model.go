package model

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings is the server-side counterpart of the client preference blob.
// SelectedApiKey and SelectedPrompt hold names, not ids.
type UserSettings struct {
	UserId         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Theme          string    `gorm:"type:varchar(20);not null;default:'light'"`
	SelectedModel  string    `gorm:"type:varchar(100);not null;default:'gemini-2.0-flash-exp'"`
	SelectedApiKey string    `gorm:"type:varchar(255)"`
	SelectedPrompt string    `gorm:"type:varchar(255)"`
	CustomPrompt   string    `gorm:"type:text"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
