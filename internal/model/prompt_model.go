package model

import (
	"time"

	"github.com/google/uuid"
)

type Prompt struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_prompts_user_name,priority:1"`
	PromptName string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_prompts_user_name,priority:2"`
	PromptText string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Prompt) TableName() string {
	return "prompts"
}
