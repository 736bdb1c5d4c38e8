package model

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_api_keys_user_name,priority:1"`
	KeyName   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_api_keys_user_name,priority:2"`
	KeyValue  string    `gorm:"type:text;not null"` // sealed, base64
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
