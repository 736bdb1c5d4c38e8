package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RenameRecord is one row of the rename journal. Metadata holds the AI
// reasoning and rating when the name came from a suggestion.
type RenameRecord struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_rename_records_user_created,priority:1"`
	Folder        string         `gorm:"type:text;not null"`
	OldName       string         `gorm:"type:text;not null"`
	RequestedName string         `gorm:"type:text;not null"`
	FinalName     string         `gorm:"type:text;not null"`
	Mode          string         `gorm:"type:varchar(20);not null"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index:idx_rename_records_user_created,priority:2"`
}

func (RenameRecord) TableName() string {
	return "rename_records"
}
