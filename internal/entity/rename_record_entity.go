package entity

import (
	"time"

	"github.com/google/uuid"
)

type RenameMetadata struct {
	Reasoning string `json:"reasoning,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

type RenameRecord struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Folder        string
	OldName       string
	RequestedName string
	FinalName     string
	Mode          string
	Metadata      RenameMetadata
	CreatedAt     time.Time
}
