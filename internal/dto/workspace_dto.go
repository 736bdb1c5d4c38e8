package dto

import (
	"time"

	"github.com/google/uuid"
)

type OpenFolderRequest struct {
	Path string `json:"path" validate:"required"`
}

// ProcessOverrides lets a request bypass the stored selections.
// Empty fields fall back to the user's settings.
type ProcessOverrides struct {
	ApiKeyName string `json:"api_key_name"`
	Model      string `json:"model"`
	Prompt     string `json:"prompt"`
}

type RenameRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=auto-increment error"`
}

type UpdateFileNameRequest struct {
	NewName string `json:"new_name" validate:"required"`
}

type SetSelectedRequest struct {
	Selected bool `json:"selected"`
}

type BatchReportResponse struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type RenameOutcomeResponse struct {
	OldName       string `json:"old_name"`
	RequestedName string `json:"requested_name"`
	FinalName     string `json:"final_name"`
	Renamed       bool   `json:"renamed"`
	Error         string `json:"error,omitempty"`
}

type RenameRecordResponse struct {
	Id            uuid.UUID `json:"id"`
	Folder        string    `json:"folder"`
	OldName       string    `json:"old_name"`
	RequestedName string    `json:"requested_name"`
	FinalName     string    `json:"final_name"`
	Mode          string    `json:"mode"`
	Reasoning     string    `json:"reasoning,omitempty"`
	Rating        int       `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Items []RenameRecordResponse `json:"items"`
	Total int64                  `json:"total"`
}
