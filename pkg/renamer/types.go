package renamer

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
)

// Manual edits bypass this table and always land on processed.
var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusProcessing: true,
	},
	StatusProcessing: {
		StatusProcessed: true,
		StatusFailed:    true,
	},
	StatusProcessed: {
		StatusProcessing: true, // re-process a selected file
		StatusFailed:     true, // rename failure
	},
	StatusFailed: {
		StatusProcessing: true,
	},
}

func ValidateTransition(from, to Status) error {
	allowed, ok := validTransitions[from]
	if !ok {
		return fmt.Errorf("unknown status %q", from)
	}
	if !allowed[to] {
		return fmt.Errorf("invalid status transition %q -> %q", from, to)
	}
	return nil
}

// FileDescriptor is one candidate file in the working set. Name is the key.
type FileDescriptor struct {
	Name      string `json:"name"`
	NewName   string `json:"newName"`
	Status    Status `json:"status"`
	Selected  bool   `json:"selected"`
	Reasoning string `json:"reasoning,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Error     string `json:"error,omitempty"`
}

type RenameMode string

const (
	ModeAutoIncrement RenameMode = "auto-increment"
	ModeError         RenameMode = "error"
)

// ParseRenameMode maps an empty string to the auto-increment default.
func ParseRenameMode(s string) (RenameMode, error) {
	switch RenameMode(s) {
	case "", ModeAutoIncrement:
		return ModeAutoIncrement, nil
	case ModeError:
		return ModeError, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRenameMode, s)
	}
}

var (
	ErrPermissionDenied = errors.New("write permission denied")
	ErrNameConflict     = errors.New("file with that name already exists")
	ErrRenameFailed     = errors.New("rename failed")

	ErrUnknownRenameMode = errors.New("unknown rename mode")
)

// RenameOutcome reports one rename attempt. FinalName differs from
// RequestedName when the target was auto-incremented.
type RenameOutcome struct {
	OldName       string `json:"oldName"`
	RequestedName string `json:"requestedName"`
	FinalName     string `json:"finalName,omitempty"`
	Renamed       bool   `json:"renamed"`
	Err           error  `json:"-"`
}

// Message is the text shown next to a failed descriptor.
func (o RenameOutcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
