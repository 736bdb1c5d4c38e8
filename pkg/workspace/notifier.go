package workspace

import (
	"context"
	"time"

	"ai-renamer-be/pkg/renamer"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a transient, auto-dismissing message for the user.
type Notification struct {
	Level   Level     `json:"type"`
	Message string    `json:"message"`
	Folder  string    `json:"folder,omitempty"`
	Time    time.Time `json:"time"`
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// JournalEntry describes one rename that reached the filesystem.
type JournalEntry struct {
	Folder        string
	OldName       string
	RequestedName string
	FinalName     string
	Mode          renamer.RenameMode
	Reasoning     string
	Rating        int
}

// Journal is called once per successful rename.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

type JournalFunc func(ctx context.Context, entry JournalEntry) error

func (f JournalFunc) Record(ctx context.Context, entry JournalEntry) error { return f(ctx, entry) }

// Logger is the subset of the application logger the store writes to.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
