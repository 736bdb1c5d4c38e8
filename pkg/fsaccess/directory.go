package fsaccess

import (
	"context"
	"errors"
)

type PermissionMode string

const (
	ModeRead      PermissionMode = "read"
	ModeReadWrite PermissionMode = "readwrite"
)

type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// Entry is one child of a directory as returned by enumeration.
type Entry struct {
	Name string
	Kind EntryKind
}

var (
	ErrNotFound    = errors.New("entry not found")
	ErrNotAFile    = errors.New("entry is not a file")
	ErrInvalidName = errors.New("invalid entry name")
)

// Lister enumerates the entries of a directory in enumeration order.
type Lister interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// Directory is a user-granted folder capability. Permission grants may be
// revoked between calls, so callers ask for them on every write.
type Directory interface {
	Lister

	Name() string
	RequestPermission(ctx context.Context, mode PermissionMode) (PermissionState, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Stat(ctx context.Context, name string) (Entry, bool, error)
	Move(ctx context.Context, oldName, newName string) error
}
