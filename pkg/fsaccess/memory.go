package fsaccess

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type memoryEntry struct {
	name    string
	kind    EntryKind
	content []byte
}

// MemoryDirectory is an in-process Directory. Entries keep insertion order.
type MemoryDirectory struct {
	mu          sync.RWMutex
	name        string
	entries     []*memoryEntry
	permissions map[PermissionMode]PermissionState
	moveErr     map[string]error
	moves       int
}

var _ Directory = (*MemoryDirectory)(nil)

func NewMemoryDirectory(name string) *MemoryDirectory {
	return &MemoryDirectory{
		name: name,
		permissions: map[PermissionMode]PermissionState{
			ModeRead:      PermissionGranted,
			ModeReadWrite: PermissionGranted,
		},
		moveErr: make(map[string]error),
	}
}

func (d *MemoryDirectory) AddFile(name string, content []byte) *MemoryDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, &memoryEntry{name: name, kind: KindFile, content: content})
	return d
}

func (d *MemoryDirectory) AddDirectory(name string) *MemoryDirectory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, &memoryEntry{name: name, kind: KindDirectory})
	return d
}

// SetPermission fixes the answer RequestPermission gives for mode.
func (d *MemoryDirectory) SetPermission(mode PermissionMode, state PermissionState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permissions[mode] = state
}

// FailMove makes the next moves of oldName fail with err.
func (d *MemoryDirectory) FailMove(oldName string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveErr[oldName] = err
}

func (d *MemoryDirectory) MoveCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.moves
}

// Names returns entry names in enumeration order.
func (d *MemoryDirectory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.name
	}
	return names
}

func (d *MemoryDirectory) Name() string {
	return d.name
}

func (d *MemoryDirectory) RequestPermission(ctx context.Context, mode PermissionMode) (PermissionState, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	state, ok := d.permissions[mode]
	if !ok {
		return PermissionDenied, fmt.Errorf("unknown permission mode %q", mode)
	}
	return state, nil
}

func (d *MemoryDirectory) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = Entry{Name: e.name, Kind: e.kind}
	}
	return out, nil
}

func (d *MemoryDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	e := d.find(name)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.kind != KindFile {
		return nil, ErrNotAFile
	}
	return append([]byte(nil), e.content...), nil
}

func (d *MemoryDirectory) Stat(ctx context.Context, name string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	e := d.find(name)
	if e == nil {
		return Entry{}, false, nil
	}
	return Entry{Name: e.name, Kind: e.kind}, true, nil
}

// Move renames in place so enumeration order is kept. An existing target is
// replaced, matching os.Rename.
func (d *MemoryDirectory) Move(ctx context.Context, oldName, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if newName == "" || newName == "." || newName == ".." || strings.ContainsAny(newName, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.moveErr[oldName]; ok {
		return err
	}
	e := d.find(oldName)
	if e == nil {
		return ErrNotFound
	}
	if e.kind != KindFile {
		return ErrNotAFile
	}
	if oldName != newName {
		for i, other := range d.entries {
			if other.name == newName {
				d.entries = append(d.entries[:i], d.entries[i+1:]...)
				break
			}
		}
	}
	e.name = newName
	d.moves++
	return nil
}

func (d *MemoryDirectory) find(name string) *memoryEntry {
	for _, e := range d.entries {
		if e.name == name {
			return e
		}
	}
	return nil
}
