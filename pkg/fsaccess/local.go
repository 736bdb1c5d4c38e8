package fsaccess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalDirectory exposes one OS folder. Only direct children are reachable.
type LocalDirectory struct {
	root       string
	allowWrite bool
}

var _ Directory = (*LocalDirectory)(nil)

func OpenLocalDirectory(path string, allowWrite bool) (*LocalDirectory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &LocalDirectory{root: abs, allowWrite: allowWrite}, nil
}

func (d *LocalDirectory) Name() string {
	return filepath.Base(d.root)
}

func (d *LocalDirectory) Path() string {
	return d.root
}

func (d *LocalDirectory) RequestPermission(ctx context.Context, mode PermissionMode) (PermissionState, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	if _, err := os.Stat(d.root); err != nil {
		return PermissionDenied, nil
	}
	switch mode {
	case ModeRead:
		if canAccess(d.root, false) {
			return PermissionGranted, nil
		}
		return PermissionDenied, nil
	case ModeReadWrite:
		if d.allowWrite && canAccess(d.root, true) {
			return PermissionGranted, nil
		}
		return PermissionDenied, nil
	default:
		return PermissionDenied, fmt.Errorf("unknown permission mode %q", mode)
	}
}

func (d *LocalDirectory) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		kind := KindFile
		if de.IsDir() {
			kind = KindDirectory
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}
	return entries, nil
}

func (d *LocalDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.child(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotAFile
	}
	return os.ReadFile(p)
}

func (d *LocalDirectory) Stat(ctx context.Context, name string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	p, err := d.child(name)
	if err != nil {
		return Entry{}, false, err
	}
	info, err := os.Lstat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	kind := KindFile
	if info.IsDir() {
		kind = KindDirectory
	}
	return Entry{Name: name, Kind: kind}, true, nil
}

// Move renames a file within the directory. os.Rename is atomic when source
// and target share a directory.
func (d *LocalDirectory) Move(ctx context.Context, oldName, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := d.child(oldName)
	if err != nil {
		return err
	}
	dst, err := d.child(newName)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if info.IsDir() {
		return ErrNotAFile
	}
	return os.Rename(src, dst)
}

func (d *LocalDirectory) child(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(d.root, name), nil
}
