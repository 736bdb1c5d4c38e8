package renamer

import (
	"context"
	"errors"
	"fmt"

	"ai-renamer-be/pkg/filename"
	"ai-renamer-be/pkg/fsaccess"
)

var ErrReadPermissionDenied = errors.New("read permission denied")

// ReadDirectory lists the supported files of dir in enumeration order as
// fresh pending descriptors. Unsupported and extensionless entries are
// skipped.
func ReadDirectory(ctx context.Context, dir fsaccess.Directory) ([]FileDescriptor, error) {
	state, err := dir.RequestPermission(ctx, fsaccess.ModeRead)
	if err != nil {
		return nil, fmt.Errorf("request read permission: %w", err)
	}
	if state != fsaccess.PermissionGranted {
		return nil, ErrReadPermissionDenied
	}

	entries, err := dir.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir.Name(), err)
	}

	files := make([]FileDescriptor, 0, len(entries))
	for _, e := range entries {
		if e.Kind != fsaccess.KindFile || !filename.IsSupported(e.Name) {
			continue
		}
		files = append(files, FileDescriptor{
			Name:     e.Name,
			Status:   StatusPending,
			Selected: true,
		})
	}
	return files, nil
}
