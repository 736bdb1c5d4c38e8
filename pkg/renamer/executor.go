package renamer

import (
	"context"
	"fmt"

	"ai-renamer-be/pkg/filename"
	"ai-renamer-be/pkg/fsaccess"
)

// Executor performs single renames inside a directory. It never touches
// descriptors; callers re-read the directory afterwards.
type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

// Rename moves oldName to newName. Write permission is requested on every
// call since grants can be revoked between calls.
func (e *Executor) Rename(ctx context.Context, dir fsaccess.Directory, oldName, newName string, mode RenameMode) RenameOutcome {
	out := RenameOutcome{OldName: oldName, RequestedName: newName}

	if mode == "" {
		mode = ModeAutoIncrement
	}

	if err := filename.ValidateEntryName(newName); err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrRenameFailed, err)
		return out
	}

	state, err := dir.RequestPermission(ctx, fsaccess.ModeReadWrite)
	if err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		return out
	}
	if state != fsaccess.PermissionGranted {
		out.Err = ErrPermissionDenied
		return out
	}

	// The entry being renamed counts too, so keeping a name still increments.
	target := newName
	_, exists, err := dir.Stat(ctx, newName)
	if err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrRenameFailed, err)
		return out
	}
	if exists {
		switch mode {
		case ModeError:
			out.Err = fmt.Errorf("%w: %s", ErrNameConflict, newName)
			return out
		default:
			base, ext := filename.SplitName(newName)
			target, err = filename.NextAvailableName(ctx, dir, base, ext)
			if err != nil {
				out.Err = fmt.Errorf("%w: %v", ErrRenameFailed, err)
				return out
			}
		}
	}

	if err := dir.Move(ctx, oldName, target); err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrRenameFailed, err)
		return out
	}

	out.FinalName = target
	out.Renamed = true
	return out
}
