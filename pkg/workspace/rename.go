package workspace

import (
	"context"
	"errors"
	"fmt"

	"ai-renamer-be/pkg/fsaccess"
	"ai-renamer-be/pkg/renamer"
)

// RenameAll applies every processed descriptor's NewName to disk, one file
// at a time. A failed file is marked failed and the loop continues; losing
// write permission stops it. The working set is re-read afterwards.
func (s *Store) RenameAll(ctx context.Context, mode renamer.RenameMode) (BatchReport, error) {
	s.mu.Lock()
	if s.dir == nil {
		s.mu.Unlock()
		s.notify(LevelWarning, UserMessage(ErrNoDirectory))
		return BatchReport{}, ErrNoDirectory
	}
	var targets []renamer.FileDescriptor
	for _, f := range s.files {
		if f.Status == renamer.StatusProcessed {
			targets = append(targets, f)
		}
	}
	dir, gen := s.dir, s.generation
	s.mu.Unlock()

	report := BatchReport{Total: len(targets)}
	for _, f := range targets {
		out := s.executor.Rename(ctx, dir, f.Name, f.NewName, mode)
		if out.Err != nil {
			if errors.Is(out.Err, renamer.ErrPermissionDenied) {
				s.notify(LevelError, UserMessage(out.Err))
				s.logger.Warn(logModule, "Batch rename aborted", map[string]interface{}{
					"folder":  dir.Name(),
					"renamed": report.Succeeded,
				})
				if report.Succeeded > 0 {
					s.resync(ctx, dir, gen)
				}
				return report, out.Err
			}
			report.Failed++
			s.markRenameFailed(gen, f.Name, out.Message())
			s.logger.Warn(logModule, "Rename failed", map[string]interface{}{
				"folder": dir.Name(),
				"file":   f.Name,
				"target": f.NewName,
				"error":  out.Message(),
			})
			continue
		}
		report.Succeeded++
		s.record(ctx, dir, f, out, mode)
	}

	s.notify(LevelSuccess, fmt.Sprintf("Successfully renamed %d file(s)!", report.Succeeded))
	if err := s.resync(ctx, dir, gen); err != nil {
		return report, err
	}
	return report, nil
}

// RenameOne renames a single processed descriptor and re-reads the folder.
// Per-file failures are reported through the outcome; the error return is
// for preconditions and lost permission.
func (s *Store) RenameOne(ctx context.Context, name string, mode renamer.RenameMode) (renamer.RenameOutcome, error) {
	s.mu.Lock()
	if s.dir == nil {
		s.mu.Unlock()
		s.notify(LevelWarning, UserMessage(ErrNoDirectory))
		return renamer.RenameOutcome{}, ErrNoDirectory
	}
	i := s.indexLocked(name)
	if i < 0 {
		s.mu.Unlock()
		return renamer.RenameOutcome{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	f := s.files[i]
	dir, gen := s.dir, s.generation
	s.mu.Unlock()

	if f.Status != renamer.StatusProcessed {
		s.notify(LevelWarning, UserMessage(ErrNotProcessed))
		return renamer.RenameOutcome{OldName: name}, ErrNotProcessed
	}

	out := s.executor.Rename(ctx, dir, f.Name, f.NewName, mode)
	if out.Err != nil {
		if errors.Is(out.Err, renamer.ErrPermissionDenied) {
			s.notify(LevelError, UserMessage(out.Err))
			return out, out.Err
		}
		s.markRenameFailed(gen, f.Name, out.Message())
		s.notify(LevelError, "Failed to rename file: "+out.Message())
		return out, nil
	}

	s.record(ctx, dir, f, out, mode)
	s.notify(LevelSuccess, fmt.Sprintf("Successfully renamed to %s!", out.FinalName))
	if err := s.resync(ctx, dir, gen); err != nil {
		return out, err
	}
	return out, nil
}

func (s *Store) markRenameFailed(gen uint64, name, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	i := s.indexLocked(name)
	// A re-process started meanwhile keeps its own status.
	if i < 0 || s.files[i].Status != renamer.StatusProcessed {
		return
	}
	s.files[i].Status = renamer.StatusFailed
	s.files[i].Error = message
	s.changedLocked()
}

func (s *Store) record(ctx context.Context, dir fsaccess.Directory, f renamer.FileDescriptor, out renamer.RenameOutcome, mode renamer.RenameMode) {
	if mode == "" {
		mode = renamer.ModeAutoIncrement
	}
	s.logger.Info(logModule, "File renamed", map[string]interface{}{
		"folder":    dir.Name(),
		"from":      out.OldName,
		"requested": out.RequestedName,
		"to":        out.FinalName,
	})
	if s.journal == nil {
		return
	}
	err := s.journal.Record(ctx, JournalEntry{
		Folder:        dir.Name(),
		OldName:       out.OldName,
		RequestedName: out.RequestedName,
		FinalName:     out.FinalName,
		Mode:          mode,
		Reasoning:     f.Reasoning,
		Rating:        f.Rating,
	})
	if err != nil {
		s.logger.Error(logModule, "Failed to journal rename", map[string]interface{}{
			"file":  out.OldName,
			"error": err.Error(),
		})
	}
}

func (s *Store) resync(ctx context.Context, dir fsaccess.Directory, gen uint64) error {
	if err := s.reload(ctx, dir, gen); err != nil {
		s.logger.Error(logModule, "Failed to re-read folder", map[string]interface{}{
			"folder": dir.Name(),
			"error":  err.Error(),
		})
		s.notify(LevelError, "Error during renaming: "+err.Error())
		return err
	}
	return nil
}
