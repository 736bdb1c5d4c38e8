package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-renamer-be/pkg/fsaccess"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// job is one descriptor marked processing, identified by its ticket so a
// late result can tell whether it still owns the descriptor.
type job struct {
	name   string
	ticket uint64
}

func (r ProcessRequest) validate() error {
	if r.ApiKey == "" {
		return ErrNoApiKey
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ProcessAll asks the AI for a name for every selected file. Preconditions
// are checked before any I/O; a failing one changes nothing. Per-file
// failures are recorded on the descriptor and never stop siblings.
func (s *Store) ProcessAll(ctx context.Context, req ProcessRequest) (BatchReport, error) {
	if err := req.validate(); err != nil {
		s.notify(LevelWarning, UserMessage(err))
		return BatchReport{}, err
	}

	s.mu.Lock()
	if s.dir == nil {
		s.mu.Unlock()
		s.notify(LevelWarning, UserMessage(ErrNoDirectory))
		return BatchReport{}, ErrNoDirectory
	}
	selected := 0
	var jobs []job
	for i := range s.files {
		f := &s.files[i]
		if !f.Selected {
			continue
		}
		selected++
		if f.Status == renamer.StatusProcessing {
			continue
		}
		jobs = append(jobs, s.startLocked(f))
	}
	if selected == 0 {
		s.mu.Unlock()
		s.notify(LevelWarning, UserMessage(ErrEmptySelection))
		return BatchReport{}, ErrEmptySelection
	}
	dir, gen := s.dir, s.generation
	if len(jobs) > 0 {
		s.changedLocked()
	}
	s.mu.Unlock()

	report := BatchReport{Total: len(jobs)}
	if len(jobs) == 0 {
		return report, nil
	}

	s.notify(LevelInfo, fmt.Sprintf("Processing %d file(s)...", len(jobs)))
	s.logger.Info(logModule, "Batch processing started", map[string]interface{}{
		"folder":      dir.Name(),
		"files":       len(jobs),
		"concurrency": s.concurrency,
	})

	results := make([]error, len(jobs))
	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = s.runJob(ctx, dir, gen, j, req)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range results {
		if err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	if report.Failed == 0 {
		s.notify(LevelSuccess, "Processing complete!")
	} else {
		s.notify(LevelWarning, fmt.Sprintf("Processing complete with %d error(s)", report.Failed))
	}
	s.logger.Info(logModule, "Batch processing finished", map[string]interface{}{
		"folder":    dir.Name(),
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})
	return report, nil
}

// ProcessOne runs the AI for a single descriptor regardless of selection
// and returns the descriptor as it stands afterwards.
func (s *Store) ProcessOne(ctx context.Context, name string, req ProcessRequest) (renamer.FileDescriptor, error) {
	if err := req.validate(); err != nil {
		s.notify(LevelWarning, UserMessage(err))
		return renamer.FileDescriptor{}, err
	}

	s.mu.Lock()
	if s.dir == nil {
		s.mu.Unlock()
		s.notify(LevelWarning, UserMessage(ErrNoDirectory))
		return renamer.FileDescriptor{}, ErrNoDirectory
	}
	i := s.indexLocked(name)
	if i < 0 {
		s.mu.Unlock()
		return renamer.FileDescriptor{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if s.files[i].Status == renamer.StatusProcessing {
		current := s.files[i]
		s.mu.Unlock()
		return current, nil
	}
	j := s.startLocked(&s.files[i])
	dir, gen := s.dir, s.generation
	s.changedLocked()
	s.mu.Unlock()

	s.notify(LevelInfo, "Processing file...")
	if err := s.runJob(ctx, dir, gen, j, req); err != nil {
		s.notify(LevelError, "Processing failed")
	} else {
		s.notify(LevelSuccess, "File processed successfully!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if k := s.indexLocked(name); k >= 0 {
		return s.files[k], nil
	}
	return renamer.FileDescriptor{Name: name}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}

func (s *Store) startLocked(f *renamer.FileDescriptor) job {
	s.ticket++
	f.Status = renamer.StatusProcessing
	f.Error = ""
	s.inflight[f.Name] = s.ticket
	return job{name: f.Name, ticket: s.ticket}
}

// runJob reads the file, calls the namer and applies the outcome. The
// returned error is the per-file failure, if any.
func (s *Store) runJob(ctx context.Context, dir fsaccess.Directory, gen uint64, j job, req ProcessRequest) error {
	ctx, span := s.tracer.Start(ctx, "workspace.process_file", trace.WithAttributes(
		attribute.String("workspace.folder", dir.Name()),
		attribute.String("workspace.file", j.name),
		attribute.String("ai.model", s.model(req)),
	))
	defer span.End()

	res, err := s.generate(ctx, dir, j.name, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("ai.error_kind", string(naming.KindOf(err))))
		s.logger.Warn(logModule, "File processing failed", map[string]interface{}{
			"folder": dir.Name(),
			"file":   j.name,
			"error":  err.Error(),
		})
	} else {
		span.SetAttributes(
			attribute.String("ai.new_name", res.NewName),
			attribute.Int("ai.rating", res.Rating),
		)
	}

	if !s.apply(gen, j, res, err) {
		span.AddEvent("result discarded")
	}
	return err
}

func (s *Store) generate(ctx context.Context, dir fsaccess.Directory, name string, req ProcessRequest) (*naming.Result, error) {
	if s.namer == nil {
		return nil, errors.New("no naming provider configured")
	}
	content, err := dir.ReadFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	model := s.model(req)
	return s.retry.do(ctx, func() (*naming.Result, error) {
		return s.namer.GenerateFileName(ctx, content, name, req.Prompt, req.ApiKey, model)
	}, func(err error, wait time.Duration) {
		s.logger.Warn(logModule, "Retrying AI call", map[string]interface{}{
			"file":  name,
			"error": err.Error(),
			"wait":  wait.String(),
		})
	})
}

func (s *Store) model(req ProcessRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return s.defaultModel
}

// apply writes a result back only if the descriptor still exists in the
// same load and is still waiting on this exact call.
func (s *Store) apply(gen uint64, j job, res *naming.Result, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.inflight[j.name] != j.ticket {
		return false
	}
	i := s.indexLocked(j.name)
	if i < 0 {
		return false
	}
	next := renamer.StatusProcessed
	if err != nil {
		next = renamer.StatusFailed
	}
	f := &s.files[i]
	if f.Status != renamer.StatusProcessing || renamer.ValidateTransition(f.Status, next) != nil {
		return false
	}
	delete(s.inflight, j.name)

	f.Status = next
	if err != nil {
		f.Error = err.Error()
	} else {
		f.NewName = res.NewName
		f.Reasoning = res.Reasoning
		f.Rating = res.Rating
		f.Error = ""
	}
	s.changedLocked()
	return true
}
