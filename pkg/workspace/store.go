package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-renamer-be/pkg/fsaccess"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const logModule = "WorkspaceStore"

// ProcessRequest carries the resolved AI settings for one processing run.
type ProcessRequest struct {
	ApiKey string
	Model  string
	Prompt string
}

type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Processed  int `json:"processed"`
	Failed     int `json:"failed"`
}

// Snapshot is a deep copy of the working set at one version.
type Snapshot struct {
	Version uint64                   `json:"version"`
	Folder  string                   `json:"folder"`
	Files   []renamer.FileDescriptor `json:"files"`
	Stats   Stats                    `json:"stats"`
}

// BatchReport aggregates one batch run.
type BatchReport struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type Options struct {
	Namer    naming.Namer
	Executor *renamer.Executor
	Notifier Notifier
	Journal  Journal
	Logger   Logger
	Tracer   trace.Tracer

	// Concurrency caps in-flight AI calls of a batch. 0 means unbounded.
	Concurrency int
	Retry       RetryPolicy
	// DefaultModel is used when a request leaves Model empty.
	DefaultModel string
}

// Store owns the working set of one selected folder. Callers read
// snapshots and issue commands; they never mutate descriptors directly.
type Store struct {
	namer        naming.Namer
	executor     *renamer.Executor
	notifier     Notifier
	journal      Journal
	logger       Logger
	tracer       trace.Tracer
	concurrency  int
	retry        RetryPolicy
	defaultModel string

	mu         sync.Mutex
	dir        fsaccess.Directory
	files      []renamer.FileDescriptor
	generation uint64
	version    uint64
	ticket     uint64
	inflight   map[string]uint64
	subs       map[int]chan Snapshot
	nextSub    int
	closed     bool
}

func NewStore(opts Options) *Store {
	s := &Store{
		namer:        opts.Namer,
		executor:     opts.Executor,
		notifier:     opts.Notifier,
		journal:      opts.Journal,
		logger:       opts.Logger,
		tracer:       opts.Tracer,
		concurrency:  opts.Concurrency,
		retry:        opts.Retry,
		defaultModel: opts.DefaultModel,
		inflight:     make(map[string]uint64),
		subs:         make(map[int]chan Snapshot),
	}
	if s.executor == nil {
		s.executor = renamer.NewExecutor()
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("ai-renamer-be/pkg/workspace")
	}
	if s.concurrency < 0 {
		s.concurrency = 0
	}
	if s.defaultModel == "" {
		s.defaultModel = naming.DefaultModel
	}
	return s
}

// LoadDirectory replaces the working set with the supported files of dir.
// In-flight AI results from an earlier load are discarded.
func (s *Store) LoadDirectory(ctx context.Context, dir fsaccess.Directory) error {
	files, err := renamer.ReadDirectory(ctx, dir)
	if err != nil {
		s.logger.Error(logModule, "Failed to read folder", map[string]interface{}{
			"folder": dir.Name(),
			"error":  err.Error(),
		})
		s.notify(LevelError, "Failed to select folder")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.dir = dir
	s.replaceLocked(files)
	return nil
}

// Refresh re-reads the current folder from disk.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	dir, gen := s.dir, s.generation
	s.mu.Unlock()
	if dir == nil {
		return ErrNoDirectory
	}
	return s.reload(ctx, dir, gen)
}

func (s *Store) reload(ctx context.Context, dir fsaccess.Directory, gen uint64) error {
	files, err := renamer.ReadDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("re-read %s: %w", dir.Name(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A different folder was loaded meanwhile; it owns the working set now.
	if s.dir != dir || s.generation != gen {
		return nil
	}
	s.replaceLocked(files)
	return nil
}

func (s *Store) replaceLocked(files []renamer.FileDescriptor) {
	s.files = files
	s.generation++
	s.inflight = make(map[string]uint64)
	s.changedLocked()
}

// UpdateFileName is the manual override: any status becomes processed with
// exactly the supplied name and no AI call is made.
func (s *Store) UpdateFileName(name, newName string) error {
	s.mu.Lock()
	i := s.indexLocked(name)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	f := &s.files[i]
	f.NewName = newName
	f.Status = renamer.StatusProcessed
	f.Error = ""
	delete(s.inflight, name)
	s.changedLocked()
	s.mu.Unlock()

	s.notify(LevelSuccess, "Filename updated")
	return nil
}

// RemoveFile drops a descriptor from the working set. The file on disk is
// left alone.
func (s *Store) RemoveFile(name string) error {
	s.mu.Lock()
	i := s.indexLocked(name)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	delete(s.inflight, name)
	s.changedLocked()
	s.mu.Unlock()

	s.notify(LevelInfo, "File removed from list")
	return nil
}

func (s *Store) SetSelected(name string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if s.files[i].Selected != selected {
		s.files[i].Selected = selected
		s.changedLocked()
	}
	return nil
}

func (s *Store) SelectAll(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		s.files[i].Selected = selected
	}
	s.changedLocked()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest snapshot. Slow
// readers skip intermediate versions.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends all subscriptions. Further commands that load a folder fail.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version: s.version,
		Files:   make([]renamer.FileDescriptor, len(s.files)),
	}
	if s.dir != nil {
		snap.Folder = s.dir.Name()
	}
	copy(snap.Files, s.files)
	snap.Stats.Total = len(s.files)
	for _, f := range s.files {
		switch f.Status {
		case renamer.StatusPending:
			snap.Stats.Pending++
		case renamer.StatusProcessing:
			snap.Stats.Processing++
		case renamer.StatusProcessed:
			snap.Stats.Processed++
		case renamer.StatusFailed:
			snap.Stats.Failed++
		}
	}
	return snap
}

func (s *Store) changedLocked() {
	s.version++
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) indexLocked(name string) int {
	for i := range s.files {
		if s.files[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) folderLocked() string {
	if s.dir == nil {
		return ""
	}
	return s.dir.Name()
}

func (s *Store) notify(level Level, message string) {
	s.mu.Lock()
	folder := s.folderLocked()
	s.mu.Unlock()
	s.notifier.Notify(Notification{
		Level:   level,
		Message: message,
		Folder:  folder,
		Time:    time.Now(),
	})
}
