package service

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"ai-renamer-be/internal/dto"
	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/internal/repository/memory"
	"ai-renamer-be/internal/repository/specification"
	"ai-renamer-be/internal/repository/unitofwork"
	"ai-renamer-be/internal/websocket"
	"ai-renamer-be/pkg/events"
	"ai-renamer-be/pkg/fsaccess"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const workspaceModule = "WorkspaceService"

// EventPublisher is the publishing half of the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IWorkspaceService interface {
	Snapshot(ctx context.Context, userId uuid.UUID) workspace.Snapshot
	OpenFolder(ctx context.Context, userId uuid.UUID, path string) (workspace.Snapshot, error)
	Refresh(ctx context.Context, userId uuid.UUID) (workspace.Snapshot, error)

	ProcessAll(ctx context.Context, userId uuid.UUID, overrides dto.ProcessOverrides) (*dto.BatchReportResponse, error)
	ProcessOne(ctx context.Context, userId uuid.UUID, name string, overrides dto.ProcessOverrides) (renamer.FileDescriptor, error)
	RenameAll(ctx context.Context, userId uuid.UUID, mode string) (*dto.BatchReportResponse, error)
	RenameOne(ctx context.Context, userId uuid.UUID, name, mode string) (*dto.RenameOutcomeResponse, error)

	UpdateFileName(ctx context.Context, userId uuid.UUID, name, newName string) error
	SetSelected(ctx context.Context, userId uuid.UUID, name string, selected bool) error
	SelectAll(ctx context.Context, userId uuid.UUID, selected bool)
	RemoveFile(ctx context.Context, userId uuid.UUID, name string) error

	History(ctx context.Context, userId uuid.UUID, folder string, limit, offset int) (*dto.HistoryResponse, error)
	// Close drops the user's working set and ends its snapshot stream.
	Close(userId uuid.UUID)
}

type WorkspaceOptions struct {
	Root        string
	AllowWrite  bool
	DefaultMode renamer.RenameMode

	Namer        naming.Namer
	Concurrency  int
	Retry        workspace.RetryPolicy
	DefaultModel string
}

type workspaceService struct {
	opts       WorkspaceOptions
	workspaces *memory.WorkspaceRepository
	group      singleflight.Group

	uowFactory    unitofwork.RepositoryFactory
	settings      ISettingsService
	notifications IPublisherService
	events        EventPublisher
	delivery      NotificationDelivery
	logger        logger.ILogger
}

// NewWorkspaceService wires one workspace.Store per user. notifications,
// events and delivery may be nil.
func NewWorkspaceService(
	opts WorkspaceOptions,
	workspaces *memory.WorkspaceRepository,
	uowFactory unitofwork.RepositoryFactory,
	settings ISettingsService,
	notifications IPublisherService,
	eventPublisher EventPublisher,
	delivery NotificationDelivery,
	log logger.ILogger,
) IWorkspaceService {
	if opts.DefaultMode == "" {
		opts.DefaultMode = renamer.ModeAutoIncrement
	}
	return &workspaceService{
		opts:          opts,
		workspaces:    workspaces,
		uowFactory:    uowFactory,
		settings:      settings,
		notifications: notifications,
		events:        eventPublisher,
		delivery:      delivery,
		logger:        log,
	}
}

// store returns the user's workspace, creating it at most once even under
// concurrent first requests.
func (s *workspaceService) store(userId uuid.UUID) *workspace.Store {
	if st, ok := s.workspaces.Get(userId); ok {
		return st
	}
	v, _, _ := s.group.Do(userId.String(), func() (interface{}, error) {
		if st, ok := s.workspaces.Get(userId); ok {
			return st, nil
		}
		st := workspace.NewStore(workspace.Options{
			Namer:        s.opts.Namer,
			Notifier:     s.notifierFor(userId),
			Journal:      s.journalFor(userId),
			Logger:       s.logger,
			Concurrency:  s.opts.Concurrency,
			Retry:        s.opts.Retry,
			DefaultModel: s.opts.DefaultModel,
		})
		s.workspaces.Save(userId, st)
		go s.forwardSnapshots(userId, st)
		return st, nil
	})
	return v.(*workspace.Store)
}

func (s *workspaceService) forwardSnapshots(userId uuid.UUID, st *workspace.Store) {
	updates, _ := st.Subscribe()
	for snap := range updates {
		if s.delivery != nil {
			s.delivery.Send(userId, websocket.TypeSnapshot, snap)
		}
	}
}

func (s *workspaceService) notifierFor(userId uuid.UUID) workspace.Notifier {
	return workspace.NotifierFunc(func(n workspace.Notification) {
		if s.notifications == nil {
			return
		}
		if err := s.notifications.PublishNotification(context.Background(), userId, n); err != nil {
			s.logger.Warn(workspaceModule, "Failed to publish notification", map[string]interface{}{"user_id": userId, "error": err.Error()})
		}
	})
}

// journalFor persists every successful rename and announces it on the bus.
// A failed announcement is logged, the rename itself already happened.
func (s *workspaceService) journalFor(userId uuid.UUID) workspace.Journal {
	return workspace.JournalFunc(func(ctx context.Context, e workspace.JournalEntry) error {
		record := &entity.RenameRecord{
			Id:            uuid.New(),
			UserId:        userId,
			Folder:        e.Folder,
			OldName:       e.OldName,
			RequestedName: e.RequestedName,
			FinalName:     e.FinalName,
			Mode:          string(e.Mode),
			Metadata:      entity.RenameMetadata{Reasoning: e.Reasoning, Rating: e.Rating},
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.RenameRecordRepository().Create(ctx, record); err != nil {
			return err
		}
		s.publish(ctx, events.FileRenamed(userId.String(), e.Folder, e.OldName, e.FinalName, time.Now()))
		return nil
	})
}

func (s *workspaceService) publish(ctx context.Context, ev events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn(workspaceModule, "Failed to publish event", map[string]interface{}{"type": ev.EventType(), "error": err.Error()})
	}
}

func (s *workspaceService) Snapshot(_ context.Context, userId uuid.UUID) workspace.Snapshot {
	return s.store(userId).Snapshot()
}

func (s *workspaceService) OpenFolder(ctx context.Context, userId uuid.UUID, path string) (workspace.Snapshot, error) {
	full, err := s.resolve(path)
	if err != nil {
		return workspace.Snapshot{}, err
	}
	dir, err := fsaccess.OpenLocalDirectory(full, s.opts.AllowWrite)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return workspace.Snapshot{}, ErrFolderNotFound
		}
		s.logger.Warn(workspaceModule, "Failed to open folder", map[string]interface{}{"user_id": userId, "path": path, "error": err.Error()})
		return workspace.Snapshot{}, ErrFolderNotFound
	}

	st := s.store(userId)
	if err := st.LoadDirectory(ctx, dir); err != nil {
		return workspace.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

// resolve maps a client path onto WORKSPACE_ROOT. Absolute paths and any
// path that leaves the root, symlinks included, are rejected.
func (s *workspaceService) resolve(path string) (string, error) {
	if filepath.IsAbs(path) || strings.ContainsRune(path, 0) {
		return "", ErrInvalidFolder
	}
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, path)
	if !within(root, full) {
		return "", ErrInvalidFolder
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", ErrFolderNotFound
	}
	realFull, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", ErrFolderNotFound
	}
	if !within(realRoot, realFull) {
		return "", ErrInvalidFolder
	}
	return realFull, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *workspaceService) Refresh(ctx context.Context, userId uuid.UUID) (workspace.Snapshot, error) {
	st := s.store(userId)
	if err := st.Refresh(ctx); err != nil {
		return workspace.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

func (s *workspaceService) ProcessAll(ctx context.Context, userId uuid.UUID, overrides dto.ProcessOverrides) (*dto.BatchReportResponse, error) {
	req, err := s.settings.ResolveProcessRequest(ctx, userId, overrides)
	if err != nil {
		return nil, err
	}

	st := s.store(userId)
	report, err := st.ProcessAll(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.BatchProcessed(userId.String(), st.Snapshot().Folder, report.Total, report.Succeeded, report.Failed, time.Now()))
	return toBatchReportResponse(report), nil
}

func (s *workspaceService) ProcessOne(ctx context.Context, userId uuid.UUID, name string, overrides dto.ProcessOverrides) (renamer.FileDescriptor, error) {
	req, err := s.settings.ResolveProcessRequest(ctx, userId, overrides)
	if err != nil {
		return renamer.FileDescriptor{}, err
	}
	return s.store(userId).ProcessOne(ctx, name, req)
}

func (s *workspaceService) mode(raw string) (renamer.RenameMode, error) {
	if raw == "" {
		return s.opts.DefaultMode, nil
	}
	return renamer.ParseRenameMode(raw)
}

func (s *workspaceService) RenameAll(ctx context.Context, userId uuid.UUID, rawMode string) (*dto.BatchReportResponse, error) {
	mode, err := s.mode(rawMode)
	if err != nil {
		return nil, err
	}

	st := s.store(userId)
	report, err := st.RenameAll(ctx, mode)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.BatchRenamed(userId.String(), st.Snapshot().Folder, report.Total, report.Succeeded, report.Failed, time.Now()))
	return toBatchReportResponse(report), nil
}

func (s *workspaceService) RenameOne(ctx context.Context, userId uuid.UUID, name, rawMode string) (*dto.RenameOutcomeResponse, error) {
	mode, err := s.mode(rawMode)
	if err != nil {
		return nil, err
	}

	out, err := s.store(userId).RenameOne(ctx, name, mode)
	if err != nil {
		return nil, err
	}
	res := &dto.RenameOutcomeResponse{
		OldName:       out.OldName,
		RequestedName: out.RequestedName,
		FinalName:     out.FinalName,
		Renamed:       out.Renamed,
	}
	if out.Err != nil {
		res.Error = out.Message()
	}
	return res, nil
}

func (s *workspaceService) UpdateFileName(_ context.Context, userId uuid.UUID, name, newName string) error {
	return s.store(userId).UpdateFileName(name, newName)
}

func (s *workspaceService) SetSelected(_ context.Context, userId uuid.UUID, name string, selected bool) error {
	return s.store(userId).SetSelected(name, selected)
}

func (s *workspaceService) SelectAll(_ context.Context, userId uuid.UUID, selected bool) {
	s.store(userId).SelectAll(selected)
}

func (s *workspaceService) RemoveFile(_ context.Context, userId uuid.UUID, name string) error {
	return s.store(userId).RemoveFile(name)
}

func (s *workspaceService) History(ctx context.Context, userId uuid.UUID, folder string, limit, offset int) (*dto.HistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filters := []specification.Specification{specification.UserOwnedBy{UserID: userId}}
	if folder != "" {
		filters = append(filters, specification.ByFolder{Folder: folder})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.RenameRecordRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}
	records, err := uow.RenameRecordRepository().FindAll(ctx, append(filters, specification.Pagination{Limit: limit, Offset: offset})...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RenameRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.RenameRecordResponse{
			Id:            r.Id,
			Folder:        r.Folder,
			OldName:       r.OldName,
			RequestedName: r.RequestedName,
			FinalName:     r.FinalName,
			Mode:          r.Mode,
			Reasoning:     r.Metadata.Reasoning,
			Rating:        r.Metadata.Rating,
			CreatedAt:     r.CreatedAt,
		})
	}
	return &dto.HistoryResponse{Items: items, Total: total}, nil
}

func (s *workspaceService) Close(userId uuid.UUID) {
	s.workspaces.Delete(userId)
}

func toBatchReportResponse(r workspace.BatchReport) *dto.BatchReportResponse {
	return &dto.BatchReportResponse{Total: r.Total, Succeeded: r.Succeeded, Failed: r.Failed}
}
