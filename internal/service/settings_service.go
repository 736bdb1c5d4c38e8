package service

import (
	"context"
	"errors"
	"strings"

	"ai-renamer-be/internal/dto"
	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/internal/repository/contract"
	"ai-renamer-be/internal/repository/specification"
	"ai-renamer-be/internal/repository/unitofwork"
	"ai-renamer-be/pkg/workspace"

	"github.com/google/uuid"
)

type ISettingsService interface {
	GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)

	ListApiKeys(ctx context.Context, userId uuid.UUID) ([]*dto.ApiKeyResponse, error)
	SaveApiKey(ctx context.Context, userId uuid.UUID, req *dto.SaveApiKeyRequest) (*dto.ApiKeyResponse, error)
	UpdateApiKey(ctx context.Context, userId uuid.UUID, req *dto.UpdateApiKeyRequest) (*dto.ApiKeyResponse, error)
	DeleteApiKey(ctx context.Context, userId, id uuid.UUID) error

	ListPrompts(ctx context.Context, userId uuid.UUID) ([]*dto.PromptResponse, error)
	SavePrompt(ctx context.Context, userId uuid.UUID, req *dto.SavePromptRequest) (*dto.PromptResponse, error)
	UpdatePrompt(ctx context.Context, userId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptResponse, error)
	DeletePrompt(ctx context.Context, userId, id uuid.UUID) error

	// ResolveProcessRequest turns the stored selections into the credentials
	// and prompt for one AI run. Overrides win over stored values.
	ResolveProcessRequest(ctx context.Context, userId uuid.UUID, overrides dto.ProcessOverrides) (workspace.ProcessRequest, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	sealer     *Sealer
	logger     logger.ILogger
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory, sealer *Sealer, log logger.ILogger) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		sealer:     sealer,
		logger:     log,
	}
}

func (s *settingsService) load(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserSettings, error) {
	settings, err := uow.SettingsRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return entity.NewDefaultSettings(userId), nil
	}
	return settings, nil
}

func (s *settingsService) GetSettings(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error) {
	settings, err := s.load(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := s.load(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.SelectedModel != nil {
		settings.SelectedModel = strings.TrimSpace(*req.SelectedModel)
	}
	if req.SelectedApiKey != nil {
		settings.SelectedApiKey = *req.SelectedApiKey
	}
	if req.SelectedPrompt != nil {
		settings.SelectedPrompt = *req.SelectedPrompt
	}
	if req.CustomPrompt != nil {
		settings.CustomPrompt = *req.CustomPrompt
	}
	if settings.SelectedModel == "" {
		settings.SelectedModel = entity.DefaultModel
	}

	if err := uow.SettingsRepository().Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) ListApiKeys(ctx context.Context, userId uuid.UUID) ([]*dto.ApiKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	keys, err := uow.ApiKeyRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ApiKeyResponse, 0, len(keys))
	for _, k := range keys {
		res = append(res, s.toApiKeyResponse(k))
	}
	return res, nil
}

// SaveApiKey upserts by name: saving an existing name replaces its secret.
func (s *settingsService) SaveApiKey(ctx context.Context, userId uuid.UUID, req *dto.SaveApiKeyRequest) (*dto.ApiKeyResponse, error) {
	name := strings.TrimSpace(req.KeyName)
	sealed, err := s.sealer.Seal(strings.TrimSpace(req.KeyValue))
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.ApiKeyRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByKeyName{Name: name})
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.KeyValue = sealed
		if err := uow.ApiKeyRepository().Update(ctx, existing); err != nil {
			return nil, nameConflict(err)
		}
		return s.toApiKeyResponse(existing), nil
	}

	key := &entity.ApiKey{
		Id:       uuid.New(),
		UserId:   userId,
		KeyName:  name,
		KeyValue: sealed,
	}
	if err := uow.ApiKeyRepository().Create(ctx, key); err != nil {
		return nil, nameConflict(err)
	}
	s.logger.Info("SettingsService", "API key saved", map[string]interface{}{"user_id": userId, "key_name": name})
	return s.toApiKeyResponse(key), nil
}

func (s *settingsService) UpdateApiKey(ctx context.Context, userId uuid.UUID, req *dto.UpdateApiKeyRequest) (*dto.ApiKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ApiKeyRepository()

	key, err := repo.FindOne(ctx, specification.ByID{ID: req.Id}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrApiKeyNotFound
	}

	name := strings.TrimSpace(req.KeyName)
	if name != key.KeyName {
		clash, err := repo.FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByKeyName{Name: name})
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, ErrDuplicateName
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	oldName := key.KeyName
	key.KeyName = name
	if v := strings.TrimSpace(req.KeyValue); v != "" {
		if key.KeyValue, err = s.sealer.Seal(v); err != nil {
			return nil, err
		}
	}
	if err := uow.ApiKeyRepository().Update(ctx, key); err != nil {
		return nil, nameConflict(err)
	}

	// Keep the selection pointing at the renamed key.
	if oldName != name {
		settings, err := s.load(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		if settings.SelectedApiKey == oldName {
			settings.SelectedApiKey = name
			if err := uow.SettingsRepository().Upsert(ctx, settings); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.toApiKeyResponse(key), nil
}

func (s *settingsService) DeleteApiKey(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	key, err := uow.ApiKeyRepository().FindOne(ctx, specification.ByID{ID: id}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if key == nil {
		return ErrApiKeyNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ApiKeyRepository().Delete(ctx, id); err != nil {
		return err
	}
	settings, err := s.load(ctx, uow, userId)
	if err != nil {
		return err
	}
	if settings.SelectedApiKey == key.KeyName {
		settings.SelectedApiKey = ""
		if err := uow.SettingsRepository().Upsert(ctx, settings); err != nil {
			return err
		}
	}
	return uow.Commit()
}

func (s *settingsService) ListPrompts(ctx context.Context, userId uuid.UUID) ([]*dto.PromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prompts, err := uow.PromptRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		res = append(res, toPromptResponse(p))
	}
	return res, nil
}

// SavePrompt upserts by name, mirroring SaveApiKey.
func (s *settingsService) SavePrompt(ctx context.Context, userId uuid.UUID, req *dto.SavePromptRequest) (*dto.PromptResponse, error) {
	name := strings.TrimSpace(req.PromptName)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.PromptRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByPromptName{Name: name})
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.PromptText = req.PromptText
		if err := uow.PromptRepository().Update(ctx, existing); err != nil {
			return nil, nameConflict(err)
		}
		return toPromptResponse(existing), nil
	}

	prompt := &entity.Prompt{
		Id:         uuid.New(),
		UserId:     userId,
		PromptName: name,
		PromptText: req.PromptText,
	}
	if err := uow.PromptRepository().Create(ctx, prompt); err != nil {
		return nil, nameConflict(err)
	}
	return toPromptResponse(prompt), nil
}

func (s *settingsService) UpdatePrompt(ctx context.Context, userId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PromptRepository()

	prompt, err := repo.FindOne(ctx, specification.ByID{ID: req.Id}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	name := strings.TrimSpace(req.PromptName)
	if name != prompt.PromptName {
		clash, err := repo.FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByPromptName{Name: name})
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, ErrDuplicateName
		}
	}

	prompt.PromptName = name
	prompt.PromptText = req.PromptText
	if err := repo.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return toPromptResponse(prompt), nil
}

func (s *settingsService) DeletePrompt(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: id}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if prompt == nil {
		return ErrPromptNotFound
	}
	return uow.PromptRepository().Delete(ctx, id)
}

func (s *settingsService) ResolveProcessRequest(ctx context.Context, userId uuid.UUID, overrides dto.ProcessOverrides) (workspace.ProcessRequest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := s.load(ctx, uow, userId)
	if err != nil {
		return workspace.ProcessRequest{}, err
	}

	req := workspace.ProcessRequest{
		Model:  settings.SelectedModel,
		Prompt: settings.CustomPrompt,
	}
	if overrides.Model != "" {
		req.Model = overrides.Model
	}
	if overrides.Prompt != "" {
		req.Prompt = overrides.Prompt
	}

	keyName := settings.SelectedApiKey
	if overrides.ApiKeyName != "" {
		keyName = overrides.ApiKeyName
	}
	if keyName == "" {
		// Empty key is reported by the workspace with its own message.
		return req, nil
	}

	key, err := uow.ApiKeyRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId}, specification.ByKeyName{Name: keyName})
	if err != nil {
		return workspace.ProcessRequest{}, err
	}
	if key == nil {
		return req, nil
	}
	if req.ApiKey, err = s.sealer.Open(key.KeyValue); err != nil {
		s.logger.Error("SettingsService", "Failed to open sealed API key", map[string]interface{}{"user_id": userId, "key_name": keyName, "error": err.Error()})
		return workspace.ProcessRequest{}, ErrSealedValue
	}
	return req, nil
}

func toSettingsResponse(s *entity.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Theme:          s.Theme,
		SelectedModel:  s.SelectedModel,
		SelectedApiKey: s.SelectedApiKey,
		SelectedPrompt: s.SelectedPrompt,
		CustomPrompt:   s.CustomPrompt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (s *settingsService) toApiKeyResponse(k *entity.ApiKey) *dto.ApiKeyResponse {
	masked := "••••"
	if plain, err := s.sealer.Open(k.KeyValue); err == nil {
		masked = MaskSecret(plain)
	}
	return &dto.ApiKeyResponse{
		Id:        k.Id,
		KeyName:   k.KeyName,
		Masked:    masked,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func toPromptResponse(p *entity.Prompt) *dto.PromptResponse {
	return &dto.PromptResponse{
		Id:         p.Id,
		PromptName: p.PromptName,
		PromptText: p.PromptText,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// nameConflict covers the race between the name check and the insert.
func nameConflict(err error) error {
	if errors.Is(err, contract.ErrDuplicate) {
		return ErrDuplicateName
	}
	return err
}
