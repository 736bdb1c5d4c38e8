package implementation

import (
	"context"
	"errors"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/mapper"
	"ai-renamer-be/internal/model"
	"ai-renamer-be/internal/repository/contract"
	"ai-renamer-be/internal/repository/scope"
	"ai-renamer-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) contract.SettingsRepository {
	return &SettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *SettingsRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	var m model.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SettingsToEntity(&m), nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.SettingsToModel(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "selected_model", "selected_api_key", "selected_prompt", "custom_prompt", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*settings = *r.mapper.SettingsToEntity(m)
	return nil
}

type ApiKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewApiKeyRepository(db *gorm.DB) contract.ApiKeyRepository {
	return &ApiKeyRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *ApiKeyRepositoryImpl) Create(ctx context.Context, key *entity.ApiKey) error {
	m := r.mapper.ApiKeyToModel(key)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	*key = *r.mapper.ApiKeyToEntity(m)
	return nil
}

func (r *ApiKeyRepositoryImpl) Update(ctx context.Context, key *entity.ApiKey) error {
	m := r.mapper.ApiKeyToModel(key)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	*key = *r.mapper.ApiKeyToEntity(m)
	return nil
}

func (r *ApiKeyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ApiKey{}).Error
}

func (r *ApiKeyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApiKey, error) {
	var m model.ApiKey
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ApiKeyToEntity(&m), nil
}

func (r *ApiKeyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApiKey, error) {
	var ms []*model.ApiKey
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OldestFirst), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ApiKeysToEntities(ms), nil
}

type PromptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewPromptRepository(db *gorm.DB) contract.PromptRepository {
	return &PromptRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *PromptRepositoryImpl) Create(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.PromptToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	*prompt = *r.mapper.PromptToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) Update(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.PromptToModel(prompt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err)
	}
	*prompt = *r.mapper.PromptToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Prompt{}).Error
}

func (r *PromptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	var m model.Prompt
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PromptToEntity(&m), nil
}

func (r *PromptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	var ms []*model.Prompt
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OldestFirst), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.PromptsToEntities(ms), nil
}
