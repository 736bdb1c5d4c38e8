package implementation

import (
	"context"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/mapper"
	"ai-renamer-be/internal/model"
	"ai-renamer-be/internal/repository/contract"
	"ai-renamer-be/internal/repository/scope"
	"ai-renamer-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RenameRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RenameRecordMapper
}

func NewRenameRecordRepository(db *gorm.DB) contract.RenameRecordRepository {
	return &RenameRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewRenameRecordMapper(),
	}
}

func (r *RenameRecordRepositoryImpl) Create(ctx context.Context, record *entity.RenameRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

// FindAll returns newest first.
func (r *RenameRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenameRecord, error) {
	var ms []*model.RenameRecord
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.NewestFirst), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *RenameRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.RenameRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
