package contract

import (
	"context"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/repository/specification"
)

type RenameRecordRepository interface {
	Create(ctx context.Context, record *entity.RenameRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RenameRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
