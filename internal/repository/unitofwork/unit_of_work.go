package unitofwork

import (
	"context"

	"ai-renamer-be/internal/repository/contract"
)

// RepositoryFactory hands out one UnitOfWork per request.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork groups the repositories of one request. Between Begin and
// Commit/Rollback every repository it returns shares the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SettingsRepository() contract.SettingsRepository
	ApiKeyRepository() contract.ApiKeyRepository
	PromptRepository() contract.PromptRepository
	RenameRecordRepository() contract.RenameRecordRepository
}
