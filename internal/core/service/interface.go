package service

import (
	"context"
	"time"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// The service layer depends on these interfaces, not on a concrete storage
// implementation. Not-found lookups return the matching typed error
// (AccountNotFound, UserNotFound, TransactionNotFound).
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go -package=mocks

type AccountRepository interface {
	FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus, unregisteredAt time.Time) error
}

type AccountUserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.AccountUser, error)
}

type TransactionRepository interface {
	Save(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
