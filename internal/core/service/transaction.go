package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
	"github.com/JJae-story/SimpleAccount/internal/core/locker"
)

// TransactionService is the transaction engine. Every balance mutation runs
// as one critical section under the account's lock: load, validate, mutate,
// append the ledger record. The lock is released on every exit path.
type TransactionService struct {
	accountRepo     AccountRepository
	userRepo        AccountUserRepository
	transactionRepo TransactionRepository
	locker          *locker.Locker
	now             func() time.Time
}

func NewTransactionService(
	accountRepo AccountRepository,
	userRepo AccountUserRepository,
	transactionRepo TransactionRepository,
	locker *locker.Locker,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		now:             time.Now,
	}
}

// UseBalance decrements the account balance by amount and appends a SUCCESS
// ledger record. On rejection it returns the typed error without writing
// anything; recording the FAILED attempt is the caller's follow-up via
// SaveFailedUse.
func (s *TransactionService) UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.NewError(domain.InvalidAmount)
	}

	release, err := s.locker.Acquire(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateUseBalance(user, account, amount); err != nil {
		return nil, err
	}

	if err := account.UseBalance(amount); err != nil {
		return nil, err
	}
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, account.Balance); err != nil {
		return nil, err
	}

	return s.saveTransaction(ctx, domain.TransactionTypeUse, domain.TransactionResultSuccess, account, amount)
}

// SaveFailedUse appends a FAILED USE record with the unchanged balance as
// snapshot. Each call appends one record; duplicates across caller retries
// are acceptable and not deduplicated.
func (s *TransactionService) SaveFailedUse(ctx context.Context, accountNumber string, amount int64) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeUse, accountNumber, amount)
}

// CancelBalance reverses a prior use transaction in full and appends a
// SUCCESS CANCEL record. The same failure-recording split as UseBalance
// applies, via SaveFailedCancel.
func (s *TransactionService) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.NewError(domain.InvalidAmount)
	}

	release, err := s.locker.Acquire(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	transaction, err := s.transactionRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateCancelBalance(transaction, account, amount, s.now()); err != nil {
		return nil, err
	}

	if err := account.CancelBalance(amount); err != nil {
		return nil, err
	}
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, account.Balance); err != nil {
		return nil, err
	}

	return s.saveTransaction(ctx, domain.TransactionTypeCancel, domain.TransactionResultSuccess, account, amount)
}

// SaveFailedCancel appends a FAILED CANCEL record, analogous to SaveFailedUse.
func (s *TransactionService) SaveFailedCancel(ctx context.Context, accountNumber string, amount int64) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeCancel, accountNumber, amount)
}

// QueryTransaction is a lock-free point lookup of a past ledger record.
func (s *TransactionService) QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindByTransactionID(ctx, transactionID)
}

func (s *TransactionService) saveFailedTransaction(ctx context.Context, transactionType domain.TransactionType, accountNumber string, amount int64) error {
	release, err := s.locker.Acquire(ctx, accountNumber)
	if err != nil {
		return err
	}
	defer release()

	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return err
	}

	if _, err := s.saveTransaction(ctx, transactionType, domain.TransactionResultFailed, account, amount); err != nil {
		slog.Error("failed to append FAILED ledger record",
			"error", err, "account_number", accountNumber, "type", transactionType)
		return err
	}
	return nil
}

func (s *TransactionService) saveTransaction(ctx context.Context, transactionType domain.TransactionType, result domain.TransactionResult, account *domain.Account, amount int64) (*domain.Transaction, error) {
	return s.transactionRepo.Save(ctx, &domain.Transaction{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		AccountNumber:   account.AccountNumber,
		Type:            transactionType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    s.now(),
	})
}

func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
