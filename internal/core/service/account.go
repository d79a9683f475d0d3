package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

const (
	maxAccountsPerUser  = 10
	accountNumberLength = 10
)

// AccountService handles account lifecycle: open, close, list. Closing an
// account is a status transition, never a physical delete.
type AccountService struct {
	accountRepo AccountRepository
	userRepo    AccountUserRepository
	now         func() time.Time
}

func NewAccountService(accountRepo AccountRepository, userRepo AccountUserRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateAccount opens an ACTIVE account for the user with a freshly
// generated, globally unique 10-digit account number.
func (s *AccountService) CreateAccount(ctx context.Context, userID int64, initialBalance int64) (*domain.Account, error) {
	if initialBalance < 0 {
		return nil, domain.NewError(domain.InvalidRequest)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.accountRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxAccountsPerUser {
		return nil, domain.NewError(domain.MaxAccountsPerUser)
	}

	accountNumber, err := s.uniqueAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	return s.accountRepo.Save(ctx, &domain.Account{
		UserID:        user.ID,
		AccountNumber: accountNumber,
		Status:        domain.AccountStatusActive,
		Balance:       initialBalance,
		RegisteredAt:  s.now(),
	})
}

// uniqueAccountNumber draws random 10-digit numbers until one is unused.
func (s *AccountService) uniqueAccountNumber(ctx context.Context) (string, error) {
	for {
		accountNumber := randomAccountNumber()
		exists, err := s.accountRepo.ExistsByAccountNumber(ctx, accountNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return accountNumber, nil
		}
	}
}

func randomAccountNumber() string {
	var b strings.Builder
	b.Grow(accountNumberLength)
	for i := 0; i < accountNumberLength; i++ {
		b.WriteByte('0' + byte(rand.Intn(10)))
	}
	return b.String()
}

// DeleteAccount closes the account. The owner must match, the account must
// still be active and the balance must be zero.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64, accountNumber string) (*domain.Account, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := validateDeleteAccount(user, account); err != nil {
		return nil, err
	}

	now := s.now()
	account.Status = domain.AccountStatusClosed
	account.UnregisteredAt = &now

	if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountStatusClosed, now); err != nil {
		return nil, err
	}
	return account, nil
}

func validateDeleteAccount(user *domain.AccountUser, account *domain.Account) error {
	if user.ID != account.UserID {
		return domain.NewError(domain.UserAccountMismatch)
	}
	if account.Status == domain.AccountStatusClosed {
		return domain.NewError(domain.AccountClosed)
	}
	if account.Balance > 0 {
		return domain.NewError(domain.AccountBalanceNotEmpty)
	}
	return nil
}

// GetAccountsByUserID lists the user's accounts.
func (s *AccountService) GetAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindByUserID(ctx, user.ID)
}
