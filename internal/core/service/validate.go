package service

import (
	"time"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// Pure accept/reject decisions for balance mutations. No side effects;
// always called while the account's lock is held.

func validateUseBalance(user *domain.AccountUser, account *domain.Account, amount int64) error {
	if user.ID != account.UserID {
		return domain.NewError(domain.UserAccountMismatch)
	}
	if account.Status != domain.AccountStatusActive {
		return domain.NewError(domain.AccountClosed)
	}
	if amount > account.Balance {
		return domain.NewError(domain.InsufficientBalance)
	}
	return nil
}

func validateCancelBalance(transaction *domain.Transaction, account *domain.Account, amount int64, now time.Time) error {
	if transaction.AccountID != account.ID {
		return domain.NewError(domain.TransactionAccountMismatch)
	}
	if transaction.Amount != amount {
		return domain.NewError(domain.PartialCancelNotAllowed)
	}
	// cancellable up to exactly one year after the original transaction
	if transaction.TransactedAt.Before(now.AddDate(-1, 0, 0)) {
		return domain.NewError(domain.CancelWindowExpired)
	}
	return nil
}
