package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusClosed AccountStatus = "CLOSED"
)

type TransactionType string

const (
	TransactionTypeUse    TransactionType = "USE"
	TransactionTypeCancel TransactionType = "CANCEL"
)

type TransactionResult string

const (
	TransactionResultSuccess TransactionResult = "SUCCESS"
	TransactionResultFailed  TransactionResult = "FAILED"
)

// AccountUser is the owner of one or more accounts
type AccountUser struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Account holds the balance in minor units (cents)
type Account struct {
	ID             int64
	UserID         int64
	AccountNumber  string // 10 digits, assigned once, immutable
	Status         AccountStatus
	Balance        int64
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
}

// UseBalance decrements the balance. The balance never goes negative.
func (a *Account) UseBalance(amount int64) error {
	if amount > a.Balance {
		return NewError(InsufficientBalance)
	}
	a.Balance -= amount
	return nil
}

// CancelBalance restores a previously used amount.
func (a *Account) CancelBalance(amount int64) error {
	if amount < 0 {
		return NewError(InvalidRequest)
	}
	a.Balance += amount
	return nil
}

// Transaction is one ledger entry: a single attempted balance mutation,
// success or failure. Records are append-only and never mutated.
type Transaction struct {
	ID              int64
	TransactionID   string // uuid hex, globally unique, never reused
	AccountID       int64
	AccountNumber   string
	Type            TransactionType
	Result          TransactionResult
	Amount          int64
	BalanceSnapshot int64 // balance after the mutation, or unchanged on failure
	TransactedAt    time.Time
}
