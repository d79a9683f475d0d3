package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, account_number, status, balance, registered_at, unregistered_at`

func (r *AccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	var acc domain.Account
	err := r.db.QueryRow(ctx, query, accountNumber).Scan(
		&acc.ID, &acc.UserID, &acc.AccountNumber, &acc.Status, &acc.Balance,
		&acc.RegisteredAt, &acc.UnregisteredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewError(domain.AccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountNumber, err)
	}
	return &acc, nil
}

func (r *AccountRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY registered_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.ID, &acc.UserID, &acc.AccountNumber, &acc.Status, &acc.Balance,
			&acc.RegisteredAt, &acc.UnregisteredAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM accounts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (user_id, account_number, status, balance, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		account.UserID, account.AccountNumber, account.Status, account.Balance, account.RegisteredAt,
	).Scan(&account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// UpdateBalance writes the new balance as a single-row atomic update. The
// caller holds the account's lock, so no read-modify-write race exists here.
func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	_, err := r.db.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2`, balance, id)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", id, err)
	}
	return nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus, unregisteredAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET status = $1, unregistered_at = $2 WHERE id = $3`, status, unregisteredAt, id)
	if err != nil {
		return fmt.Errorf("failed to update status for account %d: %w", id, err)
	}
	return nil
}
