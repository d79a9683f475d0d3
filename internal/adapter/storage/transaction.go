package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// TransactionRepository is the append-only ledger. Records are inserted
// once and never updated or deleted.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions
			(transaction_id, account_id, account_number, transaction_type,
			 transaction_result, amount, balance_snapshot, transacted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		transaction.TransactionID, transaction.AccountID, transaction.AccountNumber,
		transaction.Type, transaction.Result, transaction.Amount,
		transaction.BalanceSnapshot, transaction.TransactedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}
	return transaction, nil
}

func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT id, transaction_id, account_id, account_number, transaction_type,
		       transaction_result, amount, balance_snapshot, transacted_at
		FROM transactions
		WHERE transaction_id = $1
	`
	var tx domain.Transaction
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&tx.ID, &tx.TransactionID, &tx.AccountID, &tx.AccountNumber,
		&tx.Type, &tx.Result, &tx.Amount, &tx.BalanceSnapshot, &tx.TransactedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewError(domain.TransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	return &tx, nil
}
