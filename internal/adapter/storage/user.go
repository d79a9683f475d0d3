package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

type AccountUserRepository struct {
	db *pgxpool.Pool
}

func NewAccountUserRepository(db *pgxpool.Pool) *AccountUserRepository {
	return &AccountUserRepository{db: db}
}

func (r *AccountUserRepository) FindByID(ctx context.Context, id int64) (*domain.AccountUser, error) {
	query := `SELECT id, name, created_at FROM account_users WHERE id = $1`

	var user domain.AccountUser
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewError(domain.UserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}
