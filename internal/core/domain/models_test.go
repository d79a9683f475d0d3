package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountUseBalance(t *testing.T) {
	account := &Account{Balance: 10000}

	assert.NoError(t, account.UseBalance(200))
	assert.Equal(t, int64(9800), account.Balance)

	err := account.UseBalance(10000)
	assert.Equal(t, InsufficientBalance, CodeOf(err))
	assert.Equal(t, int64(9800), account.Balance)
}

func TestAccountCancelBalance(t *testing.T) {
	account := &Account{Balance: 9800}

	assert.NoError(t, account.CancelBalance(200))
	assert.Equal(t, int64(10000), account.Balance)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, AccountNotFound, CodeOf(NewError(AccountNotFound)))
	assert.Equal(t, InternalError, CodeOf(errors.New("boom")))

	// codes survive wrapping
	wrapped := fmt.Errorf("while loading: %w", NewError(UserNotFound))
	assert.Equal(t, UserNotFound, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, UserNotFound))
}
