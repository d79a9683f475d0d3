package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// AccountUseCase is what the HTTP layer needs from the account service.
type AccountUseCase interface {
	CreateAccount(ctx context.Context, userID int64, initialBalance int64) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID int64, accountNumber string) (*domain.Account, error)
	GetAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
}

type AccountHandler struct {
	Service AccountUseCase
}

type CreateAccountRequest struct {
	UserID         int64 `json:"userId"`
	InitialBalance int64 `json:"initialBalance"`
}

type DeleteAccountRequest struct {
	UserID        int64  `json:"userId"`
	AccountNumber string `json:"accountNumber"`
}

type AccountResponse struct {
	UserID        int64     `json:"userId"`
	AccountNumber string    `json:"accountNumber"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

type DeleteAccountResponse struct {
	UserID         int64      `json:"userId"`
	AccountNumber  string     `json:"accountNumber"`
	UnregisteredAt *time.Time `json:"unregisteredAt"`
}

type AccountInfo struct {
	AccountNumber string `json:"accountNumber"`
	Balance       int64  `json:"balance"`
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.InitialBalance < 0 {
		return badRequest(c, "initialBalance must not be negative")
	}

	account, err := h.Service.CreateAccount(c.Context(), req.UserID, req.InitialBalance)
	if err != nil {
		return writeError(c, err)
	}

	slog.Info("account created", "account_number", account.AccountNumber, "user_id", account.UserID)

	return c.Status(http.StatusCreated).JSON(AccountResponse{
		UserID:        account.UserID,
		AccountNumber: account.AccountNumber,
		RegisteredAt:  account.RegisteredAt,
	})
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	var req DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.AccountNumber) != 10 {
		return badRequest(c, "accountNumber must be 10 digits")
	}

	account, err := h.Service.DeleteAccount(c.Context(), req.UserID, req.AccountNumber)
	if err != nil {
		return writeError(c, err)
	}

	slog.Info("account closed", "account_number", account.AccountNumber, "user_id", account.UserID)

	return c.JSON(DeleteAccountResponse{
		UserID:         account.UserID,
		AccountNumber:  account.AccountNumber,
		UnregisteredAt: account.UnregisteredAt,
	})
}

func (h *AccountHandler) GetAccountsByUser(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return badRequest(c, "user_id query parameter is required")
	}

	accounts, err := h.Service.GetAccountsByUserID(c.Context(), int64(userID))
	if err != nil {
		return writeError(c, err)
	}

	infos := make([]AccountInfo, 0, len(accounts))
	for _, acc := range accounts {
		infos = append(infos, AccountInfo{AccountNumber: acc.AccountNumber, Balance: acc.Balance})
	}
	return c.JSON(infos)
}
