package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// amount bounds accepted at the boundary, in minor units
const (
	minTransactionAmount = 1
	maxTransactionAmount = 1_000_000_000
)

// TransactionUseCase is what the HTTP layer needs from the engine.
type TransactionUseCase interface {
	UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (*domain.Transaction, error)
	SaveFailedUse(ctx context.Context, accountNumber string, amount int64) error
	CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*domain.Transaction, error)
	SaveFailedCancel(ctx context.Context, accountNumber string, amount int64) error
	QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

type TransactionHandler struct {
	Service TransactionUseCase
}

type UseBalanceRequest struct {
	UserID        int64  `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

type CancelBalanceRequest struct {
	TransactionID string `json:"transactionId"`
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

type TransactionResponse struct {
	AccountNumber     string                   `json:"accountNumber"`
	TransactionResult domain.TransactionResult `json:"transactionResult"`
	TransactionID     string                   `json:"transactionId"`
	Amount            int64                    `json:"amount"`
	TransactedAt      time.Time                `json:"transactedAt"`
}

type QueryTransactionResponse struct {
	AccountNumber     string                   `json:"accountNumber"`
	TransactionType   domain.TransactionType   `json:"transactionType"`
	TransactionResult domain.TransactionResult `json:"transactionResult"`
	TransactionID     string                   `json:"transactionId"`
	Amount            int64                    `json:"amount"`
	TransactedAt      time.Time                `json:"transactedAt"`
}

// UseBalance handles POST /transaction/use. When the engine rejects the
// mutation, the handler records the attempt as a FAILED ledger entry and
// still surfaces the original error to the client.
func (h *TransactionHandler) UseBalance(c *fiber.Ctx) error {
	var req UseBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg, ok := validateTransactionRequest(req.AccountNumber, req.Amount); !ok {
		return badRequest(c, msg)
	}

	transaction, err := h.Service.UseBalance(c.Context(), req.UserID, req.AccountNumber, req.Amount)
	if err != nil {
		h.recordFailure(c.Context(), err, domain.TransactionTypeUse, req.AccountNumber, req.Amount)
		return writeError(c, err)
	}

	return c.JSON(toTransactionResponse(transaction))
}

// CancelBalance handles POST /transaction/cancel, same shape as UseBalance.
func (h *TransactionHandler) CancelBalance(c *fiber.Ctx) error {
	var req CancelBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.TransactionID == "" {
		return badRequest(c, "transactionId is required")
	}
	if msg, ok := validateTransactionRequest(req.AccountNumber, req.Amount); !ok {
		return badRequest(c, msg)
	}

	transaction, err := h.Service.CancelBalance(c.Context(), req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		h.recordFailure(c.Context(), err, domain.TransactionTypeCancel, req.AccountNumber, req.Amount)
		return writeError(c, err)
	}

	return c.JSON(toTransactionResponse(transaction))
}

// QueryTransaction handles GET /transaction/:transactionId.
func (h *TransactionHandler) QueryTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")

	transaction, err := h.Service.QueryTransaction(c.Context(), transactionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(QueryTransactionResponse{
		AccountNumber:     transaction.AccountNumber,
		TransactionType:   transaction.Type,
		TransactionResult: transaction.Result,
		TransactionID:     transaction.TransactionID,
		Amount:            transaction.Amount,
		TransactedAt:      transaction.TransactedAt,
	})
}

// recordFailure appends the FAILED ledger entry after an engine rejection.
// Skipped when the account itself cannot be resolved or the lock was never
// taken; a failure to record is logged and reported nowhere else — it never
// re-opens the rejected mutation.
func (h *TransactionHandler) recordFailure(ctx context.Context, cause error, transactionType domain.TransactionType, accountNumber string, amount int64) {
	code := domain.CodeOf(cause)
	if code == domain.AccountNotFound || code == domain.LockUnavailable {
		return
	}

	var err error
	if transactionType == domain.TransactionTypeUse {
		err = h.Service.SaveFailedUse(ctx, accountNumber, amount)
	} else {
		err = h.Service.SaveFailedCancel(ctx, accountNumber, amount)
	}
	if err != nil {
		slog.Error("failed to record FAILED transaction",
			"error", err, "cause", cause, "account_number", accountNumber, "type", transactionType)
	}
}

func validateTransactionRequest(accountNumber string, amount int64) (string, bool) {
	if len(accountNumber) != 10 {
		return "accountNumber must be 10 digits", false
	}
	if amount < minTransactionAmount || amount > maxTransactionAmount {
		return "amount must be between 1 and 1000000000", false
	}
	return "", true
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		AccountNumber:     transaction.AccountNumber,
		TransactionResult: transaction.Result,
		TransactionID:     transaction.TransactionID,
		Amount:            transaction.Amount,
		TransactedAt:      transaction.TransactedAt,
	}
}
