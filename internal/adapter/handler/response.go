package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// ErrorResponse is the error body for every endpoint
type ErrorResponse struct {
	ErrorCode    domain.ErrorCode `json:"errorCode"`
	ErrorMessage string           `json:"errorMessage"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.UserNotFound:               http.StatusNotFound,
	domain.AccountNotFound:            http.StatusNotFound,
	domain.TransactionNotFound:        http.StatusNotFound,
	domain.UserAccountMismatch:        http.StatusConflict,
	domain.AccountClosed:              http.StatusConflict,
	domain.InsufficientBalance:        http.StatusConflict,
	domain.TransactionAccountMismatch: http.StatusConflict,
	domain.PartialCancelNotAllowed:    http.StatusConflict,
	domain.CancelWindowExpired:        http.StatusConflict,
	domain.MaxAccountsPerUser:         http.StatusConflict,
	domain.AccountBalanceNotEmpty:     http.StatusConflict,
	domain.InvalidAmount:              http.StatusBadRequest,
	domain.InvalidRequest:             http.StatusBadRequest,
	domain.LockUnavailable:            http.StatusServiceUnavailable,
}

// writeError maps a typed domain error to its HTTP status; anything else
// is a 500 with the details kept out of the response body.
func writeError(c *fiber.Ctx, err error) error {
	var accErr *domain.AccountError
	if errors.As(err, &accErr) {
		status, ok := statusByCode[accErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return c.Status(status).JSON(ErrorResponse{
			ErrorCode:    accErr.Code,
			ErrorMessage: accErr.Message,
		})
	}

	slog.Error("unexpected error", "error", err, "path", c.Path())
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		ErrorCode:    domain.InternalError,
		ErrorMessage: "internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		ErrorCode:    domain.InvalidRequest,
		ErrorMessage: message,
	})
}
