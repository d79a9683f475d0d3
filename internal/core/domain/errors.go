package domain

import "errors"

// ErrorCode identifies a business rejection. Codes are stable strings so
// the HTTP layer and clients can match on them.
type ErrorCode string

const (
	UserNotFound               ErrorCode = "USER_NOT_FOUND"
	AccountNotFound            ErrorCode = "ACCOUNT_NOT_FOUND"
	TransactionNotFound        ErrorCode = "TRANSACTION_NOT_FOUND"
	UserAccountMismatch        ErrorCode = "USER_ACCOUNT_MISMATCH"
	AccountClosed              ErrorCode = "ACCOUNT_CLOSED"
	InsufficientBalance        ErrorCode = "INSUFFICIENT_BALANCE"
	InvalidAmount              ErrorCode = "INVALID_AMOUNT"
	TransactionAccountMismatch ErrorCode = "TRANSACTION_ACCOUNT_MISMATCH"
	PartialCancelNotAllowed    ErrorCode = "PARTIAL_CANCEL_NOT_ALLOWED"
	CancelWindowExpired        ErrorCode = "CANCEL_WINDOW_EXPIRED"
	LockUnavailable            ErrorCode = "LOCK_UNAVAILABLE"
	MaxAccountsPerUser         ErrorCode = "MAX_ACCOUNTS_PER_USER"
	AccountBalanceNotEmpty     ErrorCode = "ACCOUNT_BALANCE_NOT_EMPTY"
	InvalidRequest             ErrorCode = "INVALID_REQUEST"
	InternalError              ErrorCode = "INTERNAL_ERROR"
)

var errorMessages = map[ErrorCode]string{
	UserNotFound:               "user not found",
	AccountNotFound:            "account not found",
	TransactionNotFound:        "transaction not found",
	UserAccountMismatch:        "account does not belong to the requesting user",
	AccountClosed:              "account is already closed",
	InsufficientBalance:        "amount exceeds the account balance",
	InvalidAmount:              "amount must be a positive integer",
	TransactionAccountMismatch: "transaction belongs to a different account",
	PartialCancelNotAllowed:    "cancel must be for the full original amount",
	CancelWindowExpired:        "transaction is too old to cancel",
	LockUnavailable:            "account lock is unavailable, retry later",
	MaxAccountsPerUser:         "user already has the maximum number of accounts",
	AccountBalanceNotEmpty:     "account balance must be empty to close",
	InvalidRequest:             "invalid request",
	InternalError:              "internal server error",
}

// AccountError is a typed business error carrying its ErrorCode.
type AccountError struct {
	Code    ErrorCode
	Message string
}

func (e *AccountError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewError builds an AccountError for the given code.
func NewError(code ErrorCode) *AccountError {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &AccountError{Code: code, Message: msg}
}

// CodeOf extracts the ErrorCode from err, or InternalError if err is not
// an AccountError.
func CodeOf(err error) ErrorCode {
	var accErr *AccountError
	if errors.As(err, &accErr) {
		return accErr.Code
	}
	return InternalError
}

// IsCode reports whether err is an AccountError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var accErr *AccountError
	return errors.As(err, &accErr) && accErr.Code == code
}
