package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJae-story/SimpleAccount/internal/core/domain"
)

// stubTransactionService lets each test script the engine's answers and
// observe the failure-recording follow-up calls.
type stubTransactionService struct {
	useResult    *domain.Transaction
	useErr       error
	cancelResult *domain.Transaction
	cancelErr    error
	queryResult  *domain.Transaction
	queryErr     error

	useCalls          int
	failedUseCalls    int
	failedCancelCalls int
}

func (s *stubTransactionService) UseBalance(_ context.Context, _ int64, _ string, _ int64) (*domain.Transaction, error) {
	s.useCalls++
	return s.useResult, s.useErr
}

func (s *stubTransactionService) SaveFailedUse(_ context.Context, _ string, _ int64) error {
	s.failedUseCalls++
	return nil
}

func (s *stubTransactionService) CancelBalance(_ context.Context, _, _ string, _ int64) (*domain.Transaction, error) {
	return s.cancelResult, s.cancelErr
}

func (s *stubTransactionService) SaveFailedCancel(_ context.Context, _ string, _ int64) error {
	s.failedCancelCalls++
	return nil
}

func (s *stubTransactionService) QueryTransaction(_ context.Context, _ string) (*domain.Transaction, error) {
	return s.queryResult, s.queryErr
}

func newTestApp(svc TransactionUseCase) *fiber.App {
	h := &TransactionHandler{Service: svc}
	app := fiber.New()
	app.Post("/transaction/use", h.UseBalance)
	app.Post("/transaction/cancel", h.CancelBalance)
	app.Get("/transaction/:transactionId", h.QueryTransaction)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestUseBalanceEndpointSuccess(t *testing.T) {
	svc := &stubTransactionService{
		useResult: &domain.Transaction{
			TransactionID:   "aaaabbbbccccddddeeeeffff00001111",
			AccountNumber:   "1000000012",
			Type:            domain.TransactionTypeUse,
			Result:          domain.TransactionResultSuccess,
			Amount:          200,
			BalanceSnapshot: 9800,
			TransactedAt:    time.Now(),
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/use", UseBalanceRequest{
		UserID: 1, AccountNumber: "1000000012", Amount: 200,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[TransactionResponse](t, resp)
	assert.Equal(t, "1000000012", body.AccountNumber)
	assert.Equal(t, domain.TransactionResultSuccess, body.TransactionResult)
	assert.Equal(t, int64(200), body.Amount)
	assert.Equal(t, svc.useResult.TransactionID, body.TransactionID)
	assert.Zero(t, svc.failedUseCalls)
}

func TestUseBalanceEndpointRecordsFailure(t *testing.T) {
	svc := &stubTransactionService{useErr: domain.NewError(domain.InsufficientBalance)}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/use", UseBalanceRequest{
		UserID: 1, AccountNumber: "1000000012", Amount: 200,
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.InsufficientBalance, body.ErrorCode)
	assert.Equal(t, 1, svc.failedUseCalls)
}

func TestUseBalanceEndpointSkipsRecordingWhenAccountMissing(t *testing.T) {
	svc := &stubTransactionService{useErr: domain.NewError(domain.AccountNotFound)}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/use", UseBalanceRequest{
		UserID: 1, AccountNumber: "1000000012", Amount: 200,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, svc.failedUseCalls)
}

func TestUseBalanceEndpointRejectsBadAmount(t *testing.T) {
	svc := &stubTransactionService{}
	app := newTestApp(svc)

	for _, amount := range []int64{0, -1, 1_000_000_001} {
		resp := postJSON(t, app, "/transaction/use", UseBalanceRequest{
			UserID: 1, AccountNumber: "1000000012", Amount: amount,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	assert.Zero(t, svc.useCalls)
}

func TestUseBalanceEndpointRejectsBadAccountNumber(t *testing.T) {
	svc := &stubTransactionService{}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/use", UseBalanceRequest{
		UserID: 1, AccountNumber: "123", Amount: 200,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.useCalls)
}

func TestCancelBalanceEndpointRecordsFailure(t *testing.T) {
	svc := &stubTransactionService{cancelErr: domain.NewError(domain.PartialCancelNotAllowed)}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/cancel", CancelBalanceRequest{
		TransactionID: "tx", AccountNumber: "1000000012", Amount: 150,
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.PartialCancelNotAllowed, body.ErrorCode)
	assert.Equal(t, 1, svc.failedCancelCalls)
}

func TestCancelBalanceEndpointRequiresTransactionID(t *testing.T) {
	svc := &stubTransactionService{}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/transaction/cancel", CancelBalanceRequest{
		AccountNumber: "1000000012", Amount: 200,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQueryTransactionEndpoint(t *testing.T) {
	svc := &stubTransactionService{
		queryResult: &domain.Transaction{
			TransactionID:   "aaaabbbbccccddddeeeeffff00001111",
			AccountNumber:   "1000000012",
			Type:            domain.TransactionTypeUse,
			Result:          domain.TransactionResultSuccess,
			Amount:          200,
			BalanceSnapshot: 9800,
			TransactedAt:    time.Now(),
		},
	}
	app := newTestApp(svc)

	req, err := http.NewRequest(http.MethodGet, "/transaction/aaaabbbbccccddddeeeeffff00001111", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[QueryTransactionResponse](t, resp)
	assert.Equal(t, domain.TransactionTypeUse, body.TransactionType)
	assert.Equal(t, svc.queryResult.TransactionID, body.TransactionID)
}

func TestQueryTransactionEndpointNotFound(t *testing.T) {
	svc := &stubTransactionService{queryErr: domain.NewError(domain.TransactionNotFound)}
	app := newTestApp(svc)

	req, err := http.NewRequest(http.MethodGet, "/transaction/missing", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, domain.TransactionNotFound, body.ErrorCode)
}
