// Package bankapi is the HTTP client for the external banking backend.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/api-sage/banking-frontend/src/internal/adapter/http/middleware"
	"github.com/api-sage/banking-frontend/src/internal/domain"
	"github.com/api-sage/banking-frontend/src/internal/logger"
	"github.com/api-sage/banking-frontend/src/internal/metrics"
)

const (
	OpCreateAccount = "create_account"
	OpDeposit       = "deposit"
	OpWithdraw      = "withdraw"
	OpGetBalance    = "get_balance"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client issues exactly one request per call: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration. A zero Timeout means requests never
// time out on the client side.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// =============================================================================
// Request Types
// =============================================================================

type CreateAccountRequest struct {
	AccountNumber domain.Number `json:"accountNumber"`
	CustomerName  string        `json:"customerName"`
	Balance       domain.Number `json:"balance"`
}

type amountRequest struct {
	Amount domain.Number `json:"amount"`
}

// accountPayload keeps presence information so a 2xx body without the
// required fields is reported instead of decoding to zero values.
type accountPayload struct {
	AccountNumber *json.Number `json:"accountNumber"`
	CustomerName  *string      `json:"customerName"`
	Balance       *json.Number `json:"balance"`
}

// =============================================================================
// API Methods
// =============================================================================

func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (domain.Account, error) {
	return c.do(ctx, OpCreateAccount, http.MethodPost, "/accounts", req)
}

func (c *Client) Deposit(ctx context.Context, accountNumber, amount domain.Number) (domain.Account, error) {
	return c.do(ctx, OpDeposit, http.MethodPost, accountPath(accountNumber)+"/deposit", amountRequest{Amount: amount})
}

func (c *Client) Withdraw(ctx context.Context, accountNumber, amount domain.Number) (domain.Account, error) {
	return c.do(ctx, OpWithdraw, http.MethodPost, accountPath(accountNumber)+"/withdraw", amountRequest{Amount: amount})
}

func (c *Client) GetBalance(ctx context.Context, accountNumber domain.Number) (domain.Account, error) {
	return c.do(ctx, OpGetBalance, http.MethodGet, accountPath(accountNumber), nil)
}

func accountPath(accountNumber domain.Number) string {
	return "/accounts/" + accountNumber.String()
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) (account domain.Account, err error) {
	start := time.Now()
	requestID := middleware.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	status := 0

	defer func() {
		metrics.RecordBackendCall(op, time.Since(start), err == nil)
		fields := logger.Fields{
			"operation":  op,
			"method":     method,
			"path":       path,
			"status":     status,
			"requestId":  requestID,
			"durationMs": time.Since(start).Milliseconds(),
		}
		if err != nil {
			logger.Error("bank api call failed", err, fields)
			return
		}
		logger.Info("bank api call succeeded", fields)
	}()

	var body io.Reader
	if payload != nil {
		raw, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return domain.Account{}, opError(op, 0, fmt.Errorf("marshal request: %w", marshalErr))
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return domain.Account{}, opError(op, 0, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(middleware.RequestIDHeader, requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Account{}, opError(op, 0, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.Account{}, &domain.OperationError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Status, raw),
		}
	}

	var decoded accountPayload
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return domain.Account{}, opError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	account, err = decoded.toAccount()
	if err != nil {
		return domain.Account{}, opError(op, resp.StatusCode, err)
	}

	return account, nil
}

func (p accountPayload) toAccount() (domain.Account, error) {
	if p.AccountNumber == nil || p.Balance == nil {
		return domain.Account{}, domain.ErrMalformedAccount
	}

	number, err := p.AccountNumber.Int64()
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: accountNumber %q", domain.ErrMalformedAccount, p.AccountNumber.String())
	}

	balance, err := decimal.NewFromString(p.Balance.String())
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: balance %q", domain.ErrMalformedAccount, p.Balance.String())
	}

	return domain.Account{
		AccountNumber: number,
		CustomerName:  p.CustomerName,
		Balance:       balance,
	}, nil
}

// errorMessage resolves the text shown to the user for a non-2xx response:
// the JSON "message" field, then "error", then the plain body, then the
// status line.
func errorMessage(status string, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"message", "error"} {
			if v := gjson.GetBytes(body, key); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
				return strings.TrimSpace(v.Str)
			}
		}
		if v := gjson.ParseBytes(body); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str)
		}
		if gjson.ParseBytes(body).IsObject() {
			return "request failed: " + status
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return "request failed: " + status
}

func opError(op string, status int, err error) error {
	return &domain.OperationError{
		Operation:  op,
		StatusCode: status,
		Message:    err.Error(),
		Err:        err,
	}
}
