// Package api provides the HTTP client for the remote finance service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the token is expired, invalid, or missing.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNotFound indicates the resource does not exist or is not owned
	// by the caller; the server does not distinguish the two.
	ErrNotFound = errors.New("api: not found")
)

// RequestError carries the server's message for a rejected request.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// Client talks to the finance REST API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the given base URL.
// A zero timeout selects the default of 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// envelope is the server's JSON wrapper for write and auth responses.
type envelope struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Token    string   `json:"token,omitempty"`
	Username string   `json:"username,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	User     *Profile `json:"user,omitempty"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// RegisterInput holds the fields for account creation.
type RegisterInput struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token    string
	Username string
	Phone    string
}

// TransactionInput holds the fields for creating a transaction.
// An empty Date lets the server default to today.
type TransactionInput struct {
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Note     string  `json:"note,omitempty"`
	Date     string  `json:"date,omitempty"`
}

// BudgetInput holds the fields for creating a budget.
type BudgetInput struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	var env envelope
	return c.do(ctx, http.MethodPost, "/api/register", "", in, &env)
}

// Login authenticates and returns a bearer token plus profile basics.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &env); err != nil {
		return LoginResult{}, err
	}
	if env.Token == "" {
		return LoginResult{}, &RequestError{Status: http.StatusOK, Message: "login response missing token"}
	}
	return LoginResult{Token: env.Token, Username: env.Username, Phone: env.Phone}, nil
}

// ListTransactions returns all transactions for the token's account,
// newest first.
func (c *Client) ListTransactions(ctx context.Context, token string) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", token, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, token string, in TransactionInput) error {
	var env envelope
	return c.do(ctx, http.MethodPost, "/api/transactions", token, in, &env)
}

// DeleteTransaction removes a transaction owned by the token's account.
func (c *Client) DeleteTransaction(ctx context.Context, token string, id int64) error {
	var env envelope
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), token, nil, &env)
}

// FetchProfile returns the account profile for the token.
func (c *Client) FetchProfile(ctx context.Context, token string) (Profile, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/user", token, nil, &env); err != nil {
		return Profile{}, err
	}
	if env.User == nil {
		return Profile{}, &RequestError{Status: http.StatusOK, Message: "profile response missing user"}
	}
	return *env.User, nil
}

// ListBudgets returns all budgets for the token's account.
func (c *Client) ListBudgets(ctx context.Context, token string) ([]model.Budget, error) {
	var budgets []model.Budget
	if err := c.do(ctx, http.MethodGet, "/api/budgets", token, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// CreateBudget creates a new budget.
func (c *Client) CreateBudget(ctx context.Context, token string, in BudgetInput) error {
	var env envelope
	return c.do(ctx, http.MethodPost, "/api/budgets", token, in, &env)
}

// UpdateBudget changes the limit of an existing budget.
func (c *Client) UpdateBudget(ctx context.Context, token string, id int64, limit float64) error {
	body := map[string]float64{"limit": limit}
	var env envelope
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/budgets/%d", id), token, body, &env)
}

// DeleteBudget removes a budget owned by the token's account.
func (c *Client) DeleteBudget(ctx context.Context, token string, id int64) error {
	var env envelope
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/budgets/%d", id), token, nil, &env)
}

// do performs one request with a bounded deadline and decodes the response
// into out. Non-2xx statuses map to sentinel errors or a RequestError
// carrying the server's message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return &RequestError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: parsing response: %w", err)
		}
	}
	return nil
}
