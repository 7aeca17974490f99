package server

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/model"
)

func newTestServer(t *testing.T) (*Server, *api.Client) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv, err := New(Config{
		Addr:   "127.0.0.1:0",
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Secret: "test-secret",
	}, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return srv, api.NewClient(ts.URL, 0)
}

func register(t *testing.T, client *api.Client, email string) {
	t.Helper()
	err := client.Register(context.Background(), api.RegisterInput{
		Username: "alice",
		Phone:    "0812345678",
		Email:    email,
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func login(t *testing.T, client *api.Client, email string) string {
	t.Helper()
	res, err := client.Login(context.Background(), email, "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return res.Token
}

func TestRegisterAndLogin(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")

	res, err := client.Login(context.Background(), "a@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" || res.Username != "alice" || res.Phone != "0812345678" {
		t.Fatalf("login result = %+v", res)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")

	err := client.Register(context.Background(), api.RegisterInput{
		Username: "bob", Phone: "02", Email: "a@example.com", Password: "pw123456",
	})
	var re *api.RequestError
	if !errors.As(err, &re) || re.Status != 409 {
		t.Fatalf("err = %v, want 409", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	_, client := newTestServer(t)

	err := client.Register(context.Background(), api.RegisterInput{
		Username: "bob", Email: "b@example.com", Password: "pw123456",
	})
	var re *api.RequestError
	if !errors.As(err, &re) || re.Status != 400 {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")

	_, err := client.Login(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestProtectedEndpointsRejectBadTokens(t *testing.T) {
	_, client := newTestServer(t)

	// No token at all.
	_, err := client.ListTransactions(context.Background(), "")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("missing token: err = %v", err)
	}

	// Garbage token.
	_, err = client.ListTransactions(context.Background(), "not-a-jwt")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("garbage token: err = %v", err)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")
	token := login(t, client, "a@example.com")
	ctx := context.Background()

	if err := client.CreateTransaction(ctx, token, api.TransactionInput{
		Amount: 1200, Type: model.TypeIncome, Category: "Salary", Date: "2025-03-01",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if err := client.CreateTransaction(ctx, token, api.TransactionInput{
		Amount: 350.25, Type: model.TypeExpense, Category: "Food", Note: "groceries", Date: "2025-03-03",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	txs, err := client.ListTransactions(ctx, token)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("len(txs) = %d, want 2", len(txs))
	}
	// Newest date first.
	if txs[0].Category != "Food" || txs[0].Note != "groceries" {
		t.Fatalf("txs[0] = %+v", txs[0])
	}
	if got := model.Balance(txs); got != 849.75 {
		t.Fatalf("balance = %v, want 849.75", got)
	}

	if err := client.DeleteTransaction(ctx, token, txs[0].ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	txs, err = client.ListTransactions(ctx, token)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Category != "Salary" {
		t.Fatalf("after delete: %+v", txs)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")
	token := login(t, client, "a@example.com")
	ctx := context.Background()

	cases := []struct {
		name string
		in   api.TransactionInput
	}{
		{"zero amount", api.TransactionInput{Amount: 0, Type: model.TypeExpense, Category: "Food"}},
		{"negative amount", api.TransactionInput{Amount: -5, Type: model.TypeExpense, Category: "Food"}},
		{"bad type", api.TransactionInput{Amount: 10, Type: "transfer", Category: "Food"}},
		{"missing category", api.TransactionInput{Amount: 10, Type: model.TypeExpense}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := client.CreateTransaction(ctx, token, tc.in)
			var re *api.RequestError
			if !errors.As(err, &re) || re.Status != 400 {
				t.Fatalf("err = %v, want 400", err)
			}
		})
	}
}

func TestDeleteOtherUsersTransactionIs404(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	register(t, client, "a@example.com")
	tokenA := login(t, client, "a@example.com")
	register(t, client, "b@example.com")
	tokenB := login(t, client, "b@example.com")

	if err := client.CreateTransaction(ctx, tokenA, api.TransactionInput{
		Amount: 100, Type: model.TypeIncome, Category: "Salary", Date: "2025-03-01",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	txs, err := client.ListTransactions(ctx, tokenA)
	if err != nil || len(txs) != 1 {
		t.Fatalf("ListTransactions: %v, %d", err, len(txs))
	}

	err = client.DeleteTransaction(ctx, tokenB, txs[0].ID)
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("cross-user delete: err = %v, want ErrNotFound", err)
	}

	// Still there for the owner.
	txs, err = client.ListTransactions(ctx, tokenA)
	if err != nil || len(txs) != 1 {
		t.Fatalf("transaction vanished: %v, %d", err, len(txs))
	}
}

func TestBudgetLifecycle(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")
	token := login(t, client, "a@example.com")
	ctx := context.Background()

	if err := client.CreateBudget(ctx, token, api.BudgetInput{Category: "Food", Limit: 500}); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	budgets, err := client.ListBudgets(ctx, token)
	if err != nil || len(budgets) != 1 {
		t.Fatalf("ListBudgets: %v, %d", err, len(budgets))
	}
	if budgets[0].Category != "Food" || budgets[0].Limit != 500 {
		t.Fatalf("budget = %+v", budgets[0])
	}

	if err := client.UpdateBudget(ctx, token, budgets[0].ID, 750); err != nil {
		t.Fatalf("UpdateBudget: %v", err)
	}
	budgets, _ = client.ListBudgets(ctx, token)
	if budgets[0].Limit != 750 {
		t.Fatalf("limit = %v, want 750", budgets[0].Limit)
	}

	if err := client.DeleteBudget(ctx, token, budgets[0].ID); err != nil {
		t.Fatalf("DeleteBudget: %v", err)
	}
	budgets, _ = client.ListBudgets(ctx, token)
	if len(budgets) != 0 {
		t.Fatalf("budgets not empty after delete: %+v", budgets)
	}
}

func TestUpdateMissingBudgetIs404(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")
	token := login(t, client, "a@example.com")

	err := client.UpdateBudget(context.Background(), token, 9999, 100)
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	_, client := newTestServer(t)
	register(t, client, "a@example.com")
	token := login(t, client, "a@example.com")

	p, err := client.FetchProfile(context.Background(), token)
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.Username != "alice" || p.Email != "a@example.com" || p.Phone != "0812345678" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := issueToken(secret, 42)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	id, err := verifySessionToken(secret, tok)
	if err != nil {
		t.Fatalf("verifySessionToken: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}

	if _, err := verifySessionToken([]byte("other"), tok); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}
