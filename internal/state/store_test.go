package state

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/config"
	"github.com/moneygrow/moneygrow/internal/model"
)

// fakeBackend is an in-memory stand-in for the finance API with just
// enough behavior to drive the store.
type fakeBackend struct {
	mu           sync.Mutex
	transactions []model.Transaction
	budgets      []model.Budget
	nextID       int64

	txReads      int
	budgetReads  int
	profileCode  int // 0 means success
	failTxReads  bool
	failMutation bool
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.txReads++
		if f.failTxReads {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(f.transactions)
	})
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failMutation {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"rejected"}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		var tx model.Transaction
		_ = json.Unmarshal(body, &tx)
		f.nextID++
		tx.ID = f.nextID
		f.transactions = append(f.transactions, tx)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /api/budgets", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.budgetReads++
		_ = json.NewEncoder(w).Encode(f.budgets)
	})
	mux.HandleFunc("GET /api/user", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.profileCode != 0 {
			w.WriteHeader(f.profileCode)
			_, _ = w.Write([]byte(`{"success":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":1,"username":"alice","email":"a@example.com"}}`))
	})
	return mux
}

func newTestStore(t *testing.T, backend *fakeBackend) *Store {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = srv.URL
	st := New(api.NewClient(srv.URL, 0), cfg, log.New(io.Discard, "", 0))
	st.SetPersist(func(config.Config) error { return nil })
	return st
}

func TestLoginTriggersSingleRefresh(t *testing.T) {
	backend := &fakeBackend{
		transactions: []model.Transaction{
			{ID: 1, Amount: 1000, Type: model.TypeIncome, Category: "Salary", Date: "2025-03-01"},
			{ID: 2, Amount: 250, Type: model.TypeExpense, Category: "Food", Date: "2025-03-02"},
		},
		budgets: []model.Budget{{ID: 1, Category: "Food", Limit: 500}},
		nextID:  2,
	}
	st := newTestStore(t, backend)

	st.SetToken(context.Background(), "tok", "alice")

	snap := st.Snapshot()
	if !snap.LoggedIn() {
		t.Fatal("expected logged-in state")
	}
	if len(snap.Transactions) != 2 || len(snap.Budgets) != 1 {
		t.Fatalf("caches = %d txs, %d budgets", len(snap.Transactions), len(snap.Budgets))
	}
	if snap.Balance != 750 {
		t.Fatalf("balance = %v, want 750", snap.Balance)
	}
	if backend.txReads != 1 || backend.budgetReads != 1 {
		t.Fatalf("reads = %d/%d, want exactly one of each", backend.txReads, backend.budgetReads)
	}
	// Profile fetch overwrote the username passed at login.
	if snap.Username != "alice" {
		t.Fatalf("username = %q", snap.Username)
	}
}

func TestLogoutClearsCaches(t *testing.T) {
	backend := &fakeBackend{
		transactions: []model.Transaction{{ID: 1, Amount: 50, Type: model.TypeIncome, Category: "Salary", Date: "2025-03-01"}},
	}
	st := newTestStore(t, backend)
	st.SetToken(context.Background(), "tok", "alice")

	st.SetToken(context.Background(), "", "")

	snap := st.Snapshot()
	if snap.LoggedIn() || snap.Username != "" {
		t.Fatalf("session not cleared: %+v", snap)
	}
	if len(snap.Transactions) != 0 || len(snap.Budgets) != 0 || snap.Balance != 0 {
		t.Fatalf("caches not cleared: %+v", snap)
	}
}

func TestRefreshWithoutTokenIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	st := newTestStore(t, backend)

	st.RefreshAll(context.Background())

	if backend.txReads != 0 || backend.budgetReads != 0 {
		t.Fatalf("reads happened without a token: %d/%d", backend.txReads, backend.budgetReads)
	}
}

func TestFailedReadKeepsLastGoodCache(t *testing.T) {
	backend := &fakeBackend{
		transactions: []model.Transaction{{ID: 1, Amount: 100, Type: model.TypeIncome, Category: "Salary", Date: "2025-03-01"}},
		budgets:      []model.Budget{{ID: 1, Category: "Food", Limit: 300}},
		nextID:       1,
	}
	st := newTestStore(t, backend)
	st.SetToken(context.Background(), "tok", "alice")

	backend.mu.Lock()
	backend.failTxReads = true
	backend.budgets = append(backend.budgets, model.Budget{ID: 2, Category: "Transport", Limit: 200})
	backend.mu.Unlock()

	st.RefreshAll(context.Background())

	snap := st.Snapshot()
	// Transactions kept their last good value, budgets still updated.
	if len(snap.Transactions) != 1 || snap.Balance != 100 {
		t.Fatalf("transaction cache disturbed by failed read: %+v", snap)
	}
	if len(snap.Budgets) != 2 {
		t.Fatalf("budget read should have succeeded independently, got %d", len(snap.Budgets))
	}
}

func TestAddTransactionRefreshesCaches(t *testing.T) {
	backend := &fakeBackend{}
	st := newTestStore(t, backend)
	st.SetToken(context.Background(), "tok", "alice")

	err := st.AddTransaction(context.Background(), api.TransactionInput{
		Amount: 42.5, Type: model.TypeExpense, Category: "Food", Date: "2025-03-05",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	snap := st.Snapshot()
	if len(snap.Transactions) != 1 {
		t.Fatalf("cache not refreshed after write: %+v", snap.Transactions)
	}
	if snap.Balance != -42.5 {
		t.Fatalf("balance = %v, want -42.5", snap.Balance)
	}
}

func TestFailedMutationLeavesCachesUntouched(t *testing.T) {
	backend := &fakeBackend{failMutation: true}
	st := newTestStore(t, backend)
	st.SetToken(context.Background(), "tok", "alice")
	readsBefore := backend.txReads

	err := st.AddTransaction(context.Background(), api.TransactionInput{
		Amount: 10, Type: model.TypeExpense, Category: "Food", Date: "2025-03-05",
	})
	if err == nil {
		t.Fatal("expected error from rejected write")
	}
	if backend.txReads != readsBefore {
		t.Fatal("failed mutation must not trigger a refresh")
	}
}

func TestProfileRejectionKeepsSession(t *testing.T) {
	backend := &fakeBackend{profileCode: http.StatusForbidden}
	st := newTestStore(t, backend)

	st.SetToken(context.Background(), "tok", "alice")

	snap := st.Snapshot()
	if !snap.LoggedIn() {
		t.Fatal("auth rejection on profile fetch must not log out")
	}
	if snap.Username != "alice" {
		t.Fatalf("username = %q, want the login value kept", snap.Username)
	}
}

func TestSetThemeFallsBackToDefault(t *testing.T) {
	st := newTestStore(t, &fakeBackend{})
	var persisted config.Config
	st.SetPersist(func(c config.Config) error { persisted = c; return nil })

	st.SetTheme("neon-zebra")

	if got := st.Snapshot().Theme; got != "emerald" {
		t.Fatalf("theme = %q, want emerald", got)
	}
	if persisted.Appearance.Theme != "emerald" {
		t.Fatalf("persisted theme = %q, want the corrected value", persisted.Appearance.Theme)
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	st := newTestStore(t, &fakeBackend{})
	ch, cancel := st.Subscribe()
	defer cancel()

	st.SetTheme("ocean")

	select {
	case <-ch:
	default:
		t.Fatal("expected a notification after state change")
	}
}
