// Package state holds the in-memory application state shared by the TUI
// and CLI: session token, cached transactions and budgets, derived
// balance, and the selected theme.
package state

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/config"
	"github.com/moneygrow/moneygrow/internal/model"
	"github.com/moneygrow/moneygrow/internal/tui/theme"
)

// Snapshot is a consistent copy of the store's state for rendering.
type Snapshot struct {
	Token        string
	Username     string
	Transactions []model.Transaction
	Budgets      []model.Budget
	Balance      float64
	Theme        string
}

// LoggedIn reports whether a session token is present.
func (s Snapshot) LoggedIn() bool { return s.Token != "" }

// Store is the application state store. All reads from the remote API
// flow through it; screens only ever render its snapshots.
//
// Refresh failures never cross the store boundary: the last good cache
// stays in place and the error is logged. Mutations are the opposite,
// their errors are returned to the caller so the UI can surface them.
type Store struct {
	client  *api.Client
	logger  *log.Logger
	persist func(config.Config) error

	mu           sync.RWMutex
	cfg          config.Config
	transactions []model.Transaction
	budgets      []model.Budget
	balance      float64

	nextSubID int
	subs      map[int]chan struct{}
}

// New returns a store backed by client, seeded from cfg. State changes
// that must survive restarts (token, username, theme, onboarding flag)
// are written back through config.Save.
func New(client *api.Client, cfg config.Config, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.Writer(), "state: ", log.LstdFlags)
	}
	if !theme.Valid(cfg.Appearance.Theme) {
		cfg.Appearance.Theme = theme.DefaultName
	}
	return &Store{
		client:  client,
		logger:  logger,
		persist: config.Save,
		cfg:     cfg,
		subs:    make(map[int]chan struct{}),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]model.Transaction, len(s.transactions))
	copy(txs, s.transactions)
	budgets := make([]model.Budget, len(s.budgets))
	copy(budgets, s.budgets)

	return Snapshot{
		Token:        s.cfg.Session.Token,
		Username:     s.cfg.Session.Username,
		Transactions: txs,
		Budgets:      budgets,
		Balance:      s.balance,
		Theme:        s.cfg.Appearance.Theme,
	}
}

// Subscribe registers a channel that receives a signal after every state
// change. Sends are non-blocking; a slow subscriber misses signals, not
// state, since it re-reads via Snapshot.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

// notify takes its own read lock; callers must not hold s.mu.
func (s *Store) notify() {
	s.mu.RLock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.mu.RUnlock()
}

// SetToken installs a new session token. A non-empty token is persisted
// and both caches plus the profile are refreshed. An empty token logs
// out: caches and username are cleared synchronously and the cleared
// session is persisted.
func (s *Store) SetToken(ctx context.Context, token, username string) {
	s.mu.Lock()
	s.cfg.Session.Token = token
	if token == "" {
		s.cfg.Session.Username = ""
		s.transactions = nil
		s.budgets = nil
		s.balance = 0
	} else if username != "" {
		s.cfg.Session.Username = username
	}
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.persist(cfg); err != nil {
		s.logger.Printf("persist session: %v", err)
	}
	s.notify()

	if token != "" {
		s.RefreshAll(ctx)
		s.FetchProfile(ctx)
	}
}

// Token returns the current session token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Session.Token
}

// RefreshAll refetches transactions and budgets. The two reads are
// independent: either may succeed while the other fails, and a failed
// read leaves its cache untouched. Never returns an error.
func (s *Store) RefreshAll(ctx context.Context) {
	token := s.Token()
	if token == "" {
		s.logger.Printf("refresh skipped: not logged in")
		return
	}

	var (
		txs     []model.Transaction
		budgets []model.Budget
		txErr   error
		bErr    error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, txErr = s.client.ListTransactions(ctx, token)
		return nil
	})
	g.Go(func() error {
		budgets, bErr = s.client.ListBudgets(ctx, token)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	if txErr != nil {
		s.logger.Printf("refresh transactions: %v", txErr)
	} else {
		s.transactions = txs
		s.balance = model.Balance(txs)
	}
	if bErr != nil {
		s.logger.Printf("refresh budgets: %v", bErr)
	} else {
		s.budgets = budgets
	}
	s.mu.Unlock()

	s.notify()
}

// FetchProfile refreshes the cached username from the server. All
// failures, including auth rejections, are swallowed: a stale token does
// not log the user out, it just stops the profile from updating.
func (s *Store) FetchProfile(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}

	profile, err := s.client.FetchProfile(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.logger.Printf("profile fetch rejected, keeping session")
		} else {
			s.logger.Printf("profile fetch: %v", err)
		}
		return
	}

	s.mu.Lock()
	s.cfg.Session.Username = profile.Username
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.persist(cfg); err != nil {
		s.logger.Printf("persist username: %v", err)
	}
	s.notify()
}

// AddTransaction creates a transaction and refreshes all caches. On
// failure the caches are untouched and the error is returned.
func (s *Store) AddTransaction(ctx context.Context, in api.TransactionInput) error {
	if err := s.client.CreateTransaction(ctx, s.Token(), in); err != nil {
		return err
	}
	s.RefreshAll(ctx)
	return nil
}

// DeleteTransaction removes a transaction and refreshes all caches.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.client.DeleteTransaction(ctx, s.Token(), id); err != nil {
		return err
	}
	s.RefreshAll(ctx)
	return nil
}

// AddBudget creates a budget and refreshes all caches.
func (s *Store) AddBudget(ctx context.Context, in api.BudgetInput) error {
	if err := s.client.CreateBudget(ctx, s.Token(), in); err != nil {
		return err
	}
	s.RefreshAll(ctx)
	return nil
}

// UpdateBudget changes a budget's limit and refreshes all caches.
func (s *Store) UpdateBudget(ctx context.Context, id int64, limit float64) error {
	if err := s.client.UpdateBudget(ctx, s.Token(), id, limit); err != nil {
		return err
	}
	s.RefreshAll(ctx)
	return nil
}

// DeleteBudget removes a budget and refreshes all caches.
func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	if err := s.client.DeleteBudget(ctx, s.Token(), id); err != nil {
		return err
	}
	s.RefreshAll(ctx)
	return nil
}

// SetTheme selects and persists a theme. Unknown names fall back to the
// default, and the fallback is what gets persisted.
func (s *Store) SetTheme(name string) {
	if !theme.Valid(name) {
		s.logger.Printf("unknown theme %q, using %s", name, theme.DefaultName)
		name = theme.DefaultName
	}

	s.mu.Lock()
	s.cfg.Appearance.Theme = name
	cfg := s.cfg
	s.mu.Unlock()

	theme.SetActive(name)
	if err := s.persist(cfg); err != nil {
		s.logger.Printf("persist theme: %v", err)
	}
	s.notify()
}

// MarkOnboardingSeen persists the first-run flag.
func (s *Store) MarkOnboardingSeen() {
	s.mu.Lock()
	if s.cfg.General.HasSeenOnboarding {
		s.mu.Unlock()
		return
	}
	s.cfg.General.HasSeenOnboarding = true
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.persist(cfg); err != nil {
		s.logger.Printf("persist onboarding flag: %v", err)
	}
}

// HasSeenOnboarding reports whether the first-run welcome was dismissed.
func (s *Store) HasSeenOnboarding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.General.HasSeenOnboarding
}

// SetPersist overrides how config changes are written. Tests use this to
// avoid touching the real config file.
func (s *Store) SetPersist(fn func(config.Config) error) {
	s.persist = fn
}
