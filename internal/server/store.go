package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moneygrow/moneygrow/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrDuplicateEmail is returned when registering with an email that
// already has an account.
var ErrDuplicateEmail = errors.New("server: email already registered")

// ErrNoRows mirrors sql.ErrNoRows across the store boundary.
var ErrNoRows = sql.ErrNoRows

// Store provides SQLite-backed persistence for users, transactions,
// and budgets.
type Store struct {
	db *sql.DB
}

// User is a stored account row. Password holds the bcrypt hash.
type User struct {
	ID       int64
	Username string
	Phone    string
	Email    string
	Password string
}

// OpenStore opens or creates the database at dbPath and migrates it.
func OpenStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new account with a pre-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, phone, email, hashedPassword string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, phone, email, password) VALUES (?, ?, ?, ?)",
		username, phone, email, hashedPassword)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// UserByEmail returns the account for email, or sql.ErrNoRows.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, phone, email, password FROM users WHERE email = ?",
		email).Scan(&u.ID, &u.Username, &u.Phone, &u.Email, &u.Password)
	return u, err
}

// UserByID returns the account for id, or sql.ErrNoRows.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, phone, email, password FROM users WHERE id = ?",
		id).Scan(&u.ID, &u.Username, &u.Phone, &u.Email, &u.Password)
	return u, err
}

// ListTransactions returns all transactions for userID, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, type, category, note, date FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	txs := []model.Transaction{}
	for rows.Next() {
		var tx model.Transaction
		var amount float64
		if err := rows.Scan(&tx.ID, &amount, &tx.Type, &tx.Category, &tx.Note, &tx.Date); err != nil {
			return nil, err
		}
		tx.Amount = model.Amount(amount)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// InsertTransaction stores a transaction for userID.
func (s *Store) InsertTransaction(ctx context.Context, userID int64, amount float64, txType, category, note, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (user_id, amount, type, category, note, date) VALUES (?, ?, ?, ?, ?, ?)",
		userID, amount, txType, category, note, date)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return res.LastInsertId()
}

// DeleteTransaction removes a transaction owned by userID. Returns the
// number of rows deleted; zero means not found or not owned.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	return res.RowsAffected()
}

// ListBudgets returns all budgets for userID.
func (s *Store) ListBudgets(ctx context.Context, userID int64) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, "limit" FROM budgets WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	budgets := []model.Budget{}
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Limit); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// InsertBudget stores a budget for userID.
func (s *Store) InsertBudget(ctx context.Context, userID int64, category string, limit float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, "limit") VALUES (?, ?, ?)`,
		userID, category, limit)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	return res.LastInsertId()
}

// UpdateBudgetLimit changes the limit of a budget owned by userID.
// Returns the number of rows changed; zero means not found or not owned.
func (s *Store) UpdateBudgetLimit(ctx context.Context, userID, id int64, limit float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET "limit" = ? WHERE id = ? AND user_id = ?`,
		limit, id, userID)
	if err != nil {
		return 0, fmt.Errorf("update budget: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBudget removes a budget owned by userID. Returns the number of
// rows deleted; zero means not found or not owned.
func (s *Store) DeleteBudget(ctx context.Context, userID, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete budget: %w", err)
	}
	return res.RowsAffected()
}
