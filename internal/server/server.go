// Package server implements the finance REST API: account registration
// and login, plus per-user transaction and budget storage.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneygrow/moneygrow/internal/model"
)

const maxRequestBody = 1 << 20 // 1 MB

// Config controls the server runtime.
type Config struct {
	Addr   string
	DBPath string
	Secret string
}

// Server is the finance REST API server.
type Server struct {
	cfg    Config
	store  *Store
	secret []byte
	logger *logrus.Logger
}

// New opens the store and returns a ready server.
func New(cfg Config, logger *logrus.Logger) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "moneygrow.db"
	}
	if cfg.Secret == "" {
		return nil, errors.New("server: JWT secret must be set")
	}
	if logger == nil {
		logger = NewLogger()
	}

	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:    cfg,
		store:  store,
		secret: []byte(cfg.Secret),
		logger: logger,
	}, nil
}

// NewLogger returns the server's structured JSON logger.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Close releases the server's resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.logged("Register", s.handleRegister))
	mux.HandleFunc("POST /api/login", s.logged("Login", s.handleLogin))

	mux.HandleFunc("GET /api/transactions", s.protected("ListTransactions", s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.protected("AddTransaction", s.handleAddTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protected("DeleteTransaction", s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/user", s.protected("GetProfile", s.handleGetProfile))

	mux.HandleFunc("GET /api/budgets", s.protected("ListBudgets", s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.protected("AddBudget", s.handleAddBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.protected("UpdateBudget", s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.protected("DeleteBudget", s.handleDeleteBudget))

	return mux
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("HttpServer.Serve.listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("finance api server: %w", err)
	}
}

// logged wraps a handler with start/complete/error logging.
func (s *Server) logged(name string, handler func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Infof("Handler.%v.Start", name)

		if err := handler(w, r); err != nil {
			s.logger.WithError(err).
				WithField("duration_ms", time.Since(start).Milliseconds()).
				Errorf("Handler.%v.Error", name)
			return
		}

		s.logger.WithField("duration_ms", time.Since(start).Milliseconds()).
			Infof("Handler.%v.Complete", name)
	}
}

// protected wraps a handler with bearer-token verification and logging.
// A missing or malformed Authorization header is 403; a token that fails
// verification is 401.
func (s *Server) protected(name string, handler func(http.ResponseWriter, *http.Request, int64) error) http.HandlerFunc {
	return s.logged(name, func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeEnvelope(w, http.StatusForbidden, false, "No token provided.")
			return nil
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeEnvelope(w, http.StatusForbidden, false, "Invalid token format.")
			return nil
		}

		userID, err := verifySessionToken(s.secret, parts[1])
		if err != nil {
			writeEnvelope(w, http.StatusUnauthorized, false, "Failed to authenticate token.")
			return nil
		}
		return handler(w, r, userID)
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: success, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing body: %w", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Username string `json:"username"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body.")
		return nil
	}
	if in.Username == "" || in.Phone == "" || in.Email == "" || in.Password == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "Please fill in all fields.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error registering account.")
		return fmt.Errorf("hashing password: %w", err)
	}

	if _, err := s.store.CreateUser(r.Context(), in.Username, in.Phone, in.Email, string(hash)); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			writeEnvelope(w, http.StatusConflict, false, "This email is already in use.")
			return nil
		}
		writeEnvelope(w, http.StatusInternalServerError, false, "Error registering account.")
		return err
	}

	writeEnvelope(w, http.StatusCreated, true, "Registration successful!")
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body.")
		return nil
	}

	user, err := s.store.UserByEmail(r.Context(), in.Email)
	if errors.Is(err, sql.ErrNoRows) {
		writeEnvelope(w, http.StatusNotFound, false, "No account found for this email.")
		return nil
	}
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Server error.")
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		writeEnvelope(w, http.StatusUnauthorized, false, "Incorrect password.")
		return nil
	}

	token, err := issueToken(s.secret, user.ID)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Server error.")
		return fmt.Errorf("signing token: %w", err)
	}

	writeJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Token    string `json:"token"`
		Username string `json:"username"`
		Phone    string `json:"phone"`
	}{true, "Login successful!", token, user.Username, user.Phone})
	return nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, userID int64) error {
	txs, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error fetching transactions.")
		return err
	}
	writeJSON(w, http.StatusOK, txs)
	return nil
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request, userID int64) error {
	var in struct {
		Amount   model.Amount `json:"amount"`
		Type     string       `json:"type"`
		Category string       `json:"category"`
		Note     string       `json:"note"`
		Date     string       `json:"date"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body.")
		return nil
	}
	if in.Amount <= 0 {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid amount.")
		return nil
	}
	if in.Type != model.TypeIncome && in.Type != model.TypeExpense {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid transaction type.")
		return nil
	}
	if in.Category == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "Category is required.")
		return nil
	}
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}

	if _, err := s.store.InsertTransaction(r.Context(), userID, float64(in.Amount), in.Type, in.Category, in.Note, in.Date); err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error adding transaction.")
		return err
	}

	writeEnvelope(w, http.StatusCreated, true, "Transaction added successfully!")
	return nil
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, userID int64) error {
	id, err := pathID(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid transaction id.")
		return nil
	}

	affected, err := s.store.DeleteTransaction(r.Context(), userID, id)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error deleting transaction.")
		return err
	}
	if affected == 0 {
		writeEnvelope(w, http.StatusNotFound, false, "Transaction not found or not authorized.")
		return nil
	}

	writeEnvelope(w, http.StatusOK, true, "Transaction deleted successfully!")
	return nil
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, userID int64) error {
	user, err := s.store.UserByID(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeEnvelope(w, http.StatusNotFound, false, "User not found.")
		return nil
	}
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error fetching user profile.")
		return err
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		User    struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
		} `json:"user"`
	}{true, struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}{user.ID, user.Username, user.Email, user.Phone}})
	return nil
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request, userID int64) error {
	budgets, err := s.store.ListBudgets(r.Context(), userID)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error fetching budgets.")
		return err
	}
	writeJSON(w, http.StatusOK, budgets)
	return nil
}

func (s *Server) handleAddBudget(w http.ResponseWriter, r *http.Request, userID int64) error {
	var in struct {
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body.")
		return nil
	}
	if in.Category == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "Category is required.")
		return nil
	}
	if in.Limit <= 0 {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid limit.")
		return nil
	}

	if _, err := s.store.InsertBudget(r.Context(), userID, in.Category, in.Limit); err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error adding budget.")
		return err
	}

	writeEnvelope(w, http.StatusCreated, true, "Budget added successfully!")
	return nil
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request, userID int64) error {
	id, err := pathID(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid budget id.")
		return nil
	}

	var in struct {
		Limit float64 `json:"limit"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body.")
		return nil
	}
	if in.Limit <= 0 {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid limit.")
		return nil
	}

	affected, err := s.store.UpdateBudgetLimit(r.Context(), userID, id, in.Limit)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error updating budget.")
		return err
	}
	if affected == 0 {
		writeEnvelope(w, http.StatusNotFound, false, "Budget not found or not authorized.")
		return nil
	}

	writeEnvelope(w, http.StatusOK, true, "Budget updated successfully!")
	return nil
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request, userID int64) error {
	id, err := pathID(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid budget id.")
		return nil
	}

	affected, err := s.store.DeleteBudget(r.Context(), userID, id)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, false, "Error deleting budget.")
		return err
	}
	if affected == 0 {
		writeEnvelope(w, http.StatusNotFound, false, "Budget not found or not authorized.")
		return nil
	}

	writeEnvelope(w, http.StatusOK, true, "Budget deleted successfully!")
	return nil
}
