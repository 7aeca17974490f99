package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"token":"tok-1","username":"alice","phone":"0812345678"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	res, err := c.Login(context.Background(), "a@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" || res.Username != "alice" {
		t.Fatalf("Login result = %+v", res)
	}
}

func TestLoginBadPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Incorrect password."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.Login(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestBearerHeaderOnProtectedCalls(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.ListTransactions(context.Background(), "tok-9"); err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Fatalf("Authorization = %q, want Bearer tok-9", gotAuth)
	}
}

func TestListTransactionsDecodesStringAmounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"amount":"120.50","type":"expense","category":"Food","date":"2025-03-01"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	txs, err := c.ListTransactions(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 || float64(txs[0].Amount) != 120.5 {
		t.Fatalf("transactions = %+v", txs)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"401", http.StatusUnauthorized, `{}`, func(err error) bool { return errors.Is(err, ErrUnauthorized) }},
		{"403", http.StatusForbidden, `{}`, func(err error) bool { return errors.Is(err, ErrUnauthorized) }},
		{"404", http.StatusNotFound, `{}`, func(err error) bool { return errors.Is(err, ErrNotFound) }},
		{"400 with message", http.StatusBadRequest, `{"success":false,"message":"Invalid amount."}`, func(err error) bool {
			var re *RequestError
			return errors.As(err, &re) && re.Message == "Invalid amount."
		}},
		{"500", http.StatusInternalServerError, `{"success":false}`, func(err error) bool {
			var re *RequestError
			return errors.As(err, &re) && re.Status == http.StatusInternalServerError
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 0)
			err := c.DeleteTransaction(context.Background(), "tok", 5)
			if err == nil || !tc.check(err) {
				t.Fatalf("err = %v, mapping failed", err)
			}
		})
	}
}

func TestNonJSONBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.ListBudgets(context.Background(), "tok"); err == nil {
		t.Fatal("expected parse error for non-JSON body")
	}
}

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":3,"username":"bob","email":"b@example.com","phone":""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	p, err := c.FetchProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.ID != 3 || p.Username != "bob" {
		t.Fatalf("profile = %+v", p)
	}
}
