package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `120.5`, 120.5},
		{"integer", `300`, 300},
		{"string", `"99.95"`, 99.95},
		{"string with spaces", `" 42 "`, 42},
		{"garbage string", `"12abc"`, 0},
		{"null", `null`, 0},
		{"bool", `true`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tc.in, err)
			}
			if float64(a) != tc.want {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tc.in, float64(a), tc.want)
			}
		})
	}
}

func TestAmountInsideTransaction(t *testing.T) {
	// MySQL DECIMAL columns serialize as strings; the whole row must still decode.
	raw := `{"id":7,"amount":"250.00","type":"expense","category":"Food","date":"2025-03-01"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("Unmarshal transaction: %v", err)
	}
	if tx.ID != 7 || float64(tx.Amount) != 250 || tx.Category != "Food" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestBalance(t *testing.T) {
	txs := []Transaction{
		{Amount: 100, Type: TypeIncome},
		{Amount: 40, Type: TypeExpense},
	}
	if got := Balance(txs); got != 60 {
		t.Fatalf("Balance = %v, want 60", got)
	}
}

func TestBalanceEmpty(t *testing.T) {
	if got := Balance(nil); got != 0 {
		t.Fatalf("Balance(nil) = %v, want 0", got)
	}
}

func TestBalanceIgnoresUnknownTypes(t *testing.T) {
	txs := []Transaction{
		{Amount: 100, Type: TypeIncome},
		{Amount: 999, Type: "transfer"},
	}
	if got := Balance(txs); got != 100 {
		t.Fatalf("Balance = %v, want 100", got)
	}
}

func TestBudgetStatus(t *testing.T) {
	b := Budget{ID: 1, Category: "Food", Limit: 500}
	txs := []Transaction{
		{Amount: 120, Type: TypeExpense, Category: "Food"},
		{Amount: 80, Type: TypeExpense, Category: "Transport"},
		{Amount: 1000, Type: TypeIncome, Category: "Salary"},
	}

	st := b.Status(txs)
	if st.Spent != 120 {
		t.Fatalf("Spent = %v, want 120", st.Spent)
	}
	if st.Percent != 24 {
		t.Fatalf("Percent = %d, want 24", st.Percent)
	}
	if st.Over {
		t.Fatal("Over = true, want false")
	}
}

func TestBudgetStatusOverspend(t *testing.T) {
	b := Budget{Category: "Food", Limit: 100}
	txs := []Transaction{{Amount: 150, Type: TypeExpense, Category: "Food"}}

	st := b.Status(txs)
	if !st.Over {
		t.Fatal("Over = false, want true")
	}
	if st.Percent != 150 {
		t.Fatalf("Percent = %d, want 150", st.Percent)
	}
}

func TestBudgetStatusZeroLimit(t *testing.T) {
	b := Budget{Category: "Food"}
	st := b.Status([]Transaction{{Amount: 10, Type: TypeExpense, Category: "Food"}})
	if st.Percent != 0 {
		t.Fatalf("Percent = %d, want 0 for zero limit", st.Percent)
	}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Amount: 1000, Type: TypeIncome, Category: "Salary"},
		{Amount: 120, Type: TypeExpense, Category: "Food"},
		{Amount: 60, Type: TypeExpense, Category: "Food"},
		{Amount: 200, Type: TypeExpense, Category: "Transport"},
	}

	s := Summarize(txs)
	if s.Income != 1000 || s.Expense != 380 {
		t.Fatalf("Income/Expense = %v/%v, want 1000/380", s.Income, s.Expense)
	}
	if math.Abs(s.Net-620) > 1e-9 {
		t.Fatalf("Net = %v, want 620", s.Net)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("ByCategory len = %d, want 2", len(s.ByCategory))
	}
	if s.ByCategory[0].Category != "Transport" || s.ByCategory[0].Total != 200 {
		t.Fatalf("top category = %+v, want Transport/200", s.ByCategory[0])
	}
	if s.ByCategory[1].Category != "Food" || s.ByCategory[1].Total != 180 {
		t.Fatalf("second category = %+v, want Food/180", s.ByCategory[1])
	}
}

func TestIconFor(t *testing.T) {
	if got := IconFor("Food"); got != "restaurant" {
		t.Fatalf("IconFor(Food) = %q, want restaurant", got)
	}
	if got := IconFor("Salary"); got != "wallet" {
		t.Fatalf("IconFor(Salary) = %q, want wallet", got)
	}
	if got := IconFor("nope"); got != "ellipsis" {
		t.Fatalf("IconFor(nope) = %q, want ellipsis", got)
	}
}
