package model

import "math"

// Budget is a per-category spending ceiling. One budget per category is the
// intended usage; the limit is the only mutable field.
type Budget struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// BudgetStatus joins a budget with the spend accumulated against it.
type BudgetStatus struct {
	Budget
	Spent   float64
	Percent int
	Over    bool
}

// Status computes the spend position of b against the given transactions.
// Only expense transactions in the budget's category count.
func (b Budget) Status(txs []Transaction) BudgetStatus {
	var spent float64
	for _, t := range txs {
		if t.Type == TypeExpense && t.Category == b.Category {
			spent += float64(t.Amount)
		}
	}

	pct := 0
	if b.Limit > 0 {
		pct = int(math.Round(spent / b.Limit * 100))
	}

	return BudgetStatus{
		Budget:  b,
		Spent:   spent,
		Percent: pct,
		Over:    spent > b.Limit,
	}
}

// BudgetStatuses computes Status for every budget in order.
func BudgetStatuses(budgets []Budget, txs []Transaction) []BudgetStatus {
	out := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		out[i] = b.Status(txs)
	}
	return out
}
