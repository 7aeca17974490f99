package model

import "sort"

// CategoryTotal is the spend accumulated in one category.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Summary aggregates a transaction list for the reports screen.
type Summary struct {
	Income     float64
	Expense    float64
	Net        float64
	ByCategory []CategoryTotal // expense categories, largest first
}

// Summarize aggregates income, expense, and per-category expense totals.
func Summarize(txs []Transaction) Summary {
	var s Summary
	byCat := make(map[string]float64)

	for _, t := range txs {
		amt := float64(t.Amount)
		switch t.Type {
		case TypeIncome:
			s.Income += amt
		case TypeExpense:
			s.Expense += amt
			byCat[t.Category] += amt
		}
	}
	s.Net = s.Income - s.Expense

	s.ByCategory = make([]CategoryTotal, 0, len(byCat))
	for cat, total := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Total != s.ByCategory[j].Total {
			return s.ByCategory[i].Total > s.ByCategory[j].Total
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	return s
}
