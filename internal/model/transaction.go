// Package model defines the finance domain types shared by the client and server.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Amount is a monetary value that tolerates sloppy wire encodings.
// DECIMAL columns come back as JSON strings from some backends; anything
// unparsable decodes to zero instead of failing the whole payload.
type Amount float64

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	if len(data) == 0 {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*a = Amount(v)
		}
	}
	return nil
}

// Transaction is a single income or expense entry. Transactions are
// immutable once created; the only mutation is deletion.
type Transaction struct {
	ID       int64  `json:"id"`
	Amount   Amount `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
	Date     string `json:"date"`
}

// Balance returns net income minus expenses over the given transactions.
// Unknown types contribute nothing.
func Balance(txs []Transaction) float64 {
	var total float64
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			total += float64(t.Amount)
		case TypeExpense:
			total -= float64(t.Amount)
		}
	}
	return total
}
