// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount as currency with comma separators.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole), cents)
}

// FormatSignedMoney formats an amount with an explicit sign prefix.
// Income is "+", expense is "-".
func FormatSignedMoney(amount float64, income bool) string {
	if income {
		return "+" + FormatMoney(amount)
	}
	return "-" + FormatMoney(amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats an integer percentage.
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatDate renders an ISO date as a short display date, e.g.
// "2025-03-01" -> "Mar 1". Unparsable input is returned as-is.
func FormatDate(iso string) string {
	// Dates from the server may carry a time component.
	candidate := iso
	if len(candidate) > 10 {
		candidate = candidate[:10]
	}
	t, err := time.Parse("2006-01-02", candidate)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2")
}
