package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{999999.99, "$999,999.99"},
		{-42.25, "-$42.25"},
		{0.999, "$1.00"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-03-01"); got != "Mar 1" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate("2025-03-01T00:00:00Z"); got != "Mar 1" {
		t.Errorf("FormatDate with time = %q", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Errorf("FormatDate passthrough = %q", got)
	}
}
