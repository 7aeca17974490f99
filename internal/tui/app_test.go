package tui

import (
	"strings"
	"testing"

	"github.com/moneygrow/moneygrow/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < len(components.Tabs); active++ {
		a := App{activeTab: active}
		pos := 1 // leading space

		for i := range components.Tabs {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 2 // separator
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	tab := components.Tabs[tabIdx]
	w := len(tab.Name)
	if tabIdx == activeIdx {
		return w
	}
	if tab.KeyPos < 0 {
		return w + 3 // trailing "[x]"
	}
	return w + 2 // brackets around the shortcut letter
}

func TestTabAtXOutsideTabs(t *testing.T) {
	a := App{}
	if got := a.tabAtX(500); got != -1 {
		t.Fatalf("far right click -> tab=%d, want -1", got)
	}
}

func TestTruncStr(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Groceries", 20, "Groceries"},
		{"Groceries", 9, "Groceries"},
		{"Groceries", 5, "Groc…"},
		{"Groceries", 0, ""},
		{"", 5, ""},
	}
	for _, c := range cases {
		if got := truncStr(c.in, c.limit); got != c.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", c.in, c.limit, got, c.want)
		}
	}
}

func TestPadAndTruncateHeight(t *testing.T) {
	s := "a\nb\nc"

	if got := truncateHeight(s, 2); got != "a\nb" {
		t.Errorf("truncateHeight = %q", got)
	}
	if got := truncateHeight(s, 5); got != s {
		t.Errorf("truncateHeight under limit = %q", got)
	}

	padded := padHeight(s, 5)
	if lines := strings.Count(padded, "\n") + 1; lines != 5 {
		t.Errorf("padHeight produced %d lines, want 5", lines)
	}
	if got := padHeight(s, 2); got != s {
		t.Errorf("padHeight over limit = %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user@example.com", " padded@example.com "}
	for _, s := range valid {
		if err := validateEmail(s); err != nil {
			t.Errorf("validateEmail(%q) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", "noat", "@lead.com", "trail@", "no@dots"}
	for _, s := range invalid {
		if err := validateEmail(s); err == nil {
			t.Errorf("validateEmail(%q) = nil, want error", s)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validatePassword("12345"); err == nil {
		t.Error("short password accepted")
	}
	if err := validatePassword("123456"); err != nil {
		t.Errorf("six chars rejected: %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	valid := []string{"1", "0.01", " 120.50 ", "9999"}
	for _, s := range valid {
		if err := validateAmount(s); err != nil {
			t.Errorf("validateAmount(%q) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", "abc", "0", "-5", "1.2.3"}
	for _, s := range invalid {
		if err := validateAmount(s); err == nil {
			t.Errorf("validateAmount(%q) = nil, want error", s)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := validateDate(""); err != nil {
		t.Errorf("empty date rejected: %v", err)
	}
	if err := validateDate("2025-03-01"); err != nil {
		t.Errorf("iso date rejected: %v", err)
	}
	if err := validateDate("03/01/2025"); err == nil {
		t.Error("slash date accepted")
	}
	if err := validateDate("2025-13-40"); err == nil {
		t.Error("impossible date accepted")
	}
}
