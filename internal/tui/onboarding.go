package tui

import (
	"strings"

	"github.com/moneygrow/moneygrow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// viewOnboarding renders the first-run welcome shown before the auth
// gate. Dismissing it persists the onboarding flag.
func (a App) viewOnboarding() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	mutedStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	accentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Welcome to moneygrow"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Track income and expenses, set category"))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render("budgets, and watch where your money goes."))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("  • Record transactions with categories"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  • Set monthly spending limits"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  • See income vs expense reports"))
	b.WriteString("\n\n")
	b.WriteString(accentStyle.Render("Press Enter to get started"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
