package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/moneygrow/moneygrow/internal/tui/components"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingsState tracks the cursor on the settings tab.
type settingsState struct {
	cursor int
}

const (
	settingTheme = iota
	settingLogout
	settingCount
)

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter", " ":
		switch a.settings.cursor {
		case settingTheme:
			a.cycleTheme()
			return a, nil, true
		case settingLogout:
			a.store.SetToken(context.Background(), "", "")
			a.snap = a.store.Snapshot()
			a.auth = authState{mode: authModeLogin, vals: &authValues{}}
			a.auth.form = a.newLoginForm()
			a.activeTab = tabHome
			return a, a.auth.form.Init(), true
		}
		return a, nil, true
	}
	return a, nil, false
}

// cycleTheme advances to the next theme and persists the choice.
func (a *App) cycleTheme() {
	current := a.snap.Theme
	next := 0
	for i, t := range theme.All {
		if t.Name == current {
			next = (i + 1) % len(theme.All)
			break
		}
	}
	a.store.SetTheme(theme.All[next].Name)
	a.snap = a.store.Snapshot()
}

func (a App) renderSettingsTab(width int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	account := fmt.Sprintf("%s  %s",
		labelStyle.Render("Signed in as"),
		valueStyle.Render(a.snap.Username))
	accountCard := components.ContentCard("Account", account, width)

	rows := []string{
		a.renderSettingRow(settingTheme, "Theme", a.snap.Theme+"  (enter to change)"),
		a.renderSettingRow(settingLogout, "Log out", "clears the saved session"),
	}

	swatches := renderThemeSwatches(a.snap.Theme)

	optionsCard := components.ContentCard("Preferences",
		strings.Join(rows, "\n")+"\n\n"+swatches, width)

	hint := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background).
		Render(" [j/k]move  [enter]select")

	return lipgloss.JoinVertical(lipgloss.Left, accountCard, optionsCard, hint)
}

func (a App) renderSettingRow(idx int, label, value string) string {
	t := theme.Active

	marker := "  "
	labelColor := t.TextPrimary
	if idx == a.settings.cursor {
		marker = "▸ "
		labelColor = t.AccentBright
	}

	return lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(marker) +
		lipgloss.NewStyle().Foreground(labelColor).Background(t.Surface).Bold(idx == a.settings.cursor).
			Render(fmt.Sprintf("%-10s", label)) +
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("  "+value)
}

// renderThemeSwatches draws one accent-colored block per theme, with the
// active theme marked.
func renderThemeSwatches(active string) string {
	t := theme.Active

	var b strings.Builder
	for i, th := range theme.All {
		swatch := lipgloss.NewStyle().
			Foreground(th.Accent).
			Background(t.Surface).
			Render("██")
		name := th.Name
		if th.Name == active {
			name = "[" + name + "]"
		}
		b.WriteString(swatch)
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(" " + name))
		if i < len(theme.All)-1 {
			b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("   "))
		}
	}
	return b.String()
}
