// Package tui provides the interactive Bubble Tea interface for moneygrow.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/state"
	"github.com/moneygrow/moneygrow/internal/tui/components"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StateChangedMsg is sent whenever the state store notifies subscribers.
type StateChangedMsg struct{}

// MutationDoneMsg is sent when a write to the finance API finishes.
type MutationDoneMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	store  *state.Store
	client *api.Client

	// Store subscription
	events <-chan struct{}
	unsub  func()

	// Last observed store snapshot; all tabs render from this.
	snap state.Snapshot

	// UI state
	width          int
	height         int
	activeTab      int
	showHelp       bool
	showOnboarding bool
	alert          string // dismissible mutation-failure line
	mutating       bool
	refreshing     bool

	spinner spinner.Model

	// Auth gate
	auth authState

	// Per-tab state
	txs      txState
	budgets  budgetState
	settings settingsState
}

const (
	tabHome = iota
	tabTransactions
	tabBudgets
	tabReports
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the root TUI model around an already-seeded store.
func NewApp(st *state.Store, client *api.Client) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	events, unsub := st.Subscribe()

	a := App{
		store:          st,
		client:         client,
		events:         events,
		unsub:          unsub,
		snap:           st.Snapshot(),
		showOnboarding: !st.HasSeenOnboarding(),
		spinner:        sp,
	}
	a.auth.vals = &authValues{}
	a.auth.form = a.newLoginForm()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		waitForStateChange(a.events),
		a.spinner.Tick,
	}
	if !a.snap.LoggedIn() && !a.showOnboarding {
		cmds = append(cmds, a.auth.form.Init())
	}
	// A persisted token may still be valid; refresh in the background so
	// the last session's data appears without re-login.
	if a.snap.LoggedIn() {
		cmds = append(cmds, refreshCmd(a.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.auth.form != nil {
			a.auth.form = a.auth.form.WithWidth(authFormWidth(msg.Width))
		}
		if a.txs.form != nil {
			a.txs.form = a.txs.form.WithWidth(authFormWidth(msg.Width))
		}
		if a.budgets.form != nil {
			a.budgets.form = a.budgets.form.WithWidth(authFormWidth(msg.Width))
		}
		return a, nil

	case StateChangedMsg:
		a.snap = a.store.Snapshot()
		a.refreshing = false
		a.clampCursors()
		return a, waitForStateChange(a.events)

	case AuthResultMsg:
		cmd := a.handleAuthResult(msg)
		return a, cmd

	case MutationDoneMsg:
		a.mutating = false
		if msg.Err != nil {
			a.alert = mutationFailMessage(msg.Err)
		} else {
			a.alert = ""
		}
		return a, nil

	case RefreshDoneMsg:
		a.refreshing = false
		return a, nil

	case spinner.TickMsg:
		if a.mutating || a.refreshing || a.auth.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.snap.LoggedIn() || a.showHelp || a.formActive() {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabTransactions && a.txs.cursor > 0 {
				a.txs.cursor--
			}
			if a.activeTab == tabBudgets && a.budgets.cursor > 0 {
				a.budgets.cursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabTransactions && a.txs.cursor < len(a.snap.Transactions)-1 {
				a.txs.cursor++
			}
			if a.activeTab == tabBudgets && a.budgets.cursor < len(a.snap.Budgets)-1 {
				a.budgets.cursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	// Forward everything else (cursor blinks, form ticks) to whichever
	// form is active.
	if !a.snap.LoggedIn() && !a.showOnboarding {
		return a.updateAuth(msg)
	}
	if a.txs.form != nil {
		return a.updateTransactionForm(msg)
	}
	if a.budgets.form != nil {
		return a.updateBudgetForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.unsub()
		return a, tea.Quit
	}

	// First-run welcome intercepts all keys.
	if a.showOnboarding {
		if key == "enter" {
			a.store.MarkOnboardingSeen()
			a.showOnboarding = false
			if !a.snap.LoggedIn() {
				return a, a.auth.form.Init()
			}
		}
		return a, nil
	}

	// Auth gate intercepts all keys while logged out.
	if !a.snap.LoggedIn() {
		return a.updateAuth(msg)
	}

	// Active forms intercept all keys.
	if a.txs.form != nil {
		return a.updateTransactionForm(msg)
	}
	if a.budgets.form != nil {
		return a.updateBudgetForm(msg)
	}

	// Help toggle / dismiss
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Dismiss the failure alert.
	if a.alert != "" && key == "esc" {
		a.alert = ""
		return a, nil
	}

	// Per-tab keybindings get first refusal.
	switch a.activeTab {
	case tabTransactions:
		if model, cmd, handled := a.updateTransactionsKeys(key); handled {
			return model, cmd
		}
	case tabBudgets:
		if model, cmd, handled := a.updateBudgetsKeys(key); handled {
			return model, cmd
		}
	case tabSettings:
		if model, cmd, handled := a.updateSettingsKeys(key); handled {
			return model, cmd
		}
	}

	switch key {
	case "q":
		a.unsub()
		return a, tea.Quit
	case "R":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.spinner.Tick, refreshCmd(a.store))
		}
		return a, nil
	case "h":
		a.activeTab = tabHome
	case "t":
		a.activeTab = tabTransactions
	case "b":
		a.activeTab = tabBudgets
	case "r":
		a.activeTab = tabReports
	case "x":
		a.activeTab = tabSettings
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	return a, nil
}

func (a App) formActive() bool {
	return a.txs.form != nil || a.budgets.form != nil
}

func (a *App) clampCursors() {
	if a.txs.cursor >= len(a.snap.Transactions) {
		a.txs.cursor = len(a.snap.Transactions) - 1
	}
	if a.txs.cursor < 0 {
		a.txs.cursor = 0
	}
	if a.budgets.cursor >= len(a.snap.Budgets) {
		a.budgets.cursor = len(a.snap.Budgets) - 1
	}
	if a.budgets.cursor < 0 {
		a.budgets.cursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showOnboarding {
		return a.viewOnboarding()
	}
	if !a.snap.LoggedIn() {
		return a.viewAuth()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  moneygrow needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
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

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"h t b r x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add expense / budget"},
		{"i", "Add income"},
		{"e", "Edit budget limit"},
		{"d", "Delete selected"},
		{"R", "Refresh data"},
		{"Esc", "Dismiss / Cancel"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	username := a.snap.Username
	statusBar := components.RenderStatusBar(w, username, a.refreshing || a.mutating)

	// Mutation failures ride above the status bar until dismissed.
	alertLine := ""
	if a.alert != "" {
		alertStyle := lipgloss.NewStyle().
			Foreground(t.Red).
			Width(w)
		alertLine = alertStyle.Render(" ✗ " + a.alert + "  (esc to dismiss)")
	}

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	alertH := 0
	if alertLine != "" {
		alertH = lipgloss.Height(alertLine)
	}
	contentH := h - headerH - statusH - alertH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabHome:
		content = a.renderHomeTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabReports:
		content = a.renderReportsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	parts := []string{header, content}
	if alertLine != "" {
		parts = append(parts, alertLine)
	}
	parts = append(parts, statusBar)
	output := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// waitForStateChange blocks until the store notifies.
func waitForStateChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-events
		return StateChangedMsg{}
	}
}

// RefreshDoneMsg is sent when a manual refresh completes.
type RefreshDoneMsg struct{}

func refreshCmd(st *state.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		st.RefreshAll(ctx)
		st.FetchProfile(ctx)
		return RefreshDoneMsg{}
	}
}

func mutationFailMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expired. Log out and sign in again."
	case errors.Is(err, api.ErrNotFound):
		return "Operation failed."
	}
	var re *api.RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return "Could not reach the server."
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := len(tab.Name)
		if i != a.activeTab && tab.KeyPos < 0 {
			tabW += 3 // trailing "[x]"
		} else if i != a.activeTab {
			tabW += 2 // brackets around the shortcut letter
		}
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}
