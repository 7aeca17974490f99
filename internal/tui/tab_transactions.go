package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"
	"github.com/moneygrow/moneygrow/internal/state"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// txState tracks the transactions tab: list cursor plus the add form
// when one is open.
type txState struct {
	cursor int
	form   *huh.Form
	vals   *txFormValues
}

type txFormValues struct {
	txType   string
	category string
	amount   string
	note     string
	date     string
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func (a *App) newTransactionForm(txType string) *huh.Form {
	vals := &txFormValues{
		txType: txType,
		date:   time.Now().Format("2006-01-02"),
	}
	a.txs.vals = vals

	cats := model.CategoriesFor(txType)
	opts := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		opts[i] = huh.NewOption(c.Name, c.Name)
	}

	title := "Add expense"
	if txType == model.TypeIncome {
		title = "Add income"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&vals.category),
			huh.NewInput().
				Title("Amount").
				Value(&vals.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Note").
				Value(&vals.note),
			huh.NewInput().
				Title("Date").
				Value(&vals.date).
				Validate(validateDate),
		).Title(title),
	)
	if a.width > 0 {
		form = form.WithWidth(authFormWidth(a.width))
	}
	return form
}

func (a App) updateTransactionsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.txs.cursor < len(a.snap.Transactions)-1 {
			a.txs.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.txs.cursor > 0 {
			a.txs.cursor--
		}
		return a, nil, true
	case "a":
		a.txs.form = a.newTransactionForm(model.TypeExpense)
		return a, a.txs.form.Init(), true
	case "i":
		a.txs.form = a.newTransactionForm(model.TypeIncome)
		return a, a.txs.form.Init(), true
	case "d":
		if a.mutating || a.txs.cursor >= len(a.snap.Transactions) {
			return a, nil, true
		}
		tx := a.snap.Transactions[a.txs.cursor]
		a.mutating = true
		return a, tea.Batch(a.spinner.Tick, deleteTransactionCmd(a.store, tx.ID)), true
	}
	return a, nil, false
}

func (a App) updateTransactionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.txs.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.txs.form = f
	}

	if a.txs.form.State == huh.StateAborted {
		a.txs.form = nil
		a.txs.vals = nil
		return a, nil
	}

	if a.txs.form.State == huh.StateCompleted {
		vals := a.txs.vals
		a.txs.form = nil
		a.txs.vals = nil

		amount, err := strconv.ParseFloat(strings.TrimSpace(vals.amount), 64)
		if err != nil || amount <= 0 {
			return a, nil
		}
		in := api.TransactionInput{
			Amount:   amount,
			Type:     vals.txType,
			Category: vals.category,
			Note:     strings.TrimSpace(vals.note),
			Date:     strings.TrimSpace(vals.date),
		}
		a.mutating = true
		return a, tea.Batch(a.spinner.Tick, addTransactionCmd(a.store, in))
	}

	return a, cmd
}

func addTransactionCmd(st *state.Store, in api.TransactionInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return MutationDoneMsg{Err: st.AddTransaction(ctx, in)}
	}
}

func deleteTransactionCmd(st *state.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return MutationDoneMsg{Err: st.DeleteTransaction(ctx, id)}
	}
}

func (a App) renderTransactionsTab(width, height int) string {
	if a.txs.form != nil {
		return a.renderCenteredForm(a.txs.form, width, height)
	}

	t := theme.Active
	txs := a.snap.Transactions

	header := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true).
		Render(fmt.Sprintf(" Transactions (%d)", len(txs)))

	hint := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background).
		Render(" [a]expense  [i]income  [d]elete  [j/k]move")

	if len(txs) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Background).
			Render("\n No transactions yet. Press [a] to add an expense or [i] for income.")
		return lipgloss.JoinVertical(lipgloss.Left, header, hint, empty)
	}

	// Rows visible after the header and hint lines.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.txs.cursor >= visible {
		start = a.txs.cursor - visible + 1
	}
	end := start + visible
	if end > len(txs) {
		end = len(txs)
	}

	dateW := 7
	amountW := 12
	catW := 18
	noteW := width - dateW - catW - amountW - 10
	if noteW < 6 {
		noteW = 6
	}

	rowStyle := lipgloss.NewStyle().Background(t.Background)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(hint)
	b.WriteString("\n")

	for i := start; i < end; i++ {
		tx := txs[i]
		bg := t.Background
		base := rowStyle
		marker := "  "
		if i == a.txs.cursor {
			bg = t.SurfaceHover
			base = selStyle
			marker = "▸ "
		}

		amtColor := t.Red
		if tx.Type == model.TypeIncome {
			amtColor = t.Green
		}

		line := base.Foreground(t.Accent).Render(marker) +
			base.Foreground(t.TextDim).Render(fmt.Sprintf("%-*s", dateW, cli.FormatDate(tx.Date))) +
			base.Foreground(t.TextPrimary).Render("  "+fmt.Sprintf("%-*s", catW, truncStr(tx.Category, catW))) +
			base.Foreground(t.TextMuted).Render("  "+fmt.Sprintf("%-*s", noteW, truncStr(tx.Note, noteW))) +
			lipgloss.NewStyle().Background(bg).Foreground(amtColor).Render(
				fmt.Sprintf("%*s", amountW, cli.FormatSignedMoney(float64(tx.Amount), tx.Type == model.TypeIncome)))

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderCenteredForm shows a huh form inside a bordered card.
func (a App) renderCenteredForm(form *huh.Form, width, height int) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 2).
		Render(form.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
