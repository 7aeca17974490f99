package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moneygrow/moneygrow/internal/api"
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"
	"github.com/moneygrow/moneygrow/internal/state"
	"github.com/moneygrow/moneygrow/internal/tui/components"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// budgetState tracks the budgets tab. editID is non-zero while the open
// form edits an existing budget's limit instead of creating one.
type budgetState struct {
	cursor int
	form   *huh.Form
	vals   *budgetFormValues
	editID int64
}

type budgetFormValues struct {
	category string
	limit    string
}

func (a *App) newBudgetForm() *huh.Form {
	vals := &budgetFormValues{}
	a.budgets.vals = vals

	// One budget per category; categories already budgeted drop out.
	taken := make(map[string]bool, len(a.snap.Budgets))
	for _, b := range a.snap.Budgets {
		taken[b.Category] = true
	}
	var opts []huh.Option[string]
	for _, c := range model.ExpenseCategories {
		if !taken[c.Name] {
			opts = append(opts, huh.NewOption(c.Name, c.Name))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&vals.category),
			huh.NewInput().
				Title("Monthly limit").
				Value(&vals.limit).
				Validate(validateAmount),
		).Title("New budget"),
	)
	if a.width > 0 {
		form = form.WithWidth(authFormWidth(a.width))
	}
	return form
}

func (a *App) newBudgetEditForm(b model.Budget) *huh.Form {
	vals := &budgetFormValues{
		category: b.Category,
		limit:    strconv.FormatFloat(b.Limit, 'f', -1, 64),
	}
	a.budgets.vals = vals
	a.budgets.editID = b.ID

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly limit").
				Value(&vals.limit).
				Validate(validateAmount),
		).Title("Edit " + b.Category + " budget"),
	)
	if a.width > 0 {
		form = form.WithWidth(authFormWidth(a.width))
	}
	return form
}

func (a App) updateBudgetsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.budgets.cursor < len(a.snap.Budgets)-1 {
			a.budgets.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.budgets.cursor > 0 {
			a.budgets.cursor--
		}
		return a, nil, true
	case "a":
		a.budgets.form = a.newBudgetForm()
		return a, a.budgets.form.Init(), true
	case "e":
		if a.budgets.cursor < len(a.snap.Budgets) {
			b := a.snap.Budgets[a.budgets.cursor]
			a.budgets.form = a.newBudgetEditForm(b)
			return a, a.budgets.form.Init(), true
		}
		return a, nil, true
	case "d":
		if a.mutating || a.budgets.cursor >= len(a.snap.Budgets) {
			return a, nil, true
		}
		b := a.snap.Budgets[a.budgets.cursor]
		a.mutating = true
		return a, tea.Batch(a.spinner.Tick, deleteBudgetCmd(a.store, b.ID)), true
	}
	return a, nil, false
}

func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budgets.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgets.form = f
	}

	if a.budgets.form.State == huh.StateAborted {
		a.budgets.form = nil
		a.budgets.vals = nil
		a.budgets.editID = 0
		return a, nil
	}

	if a.budgets.form.State == huh.StateCompleted {
		vals := a.budgets.vals
		editID := a.budgets.editID
		a.budgets.form = nil
		a.budgets.vals = nil
		a.budgets.editID = 0

		limit, err := strconv.ParseFloat(strings.TrimSpace(vals.limit), 64)
		if err != nil || limit <= 0 {
			return a, nil
		}

		a.mutating = true
		if editID != 0 {
			return a, tea.Batch(a.spinner.Tick, updateBudgetCmd(a.store, editID, limit))
		}
		return a, tea.Batch(a.spinner.Tick, addBudgetCmd(a.store, api.BudgetInput{
			Category: vals.category,
			Limit:    limit,
		}))
	}

	return a, cmd
}

func addBudgetCmd(st *state.Store, in api.BudgetInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return MutationDoneMsg{Err: st.AddBudget(ctx, in)}
	}
}

func updateBudgetCmd(st *state.Store, id int64, limit float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return MutationDoneMsg{Err: st.UpdateBudget(ctx, id, limit)}
	}
}

func deleteBudgetCmd(st *state.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return MutationDoneMsg{Err: st.DeleteBudget(ctx, id)}
	}
}

func (a App) renderBudgetsTab(width int) string {
	if a.budgets.form != nil {
		return a.renderCenteredForm(a.budgets.form, width, a.height-4)
	}

	t := theme.Active
	statuses := model.BudgetStatuses(a.snap.Budgets, a.snap.Transactions)

	header := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true).
		Render(fmt.Sprintf(" Budgets (%d)", len(statuses)))

	hint := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background).
		Render(" [a]dd  [e]dit limit  [d]elete  [j/k]move")

	if len(statuses) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Background).
			Render("\n No budgets yet. Press [a] to set a spending limit for a category.")
		return lipgloss.JoinVertical(lipgloss.Left, header, hint, empty)
	}

	inner := components.CardInnerWidth(width)
	labelW := 14
	barW := inner - labelW - 30
	if barW < 10 {
		barW = 10
	}

	var rows []string
	rows = append(rows, header, hint)
	for i, st := range statuses {
		marker := "  "
		if i == a.budgets.cursor {
			marker = "▸ "
		}

		spentColor := lipgloss.Color(components.ColorForPct(float64(st.Percent) / 100))
		detail := lipgloss.NewStyle().Foreground(spentColor).Background(t.Surface).
			Render(fmt.Sprintf("%s / %s", cli.FormatMoney(st.Spent), cli.FormatMoney(st.Limit)))
		if st.Over {
			detail += lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
				Render("  OVER")
		}

		body := components.BudgetBar(truncStr(st.Category, labelW), float64(st.Percent)/100, labelW, barW) +
			"\n" + detail

		card := components.ContentCard(marker+st.Category, body, width)
		rows = append(rows, card)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
