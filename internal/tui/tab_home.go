package tui

import (
	"fmt"
	"strings"

	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"
	"github.com/moneygrow/moneygrow/internal/tui/components"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const homeRecentLimit = 8

func (a App) renderHomeTab(width int) string {
	t := theme.Active
	summary := model.Summarize(a.snap.Transactions)

	balanceColor := t.GreenBright
	if a.snap.Balance < 0 {
		balanceColor = t.Red
	}

	widths := components.LayoutRow(width, 3)
	cards := []string{
		components.MetricCard("BALANCE", cli.FormatMoney(a.snap.Balance), balanceColor, widths[0]),
		components.MetricCard("INCOME", cli.FormatMoney(summary.Income), t.Green, widths[1]),
		components.MetricCard("EXPENSES", cli.FormatMoney(summary.Expense), t.Red, widths[2]),
	}
	topRow := components.CardRow(cards)

	recent := components.ContentCard("Recent Transactions", a.renderRecentList(width), width)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, recent)
}

func (a App) renderRecentList(outerWidth int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerWidth)

	txs := a.snap.Transactions
	if len(txs) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Render("No transactions yet. Press [t] then [a] to add one.")
	}
	if len(txs) > homeRecentLimit {
		txs = txs[:homeRecentLimit]
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	// date | category | amount, amount right-aligned
	amountW := 12
	dateW := 7
	catW := inner - dateW - amountW - 4
	if catW < 8 {
		catW = 8
	}

	var b strings.Builder
	for i, tx := range txs {
		amount := cli.FormatSignedMoney(float64(tx.Amount), tx.Type == model.TypeIncome)
		amountStyled := expenseStyle.Render(fmt.Sprintf("%*s", amountW, amount))
		if tx.Type == model.TypeIncome {
			amountStyled = incomeStyle.Render(fmt.Sprintf("%*s", amountW, amount))
		}

		b.WriteString(dateStyle.Render(fmt.Sprintf("%-*s", dateW, cli.FormatDate(tx.Date))))
		b.WriteString(catStyle.Render("  " + fmt.Sprintf("%-*s", catW, truncStr(tx.Category, catW)) + "  "))
		b.WriteString(amountStyled)
		if i < len(txs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
