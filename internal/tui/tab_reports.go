package tui

import (
	"github.com/moneygrow/moneygrow/internal/cli"
	"github.com/moneygrow/moneygrow/internal/model"
	"github.com/moneygrow/moneygrow/internal/tui/components"
	"github.com/moneygrow/moneygrow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const reportCategoryLimit = 10

func (a App) renderReportsTab(width int) string {
	t := theme.Active
	summary := model.Summarize(a.snap.Transactions)

	if len(a.snap.Transactions) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Background).
			Render("\n Nothing to report yet. Add some transactions first.")
	}

	netColor := t.GreenBright
	if summary.Net < 0 {
		netColor = t.Red
	}

	widths := components.LayoutRow(width, 3)
	cards := components.CardRow([]string{
		components.MetricCard("INCOME", cli.FormatMoney(summary.Income), t.Green, widths[0]),
		components.MetricCard("EXPENSES", cli.FormatMoney(summary.Expense), t.Red, widths[1]),
		components.MetricCard("NET", cli.FormatMoney(summary.Net), netColor, widths[2]),
	})

	columns := components.ContentCard("Income vs Expenses",
		components.ColumnPair("Income", summary.Income, "Expenses", summary.Expense, 8),
		width)

	byCat := summary.ByCategory
	if len(byCat) > reportCategoryLimit {
		byCat = byCat[:reportCategoryLimit]
	}
	labels := make([]string, len(byCat))
	values := make([]float64, len(byCat))
	amounts := make([]string, len(byCat))
	for i, ct := range byCat {
		labels[i] = ct.Category
		values[i] = ct.Total
		amounts[i] = cli.FormatMoney(ct.Total)
	}

	breakdown := components.ContentCard("Spending by Category",
		components.HBarList(labels, values, amounts, components.CardInnerWidth(width)),
		width)

	return lipgloss.JoinVertical(lipgloss.Left, cards, columns, breakdown)
}
