package components

import (
	"fmt"
	"strings"

	"github.com/moneygrow/moneygrow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ColumnPair renders two labeled vertical columns scaled against each
// other, used for the income vs expense comparison.
func ColumnPair(leftLabel string, leftVal float64, rightLabel string, rightVal float64, height int) string {
	t := theme.Active

	if height < 3 {
		height = 3
	}
	peak := leftVal
	if rightVal > peak {
		peak = rightVal
	}
	if peak == 0 {
		peak = 1
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	colW := 8
	gap := 4

	leftStyle := lipgloss.NewStyle().Foreground(t.Green)
	rightStyle := lipgloss.NewStyle().Foreground(t.Red)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	cell := func(v float64, row int, style lipgloss.Style) string {
		rowTop := peak * float64(row) / float64(height)
		rowBottom := peak * float64(row-1) / float64(height)
		switch {
		case v >= rowTop:
			return style.Render(strings.Repeat("█", colW))
		case v > rowBottom:
			frac := (v - rowBottom) / (rowTop - rowBottom)
			idx := int(frac * 8)
			if idx > 8 {
				idx = 8
			}
			if idx < 1 {
				idx = 1
			}
			return style.Render(strings.Repeat(string(blocks[idx]), colW))
		default:
			return strings.Repeat(" ", colW)
		}
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		b.WriteString("  ")
		b.WriteString(cell(leftVal, row, leftStyle))
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(cell(rightVal, row, rightStyle))
		b.WriteString("\n")
	}

	b.WriteString("  ")
	b.WriteString(axisStyle.Render(strings.Repeat("─", colW*2+gap)))
	b.WriteString("\n  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", colW+gap, leftLabel)))
	b.WriteString(labelStyle.Render(rightLabel))

	return b.String()
}

// HBarList renders labeled horizontal bars, one per entry, scaled
// against the largest value. Used for the per-category breakdown.
func HBarList(labels []string, values []float64, amounts []string, width int) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	labelW := 0
	for _, l := range labels {
		if len(l) > labelW {
			labelW = len(l)
		}
	}
	amountW := 0
	for _, a := range amounts {
		if len(a) > amountW {
			amountW = len(a)
		}
	}

	barW := width - labelW - amountW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, l := range labels {
		n := int(values[i] / peak * float64(barW))
		if n < 1 && values[i] > 0 {
			n = 1
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, l)))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", barW-n))
		b.WriteString("  ")
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, amounts[i])))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
