package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/tui/components"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

// cashFlowState tracks the cash flow table scroll position.
type cashFlowState struct {
	offset int // index of the first visible year
}

func (s *cashFlowState) clamp(rows int) {
	s.offset = min(max(s.offset, 0), max(rows-1, 0))
}

func (s *cashFlowState) scroll(delta, rows int) {
	s.offset += delta
	s.clamp(rows)
}

func (s *cashFlowState) handleKey(key string, rows, page int) {
	switch key {
	case "j", "down":
		s.scroll(1, rows)
	case "k", "up":
		s.scroll(-1, rows)
	case "ctrl+d", "pgdown":
		s.scroll(max(1, page/2), rows)
	case "ctrl+u", "pgup":
		s.scroll(-max(1, page/2), rows)
	case "g", "home":
		s.offset = 0
	case "G", "end":
		s.offset = max(rows-page, 0)
	}
}

var cashFlowColumns = []struct {
	title string
	width int
}{
	{"Age", 4},
	{"Income", 9},
	{"Living", 9},
	{"Housing", 9},
	{"School", 9},
	{"Events", 8},
	{"Surplus", 9},
	{"Cash", 9},
	{"Invested", 9},
	{"Total", 9},
}

func cashFlowCells(s model.YearlySnapshot) []string {
	return []string{
		strconv.Itoa(s.Age),
		cli.FormatMan(s.TotalIncome),
		cli.FormatMan(s.Living),
		cli.FormatMan(s.Housing),
		cli.FormatMan(s.Education),
		cli.FormatMan(s.Events),
		cli.FormatMan(s.Surplus),
		cli.FormatMan(s.CashAssets),
		cli.FormatMan(s.InvestmentAssets),
		cli.FormatMan(s.TotalAssets),
	}
}

func (a App) renderCashFlowTab(cw, h int) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	retiredStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	header := make([]string, len(cashFlowColumns))
	for i, col := range cashFlowColumns {
		header[i] = headStyle.Render(alignRight(col.title, col.width))
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, space))
	b.WriteString("\n")

	visible := max(1, h-4) // card border, title and header
	end := min(len(a.snaps), a.flow.offset+visible)
	for _, snap := range a.snaps[a.flow.offset:end] {
		style := rowStyle
		if snap.Age >= a.plan.Primary.RetirementAge {
			style = retiredStyle
		}
		cells := cashFlowCells(snap)
		parts := make([]string, len(cells))
		for i, c := range cells {
			text := alignRight(c, cashFlowColumns[i].width)
			switch {
			case i == 6 && snap.Surplus < 0:
				parts[i] = lossStyle.Render(text)
			case i == 6:
				parts[i] = gainStyle.Render(text)
			default:
				parts[i] = style.Render(text)
			}
		}
		b.WriteString(strings.Join(parts, space))
		if snap.Shortfall > 0 {
			b.WriteString(lossStyle.Render(" !"))
		}
		b.WriteString("\n")
	}

	title := "Cash flow (万円)"
	if len(a.snaps) > 0 {
		title += "  " + strconv.Itoa(a.snaps[a.flow.offset].Age) + "–" + strconv.Itoa(a.snaps[end-1].Age)
	}
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}

// alignRight pads s on the left to w display columns.
func alignRight(s string, w int) string {
	return strings.Repeat(" ", max(0, w-lipgloss.Width(s))) + s
}
