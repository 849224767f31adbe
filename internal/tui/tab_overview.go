package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/tui/components"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary

	gainColor := t.Gain
	if s.InvestmentGain < 0 {
		gainColor = t.Loss
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Assets at " + cli.FormatAge(s.EndAge), Value: cli.FormatMan(s.FinalTotal), Note: cli.FormatMan(s.FinalReal) + " in today's money"},
		{Label: "Peak", Value: cli.FormatMan(s.PeakAssets), Note: "at age " + strconv.Itoa(s.PeakAge)},
		{Label: "Saving only", Value: cli.FormatMan(s.FinalSavingsOnly), Note: "without any returns", Color: t.Savings},
		{Label: "Gain from investing", Value: cli.FormatMan(s.InvestmentGain), Note: cli.FormatYen(s.DailyDifference) + " a day for 30 years", Color: gainColor},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Lifetime income", Value: cli.FormatMan(s.LifetimeIncome)},
		{Label: "Lifetime expenses", Value: cli.FormatMan(s.LifetimeExpenses), Note: cli.FormatMan(s.LifetimeEducation) + " on education"},
		{Label: "Enough for", Value: string(s.Lifestyle), Note: s.Lifestyle.Description()},
	}, cw))
	b.WriteString("\n")

	values := make([]float64, len(a.snaps))
	labels := make([]string, len(a.snaps))
	for i, snap := range a.snaps {
		values[i] = snap.TotalAssets
		if snap.Age%10 == 0 {
			labels[i] = strconv.Itoa(snap.Age)
		}
	}
	inner := components.CardInnerWidth(cw)
	chart := components.BarChart(values, labels, t.Accent, inner, 10)
	b.WriteString(components.ContentCard("Total assets by age", chart, cw))

	if s.Depleted() {
		warn := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Background).Bold(true)
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf(" ! Money runs out at %d; %s of expenses go unfunded",
			s.DepletionAge, cli.FormatYen(s.TotalShortfall))))
	}
	return b.String()
}
