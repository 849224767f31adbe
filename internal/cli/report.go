package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
)

// TotalAssetsSeries extracts total assets from a projection for charts.
func TotalAssetsSeries(snaps []model.YearlySnapshot) []float64 {
	out := make([]float64, len(snaps))
	for i, s := range snaps {
		out[i] = s.TotalAssets
	}
	return out
}

// RenderSummary renders the headline result cards for a projection.
func RenderSummary(s projection.Summary, snaps []model.YearlySnapshot) string {
	var b strings.Builder

	b.WriteString(RenderCards("Assets at "+FormatAge(s.EndAge), []KV{
		{"Total", FormatYen(s.FinalTotal)},
		{"In today's money", FormatYen(s.FinalReal)},
		{"Investments", FormatYen(s.FinalInvestments)},
		{"Cash", FormatYen(s.FinalCash)},
		{"Peak", fmt.Sprintf("%s at %d", FormatMan(s.PeakAssets), s.PeakAge)},
	}))
	b.WriteString("\n")

	b.WriteString(RenderCards("Lifetime", []KV{
		{"Income", FormatYen(s.LifetimeIncome)},
		{"Expenses", FormatYen(s.LifetimeExpenses)},
		{"of which education", FormatYen(s.LifetimeEducation)},
	}))
	b.WriteString("\n")

	b.WriteString(RenderCards("Investing versus saving only", []KV{
		{"Savings-only total", FormatYen(s.FinalSavingsOnly)},
		{"Gain from investing", RenderSigned(s.InvestmentGain, FormatDelta(s.FinalTotal, s.FinalSavingsOnly))},
		{"Per day over 30 years", FormatYen(s.DailyDifference)},
		{"Enough for", s.Lifestyle.Description()},
	}))

	if len(snaps) > 0 {
		b.WriteString("\n  ")
		b.WriteString(RenderSparkline(TotalAssetsSeries(snaps)))
		fmt.Fprintf(&b, "  %d → %d\n", s.StartAge, s.EndAge)
	}

	if s.Depleted() {
		b.WriteString("\n")
		b.WriteString(RenderWarning(fmt.Sprintf("money runs out at %d; %s of expenses go unfunded",
			s.DepletionAge, FormatYen(s.TotalShortfall))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderProjectionTable renders one row per every-th year, always keeping the final year.
func RenderProjectionTable(snaps []model.YearlySnapshot, every int) string {
	if every < 1 {
		every = 1
	}
	t := Table{
		Title:   "Yearly projection",
		Headers: []string{"Age", "Income", "Expenses", "Surplus", "Cash", "Investments", "Total", "Real"},
	}
	for i, s := range snaps {
		if i%every != 0 && i != len(snaps)-1 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", s.Age),
			FormatMan(s.TotalIncome),
			FormatMan(s.TotalExpenses + s.RecurringContribution),
			FormatMan(s.Surplus),
			FormatMan(s.CashAssets),
			FormatMan(s.InvestmentAssets),
			FormatMan(s.TotalAssets),
			FormatMan(s.RealTotalAssets),
		})
	}
	return RenderTable(t)
}

// RenderSolution renders a target-solver answer.
func RenderSolution(t projection.Target, sol projection.Solution) string {
	items := []KV{
		{"Target", fmt.Sprintf("%s by %d", FormatYen(t.Asset), t.Age)},
		{"Without extra saving", FormatYen(sol.Baseline)},
	}
	switch {
	case sol.Reached && sol.MonthlySaving == 0:
		items = append(items, KV{"Extra monthly saving", "none needed"})
	case sol.Reached:
		items = append(items,
			KV{"Extra monthly saving", FormatYen(float64(sol.MonthlySaving))},
			KV{"Assets reached", FormatYen(sol.Achieved)},
		)
	default:
		items = append(items, KV{"Extra monthly saving", "out of reach"})
	}

	var b strings.Builder
	b.WriteString(RenderCards("Target", items))
	if t.Asset > 0 {
		b.WriteString("  ")
		b.WriteString(RenderProgressBar(sol.Baseline, t.Asset, 30))
		b.WriteString(" without extra saving\n")
	}
	return b.String()
}

// RenderComparison renders two projections side by side every few years.
func RenderComparison(name string, c projection.Comparison, every int) string {
	if every < 1 {
		every = 1
	}
	if name == "" {
		name = "Variant"
	}
	t := Table{
		Title:   "Plan comparison",
		Headers: []string{"Age", "Base", name, "Difference"},
	}
	for i, r := range c.Rows {
		if i%every != 0 && i != len(c.Rows)-1 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Age),
			FormatMan(r.Base),
			FormatMan(r.Variant),
			RenderSigned(r.Delta, FormatDelta(r.Variant, r.Base)),
		})
	}
	t.Rows = append(t.Rows, []string{"---"}, []string{
		"Final",
		FormatYen(c.BaseFinal),
		FormatYen(c.VariantFinal),
		RenderSigned(c.FinalDelta, FormatDelta(c.VariantFinal, c.BaseFinal)),
	})
	return RenderTable(t)
}

// RenderCostTables renders the effective education and pension tables.
func RenderCostTables(t config.CostTables) string {
	edu := Table{
		Title:   "Education (annual)",
		Headers: []string{"Stage", "Track", "Cost"},
	}
	for _, stage := range model.Stages {
		tracks := make([]string, 0, len(t.Education[stage]))
		for track := range t.Education[stage] {
			tracks = append(tracks, track)
		}
		sort.Strings(tracks)
		for _, track := range tracks {
			edu.Rows = append(edu.Rows, []string{string(stage), track, FormatYen(t.Education[stage][track])})
		}
	}

	pension := Table{
		Title:   "Pension (annual)",
		Headers: []string{"Employment", "Amount"},
	}
	for _, emp := range []model.EmploymentType{model.EmploymentEmployee, model.EmploymentSelfEmployed, model.EmploymentNone} {
		pension.Rows = append(pension.Rows, []string{string(emp), FormatYen(t.PensionFor(emp))})
	}

	var b strings.Builder
	b.WriteString(RenderTable(edu))
	b.WriteString("\n")
	b.WriteString(RenderTable(pension))
	b.WriteString("\n")
	b.WriteString(RenderCards("", []KV{
		{"Retirement living (monthly)", FormatYen(t.RetirementLivingMonthly)},
	}))
	return b.String()
}

// RenderSavings renders the invest-versus-deposit simulation.
func RenderSavings(rows []projection.SavingsRow, every int) string {
	if every < 1 {
		every = 1
	}
	t := Table{
		Title:   "Investing versus bank deposit",
		Headers: []string{"Age", "Invested", "Bank", "Principal"},
	}
	for i, r := range rows {
		if i%every != 0 && i != len(rows)-1 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Age), FormatMan(r.Invested), FormatMan(r.Bank), FormatMan(r.Principal),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(t))
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		daily := projection.DailyDifference(last.Invested, last.Bank)
		b.WriteString("\n")
		b.WriteString(RenderCards("", []KV{
			{"Difference", RenderSigned(last.Invested-last.Bank, FormatDelta(last.Invested, last.Bank))},
			{"Per day over 30 years", FormatYen(daily)},
			{"Enough for", projection.TierFor(daily).Description()},
		}))

		top := max(last.Invested, last.Bank, last.Principal)
		b.WriteString("\n")
		for _, bar := range []struct {
			label string
			value float64
		}{
			{"Invested", last.Invested},
			{"Bank", last.Bank},
			{"Principal", last.Principal},
		} {
			b.WriteString(RenderHorizontalBar(padRight(bar.label, 9), bar.value, top, 30))
			b.WriteString(" " + FormatMan(bar.value) + "\n")
		}
	}
	return b.String()
}
