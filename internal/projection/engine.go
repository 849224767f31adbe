// Package projection runs year-by-year household cash-flow projections and
// the searches built on top of them.
package projection

import (
	"math"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
)

// balances is the mutable state carried from one simulated year to the next.
type balances struct {
	cash        float64
	investments float64 // general bucket, excludes recurring
	recurring   float64
	savingsOnly float64
}

// Project simulates the plan from the primary's current age through MaxAge
// inclusive. The plan is not modified and no state survives the call.
// Non-finite inputs propagate into the output; validate at the boundary.
func Project(plan model.HouseholdPlan, tables config.CostTables) []model.YearlySnapshot {
	years := model.MaxAge - plan.Primary.CurrentAge + 1
	if years <= 0 {
		return nil
	}

	b := balances{
		cash:        plan.Assets.Cash,
		investments: plan.Assets.Investments,
		savingsOnly: plan.Assets.Cash + plan.Assets.Investments,
	}
	rate := plan.Assets.ReturnRate() / 100

	out := make([]model.YearlySnapshot, 0, years)
	for y := 0; y < years; y++ {
		out = append(out, b.step(plan, tables, y, rate))
	}
	return out
}

func (b *balances) step(plan model.HouseholdPlan, tables config.CostTables, y int, rate float64) model.YearlySnapshot {
	age := plan.Primary.CurrentAge + y
	transition := plan.Settings.RetirementTransitionEnabled()

	var earned, pension float64
	addIncome := func(p model.Person) {
		e, pen := personIncome(p, p.CurrentAge+y, plan.Settings.PensionStartAge, transition, tables)
		earned += e
		pension += pen
	}
	addIncome(plan.Primary)
	if plan.Spouse != nil {
		addIncome(*plan.Spouse)
	}
	income := earned + pension

	factor := inflationFactor(plan.Settings.InflationRate, y)

	var living, housing, education, events float64
	if plan.Settings.LivingExpensesEnabled() {
		living = livingCost(plan, tables, age, factor, transition)
		housing = housingCost(plan.Housing, y, factor)
		education = educationCost(plan.Children, tables, y, factor)
		events = eventCost(plan, b.cash, y, factor)
	}
	consumption := living + housing + education + events

	contribution := recurringContribution(plan.Assets.Recurring, y)
	surplus := income - consumption - contribution

	if r := plan.Assets.Recurring; r != nil {
		b.recurring *= 1 + r.ReturnRate/100
	}
	b.recurring += contribution
	b.investments *= 1 + rate

	var shortfall float64
	if surplus >= 0 {
		b.investments += surplus
	} else {
		shortfall = b.drawDown(-surplus)
	}

	b.savingsOnly += income - consumption
	if b.savingsOnly < 0 {
		b.savingsOnly = 0
	}

	total := b.cash + b.investments + b.recurring
	return model.YearlySnapshot{
		Age:                   age,
		Year:                  y,
		Earned:                math.Round(earned),
		Pension:               math.Round(pension),
		TotalIncome:           math.Round(income),
		Living:                math.Round(living),
		Housing:               math.Round(housing),
		Education:             math.Round(education),
		Events:                math.Round(events),
		TotalExpenses:         math.Round(consumption),
		RecurringContribution: math.Round(contribution),
		Surplus:               math.Round(surplus),
		TotalAssets:           math.Round(total),
		InvestmentAssets:      math.Round(b.investments + b.recurring),
		RecurringAssets:       math.Round(b.recurring),
		CashAssets:            math.Round(b.cash),
		RealTotalAssets:       math.Round(total / factor),
		SavingsOnlyTotal:      math.Round(b.savingsOnly),
		Shortfall:             math.Round(shortfall),
	}
}

// drawDown funds a deficit from cash, then general investments, then the
// recurring balance, and returns what none of them could cover.
func (b *balances) drawDown(deficit float64) float64 {
	for _, bucket := range []*float64{&b.cash, &b.investments, &b.recurring} {
		if deficit <= 0 {
			break
		}
		if *bucket <= 0 {
			continue
		}
		take := math.Min(*bucket, deficit)
		*bucket -= take
		deficit -= take
	}
	if deficit < 0 {
		return 0
	}
	return deficit
}

// personIncome returns earned income and pension for one person at a simulated age.
func personIncome(p model.Person, age, pensionStart int, transition bool, tables config.CostTables) (earned, pension float64) {
	if !transition {
		return p.Salary + p.Bonus, 0
	}
	switch {
	case age < p.RetirementAge:
		return p.Salary + p.Bonus, 0
	case age == p.RetirementAge:
		return p.RetirementLumpSum, 0
	case age >= pensionStart:
		return 0, tables.PensionFor(p.Employment)
	}
	return 0, 0
}

func livingCost(plan model.HouseholdPlan, tables config.CostTables, age int, factor float64, transition bool) float64 {
	monthly := plan.Expenses.MonthlyTotal()
	if transition && age >= plan.Primary.RetirementAge {
		monthly = tables.RetirementLivingMonthly
	}
	return monthly*12*factor + plan.Expenses.AnnualDiscretionary*factor
}

func housingCost(h model.Housing, y int, factor float64) float64 {
	switch h.Type {
	case model.HousingRent:
		return h.MonthlyCost * 12 * factor
	case model.HousingOwnWithLoan:
		cost := h.AnnualMaintenance * factor
		if y < h.RemainingLoanYears {
			cost += h.MonthlyCost * 12
		}
		return cost
	case model.HousingOwnPaidOff:
		return h.AnnualMaintenance * factor
	}
	return 0
}

func educationCost(children []model.Child, tables config.CostTables, y int, factor float64) float64 {
	var total float64
	for _, c := range children {
		stage := model.StageForAge(c.Age + y)
		if stage == model.StageNone {
			continue
		}
		total += tables.EducationCost(stage, c.Education.Track(stage)) * factor
	}
	return total
}

// eventCost charges the other-liability payment and due vehicle replacements.
// The liability has no term: it is paid every year the starting cash covers it.
func eventCost(plan model.HouseholdPlan, cash float64, y int, factor float64) float64 {
	var cost float64
	a := plan.Assets
	if a.OtherLoanBalance > 0 {
		yearly := a.OtherLoanMonthlyPayment * 12
		if cash > yearly {
			cost += yearly
		}
	}
	for _, v := range plan.Expenses.Vehicles {
		if v.IntervalYears <= 0 {
			continue
		}
		if y > 0 && y%v.IntervalYears == 0 {
			cost += v.Cost * factor
		}
	}
	return cost
}

func recurringContribution(r *model.RecurringInvestment, y int) float64 {
	if r == nil || y >= r.DurationYears {
		return 0
	}
	return r.MonthlyAmount * 12
}

// inflationFactor is (1 + rate%)^y, so year zero is 1.
func inflationFactor(rate float64, y int) float64 {
	return math.Pow(1+rate/100, float64(y))
}
