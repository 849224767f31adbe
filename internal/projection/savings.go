package projection

import "math"

// BankRate is the ordinary deposit rate, percent per year.
const BankRate = 0.001

// SavingsInput parameterizes the invest-versus-deposit comparison.
type SavingsInput struct {
	CurrentAge          int     `json:"current_age"`
	RetirementAge       int     `json:"retirement_age"`
	InitialSavings      float64 `json:"initial_savings"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	InvestmentRate      float64 `json:"investment_rate"` // percent per year
}

// SavingsRow is the end-of-year state of the three series.
type SavingsRow struct {
	Age       int     `json:"age"`
	Invested  float64 `json:"invested"`
	Bank      float64 `json:"bank"`
	Principal float64 `json:"principal"`
}

// SimulateSavings compounds a monthly contribution from the current age to
// retirement, once at the investment rate and once at BankRate, alongside
// the bare principal. Row zero is the starting state; each later row adds
// twelve deposit-then-grow months.
func SimulateSavings(in SavingsInput) []SavingsRow {
	years := in.RetirementAge - in.CurrentAge
	if years < 0 {
		years = 0
	}

	invested, bank, principal := in.InitialSavings, in.InitialSavings, in.InitialSavings
	invRate := in.InvestmentRate / 100 / 12
	bankRate := BankRate / 100 / 12

	rows := make([]SavingsRow, 0, years+1)
	rows = append(rows, savingsRow(in.CurrentAge, invested, bank, principal))
	for y := 1; y <= years; y++ {
		for m := 0; m < 12; m++ {
			invested = (invested + in.MonthlyContribution) * (1 + invRate)
			bank = (bank + in.MonthlyContribution) * (1 + bankRate)
			principal += in.MonthlyContribution
		}
		rows = append(rows, savingsRow(in.CurrentAge+y, invested, bank, principal))
	}
	return rows
}

func savingsRow(age int, invested, bank, principal float64) SavingsRow {
	return SavingsRow{
		Age:       age,
		Invested:  math.Round(invested),
		Bank:      math.Round(bank),
		Principal: math.Round(principal),
	}
}
