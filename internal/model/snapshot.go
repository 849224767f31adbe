package model

// MaxAge is the last simulated age of the primary earner.
const MaxAge = 100

// YearlySnapshot is one year's computed financial state.
// Monetary fields hold whole yen; they are rounded at emission only.
type YearlySnapshot struct {
	Age  int `json:"age"`
	Year int `json:"year"`

	Earned      float64 `json:"earned"`
	Pension     float64 `json:"pension"`
	TotalIncome float64 `json:"total_income"`

	Living        float64 `json:"living"`
	Housing       float64 `json:"housing"`
	Education     float64 `json:"education"`
	Events        float64 `json:"events"`
	TotalExpenses float64 `json:"total_expenses"`

	RecurringContribution float64 `json:"recurring_contribution"`
	Surplus               float64 `json:"surplus"`

	// End-of-year balances. InvestmentAssets includes RecurringAssets.
	TotalAssets      float64 `json:"total_assets"`
	InvestmentAssets float64 `json:"investment_assets"`
	RecurringAssets  float64 `json:"recurring_assets"`
	CashAssets       float64 `json:"cash_assets"`

	RealTotalAssets  float64 `json:"real_total_assets"`
	SavingsOnlyTotal float64 `json:"savings_only_total"`

	// Shortfall is the part of this year's deficit no balance could fund.
	Shortfall float64 `json:"shortfall"`
}

// SnapshotAt returns the snapshot for the given age, if simulated.
func SnapshotAt(snaps []YearlySnapshot, age int) (YearlySnapshot, bool) {
	for _, s := range snaps {
		if s.Age == age {
			return s, true
		}
	}
	return YearlySnapshot{}, false
}
