package projection

import (
	"math"

	"github.com/theirongolddev/lifeplan/internal/model"
)

// RetirementSpendingYears is the span over which a gain is spread for the
// daily difference.
const RetirementSpendingYears = 30

// LifestyleTier buckets a daily amount into a spending example.
type LifestyleTier string

const (
	TierSnack   LifestyleTier = "snack"   // under 500 yen a day
	TierCafe    LifestyleTier = "cafe"    // under 1,500
	TierHobby   LifestyleTier = "hobby"   // under 5,000
	TierTravel  LifestyleTier = "travel"  // under 10,000
	TierUpgrade LifestyleTier = "upgrade" // 10,000 and above
)

// TierFor returns the lifestyle tier for a daily yen amount.
func TierFor(daily float64) LifestyleTier {
	switch {
	case daily < 500:
		return TierSnack
	case daily < 1_500:
		return TierCafe
	case daily < 5_000:
		return TierHobby
	case daily < 10_000:
		return TierTravel
	default:
		return TierUpgrade
	}
}

// Description is a short example of what the daily amount pays for.
func (t LifestyleTier) Description() string {
	switch t {
	case TierSnack:
		return "a convenience-store treat every day"
	case TierCafe:
		return "a cafe lunch every day"
	case TierHobby:
		return "hobbies and lessons without budgeting"
	case TierTravel:
		return "a short trip nearly every month"
	case TierUpgrade:
		return "a dramatically higher standard of living"
	}
	return ""
}

// Summary condenses a projection into its headline figures.
type Summary struct {
	StartAge int `json:"start_age"`
	EndAge   int `json:"end_age"`

	FinalTotal       float64 `json:"final_total"`
	FinalReal        float64 `json:"final_real"`
	FinalInvestments float64 `json:"final_investments"`
	FinalCash        float64 `json:"final_cash"`
	FinalSavingsOnly float64 `json:"final_savings_only"`

	LifetimeIncome    float64 `json:"lifetime_income"`
	LifetimeExpenses  float64 `json:"lifetime_expenses"`
	LifetimeEducation float64 `json:"lifetime_education"`

	PeakAssets float64 `json:"peak_assets"`
	PeakAge    int     `json:"peak_age"`

	// DepletionAge is the first age with an unfunded deficit, 0 if none.
	DepletionAge   int     `json:"depletion_age,omitempty"`
	TotalShortfall float64 `json:"total_shortfall"`

	InvestmentGain  float64       `json:"investment_gain"`
	DailyDifference float64       `json:"daily_difference"`
	Lifestyle       LifestyleTier `json:"lifestyle"`
}

// Depleted reports whether any year ran out of money.
func (s Summary) Depleted() bool {
	return s.DepletionAge != 0
}

// Summarize computes headline figures from a projection. An empty series
// yields the zero Summary.
func Summarize(snaps []model.YearlySnapshot) Summary {
	if len(snaps) == 0 {
		return Summary{Lifestyle: TierFor(0)}
	}

	first, last := snaps[0], snaps[len(snaps)-1]
	s := Summary{
		StartAge:         first.Age,
		EndAge:           last.Age,
		FinalTotal:       last.TotalAssets,
		FinalReal:        last.RealTotalAssets,
		FinalInvestments: last.InvestmentAssets,
		FinalCash:        last.CashAssets,
		FinalSavingsOnly: last.SavingsOnlyTotal,
		PeakAssets:       first.TotalAssets,
		PeakAge:          first.Age,
	}

	for _, snap := range snaps {
		s.LifetimeIncome += snap.TotalIncome
		s.LifetimeExpenses += snap.TotalExpenses
		s.LifetimeEducation += snap.Education
		s.TotalShortfall += snap.Shortfall
		if snap.TotalAssets > s.PeakAssets {
			s.PeakAssets = snap.TotalAssets
			s.PeakAge = snap.Age
		}
		if snap.Shortfall > 0 && s.DepletionAge == 0 {
			s.DepletionAge = snap.Age
		}
	}

	s.InvestmentGain = s.FinalTotal - s.FinalSavingsOnly
	s.DailyDifference = DailyDifference(s.FinalTotal, s.FinalSavingsOnly)
	s.Lifestyle = TierFor(s.DailyDifference)
	return s
}

// DailyDifference spreads the gap between two totals over the retirement
// spending span, rounded to whole yen per day.
func DailyDifference(invested, bank float64) float64 {
	return math.Round((invested - bank) / (RetirementSpendingYears * 365))
}
