package projection

import (
	"math"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
)

const (
	// DefaultIterations narrows a 1,000,000 yen interval below one yen.
	DefaultIterations = 20
	// DefaultUpperBound is the largest extra monthly saving searched, in yen.
	DefaultUpperBound = 1_000_000
)

// Target is an asset value to reach by an age.
type Target struct {
	Age   int     `json:"age"`
	Asset float64 `json:"asset"`
}

// Solution is the outcome of a target search.
type Solution struct {
	MonthlySaving int64   `json:"monthly_saving"`
	Achieved      float64 `json:"achieved"` // total assets at the target age with MonthlySaving applied
	Baseline      float64 `json:"baseline"` // total assets at the target age with no extra saving
	Reached       bool    `json:"reached"`
	Iterations    int     `json:"iterations"`
}

type solveOptions struct {
	iterations int
	upperBound float64
}

// SolveOption configures Solve.
type SolveOption func(*solveOptions)

// WithIterations sets the number of bisection steps. Values below 1 are ignored.
func WithIterations(n int) SolveOption {
	return func(o *solveOptions) {
		if n > 0 {
			o.iterations = n
		}
	}
}

// WithUpperBound sets the largest monthly saving searched. Non-positive values are ignored.
func WithUpperBound(v float64) SolveOption {
	return func(o *solveOptions) {
		if v > 0 {
			o.upperBound = v
		}
	}
}

// Solve finds the extra monthly saving that lifts total assets at t.Age
// above t.Asset. Each trial adds twelve months of saving to the primary's
// salary on a clone of the plan. The search always ends on an amount
// observed to overshoot, so the answer achieves the target rather than
// approaching it from below. If no trial within the bound overshoots, the
// answer is 0 and Reached is false.
func Solve(plan model.HouseholdPlan, t Target, tables config.CostTables, opts ...SolveOption) Solution {
	o := solveOptions{iterations: DefaultIterations, upperBound: DefaultUpperBound}
	for _, opt := range opts {
		opt(&o)
	}

	sol := Solution{Baseline: assetsAt(plan, 0, t.Age, tables)}
	if sol.Baseline > t.Asset {
		sol.Achieved = sol.Baseline
		sol.Reached = true
		return sol
	}

	low, high := 0.0, o.upperBound
	best := 0.0
	for i := 0; i < o.iterations; i++ {
		mid := (low + high) / 2
		achieved := assetsAt(plan, mid, t.Age, tables)
		sol.Iterations++
		if achieved > t.Asset {
			high = mid
			best = mid
			sol.Achieved = achieved
			sol.Reached = true
		} else {
			low = mid
		}
	}

	if !sol.Reached {
		return sol
	}
	sol.MonthlySaving = int64(math.Round(best))
	return sol
}

// RequiredMonthlySaving returns the extra monthly saving, in whole yen,
// needed to exceed asset by age. It is 0 when the plan already gets there
// or the target is out of reach.
func RequiredMonthlySaving(plan model.HouseholdPlan, age int, asset float64, tables config.CostTables) int64 {
	return Solve(plan, Target{Age: age, Asset: asset}, tables).MonthlySaving
}

// assetsAt projects plan with extra monthly saving added as income and
// returns total assets at age, or 0 when age is not simulated.
func assetsAt(plan model.HouseholdPlan, extraMonthly float64, age int, tables config.CostTables) float64 {
	trial := plan.Clone()
	trial.Primary.Salary += extraMonthly * 12
	snap, ok := model.SnapshotAt(Project(trial, tables), age)
	if !ok {
		return 0
	}
	return snap.TotalAssets
}
