package projection

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
)

// quietPlan has no income, no spending and no growth. Tests switch on the
// one flow they care about.
func quietPlan(age int) model.HouseholdPlan {
	return model.HouseholdPlan{
		Primary: model.Person{
			CurrentAge:    age,
			RetirementAge: 200,
			Employment:    model.EmploymentNone,
		},
		Housing:  model.Housing{Type: model.HousingRent},
		Settings: model.Settings{PensionStartAge: 65},
	}
}

func TestProject_Length(t *testing.T) {
	tables := config.DefaultCostTables()
	for _, age := range []int{0, 30, 64, 100} {
		snaps := Project(quietPlan(age), tables)
		if len(snaps) != 101-age {
			t.Fatalf("age %d: len = %d, want %d", age, len(snaps), 101-age)
		}
		for i, s := range snaps {
			if s.Age != age+i || s.Year != i {
				t.Fatalf("age %d: snapshot %d has age %d year %d", age, i, s.Age, s.Year)
			}
		}
	}

	if snaps := Project(quietPlan(101), tables); len(snaps) != 0 {
		t.Fatalf("age 101: len = %d, want 0", len(snaps))
	}
}

func TestInflationFactor(t *testing.T) {
	if got := inflationFactor(2, 0); got != 1 {
		t.Fatalf("factor(0) = %v, want 1", got)
	}
	prev := inflationFactor(2, 0)
	for y := 1; y <= 70; y++ {
		f := inflationFactor(2, y)
		if f <= prev {
			t.Fatalf("factor(%d) = %v not above factor(%d) = %v", y, f, y-1, prev)
		}
		prev = f
	}
	for y := 0; y <= 70; y++ {
		if f := inflationFactor(0, y); f != 1 {
			t.Fatalf("zero-rate factor(%d) = %v, want 1", y, f)
		}
	}
}

func TestProject_RealAssetsDeflate(t *testing.T) {
	p := quietPlan(60)
	p.Assets.Cash = 10_000_000
	p.Settings.InflationRate = 2

	snaps := Project(p, config.DefaultCostTables())
	require.Equal(t, 10_000_000.0, snaps[0].RealTotalAssets)
	for i := 1; i < len(snaps); i++ {
		assert.Equal(t, 10_000_000.0, snaps[i].TotalAssets)
		assert.Less(t, snaps[i].RealTotalAssets, snaps[i-1].RealTotalAssets)
	}
	assert.Equal(t, math.Round(10_000_000/math.Pow(1.02, 10)), snaps[10].RealTotalAssets)
}

func TestProject_ZeroGrowthKeepsAssetsConstant(t *testing.T) {
	p := quietPlan(40)
	p.Assets.Cash = 2_000_000
	p.Assets.Investments = 3_000_000

	for _, s := range Project(p, config.DefaultCostTables()) {
		if s.TotalAssets != 5_000_000 {
			t.Fatalf("age %d: total = %.0f, want 5000000", s.Age, s.TotalAssets)
		}
		if s.SavingsOnlyTotal != 5_000_000 {
			t.Fatalf("age %d: savings-only = %.0f, want 5000000", s.Age, s.SavingsOnlyTotal)
		}
	}
}

func TestProject_DeficitDrawsCashThenInvestments(t *testing.T) {
	p := quietPlan(99)
	p.Assets.Cash = 1_000_000
	p.Assets.Investments = 5_000_000
	p.Assets.Recurring = &model.RecurringInvestment{MonthlyAmount: 10_000, DurationYears: 5}
	p.Expenses.Food = 100_000

	s := Project(p, config.DefaultCostTables())[0]
	// surplus = 0 - 1,200,000 - 120,000
	assert.Equal(t, -1_320_000.0, s.Surplus)
	assert.Equal(t, 0.0, s.CashAssets)
	assert.Equal(t, 120_000.0, s.RecurringAssets, "recurring balance must be untouched")
	assert.Equal(t, 4_800_000.0, s.InvestmentAssets)
	assert.Equal(t, 4_800_000.0, s.TotalAssets)
	assert.Equal(t, 0.0, s.Shortfall)
}

func TestProject_DeficitExhaustsAllBucketsWithoutGoingNegative(t *testing.T) {
	p := quietPlan(99)
	p.Assets.Cash = 100_000
	p.Assets.Investments = 100_000
	p.Assets.Recurring = &model.RecurringInvestment{MonthlyAmount: 10_000, DurationYears: 5}
	p.Expenses.Food = 100_000

	snaps := Project(p, config.DefaultCostTables())
	s := snaps[0]
	assert.Equal(t, 0.0, s.CashAssets)
	assert.Equal(t, 0.0, s.RecurringAssets)
	assert.Equal(t, 0.0, s.TotalAssets)
	assert.Equal(t, 1_000_000.0, s.Shortfall)
	assert.Equal(t, 0.0, s.SavingsOnlyTotal)

	for _, s := range snaps {
		assert.GreaterOrEqual(t, s.CashAssets, 0.0)
		assert.GreaterOrEqual(t, s.InvestmentAssets, 0.0)
		assert.GreaterOrEqual(t, s.RecurringAssets, 0.0)
	}
}

func TestProject_SurplusFlowsToInvestments(t *testing.T) {
	p := quietPlan(99)
	p.Primary.Salary = 1_000_000
	p.Assets.Cash = 500_000

	s := Project(p, config.DefaultCostTables())[1]
	assert.Equal(t, 500_000.0, s.CashAssets, "cash never grows")
	assert.Equal(t, 2_000_000.0, s.InvestmentAssets)
}

func TestProject_RetirementTransition(t *testing.T) {
	p := quietPlan(63)
	p.Primary = model.Person{
		CurrentAge:        63,
		RetirementAge:     65,
		Employment:        model.EmploymentEmployee,
		Salary:            5_000_000,
		Bonus:             1_000_000,
		RetirementLumpSum: 10_000_000,
	}
	p.Settings.PensionStartAge = 67

	snaps := Project(p, config.DefaultCostTables())
	byAge := func(age int) model.YearlySnapshot {
		s, ok := model.SnapshotAt(snaps, age)
		require.True(t, ok, "age %d", age)
		return s
	}

	assert.Equal(t, 6_000_000.0, byAge(64).Earned)
	assert.Equal(t, 0.0, byAge(64).Pension)

	assert.Equal(t, 10_000_000.0, byAge(65).Earned, "lump sum replaces salary")
	assert.Equal(t, 0.0, byAge(65).Pension)

	assert.Equal(t, 0.0, byAge(66).Earned)
	assert.Equal(t, 0.0, byAge(66).Pension, "no pension before start age")

	assert.Equal(t, 0.0, byAge(67).Earned)
	assert.Equal(t, 1_440_000.0, byAge(67).Pension)
	assert.Equal(t, 1_440_000.0, byAge(100).TotalIncome)
}

func TestProject_PerpetualWorkWithoutTransition(t *testing.T) {
	p := quietPlan(60)
	p.Primary.RetirementAge = 65
	p.Primary.Employment = model.EmploymentEmployee
	p.Primary.Salary = 3_000_000
	p.Primary.RetirementLumpSum = 10_000_000
	p.Settings.IncludeRetirementTransition = model.Bool(false)

	for _, s := range Project(p, config.DefaultCostTables()) {
		if s.Earned != 3_000_000 || s.Pension != 0 {
			t.Fatalf("age %d: earned %.0f pension %.0f, want 3000000 and 0", s.Age, s.Earned, s.Pension)
		}
	}
}

func TestProject_SpouseUsesOwnAge(t *testing.T) {
	p := quietPlan(60)
	p.Spouse = &model.Person{
		CurrentAge:        55,
		RetirementAge:     60,
		Employment:        model.EmploymentSelfEmployed,
		Salary:            2_000_000,
		RetirementLumpSum: 1_000_000,
	}

	snaps := Project(p, config.DefaultCostTables())
	assert.Equal(t, 2_000_000.0, snaps[4].Earned)  // spouse 59
	assert.Equal(t, 1_000_000.0, snaps[5].Earned)  // spouse 60
	assert.Equal(t, 0.0, snaps[9].Pension)         // spouse 64
	assert.Equal(t, 660_000.0, snaps[10].Pension)  // spouse 65
}

func TestProject_RetirementLivingCostReplacesItemized(t *testing.T) {
	p := quietPlan(64)
	p.Primary.RetirementAge = 65
	p.Expenses.Food = 100_000
	p.Expenses.AnnualDiscretionary = 300_000

	snaps := Project(p, config.DefaultCostTables())
	assert.Equal(t, 1_500_000.0, snaps[0].Living)
	assert.Equal(t, 3_300_000.0, snaps[1].Living)
}

func TestProject_DiscretionaryLumpContinuesAfterRetirement(t *testing.T) {
	p := quietPlan(63)
	p.Primary.RetirementAge = 65
	p.Expenses.AnnualDiscretionary = 300_000
	tables := config.DefaultCostTables()
	tables.RetirementLivingMonthly = 0

	snaps := Project(p, tables)
	for _, s := range snaps[:10] {
		assert.Equal(t, 300_000.0, s.Living, "age %d", s.Age)
	}
}

func TestProject_LivingExpensesDisabled(t *testing.T) {
	p := quietPlan(50)
	p.Expenses.Food = 100_000
	p.Housing.MonthlyCost = 80_000
	p.Expenses.Vehicles = []model.VehicleEvent{{IntervalYears: 1, Cost: 1_000_000}}
	p.Assets.Cash = 5_000_000
	p.Assets.Recurring = &model.RecurringInvestment{MonthlyAmount: 10_000, DurationYears: 10}
	p.Settings.IncludeLivingExpenses = model.Bool(false)

	s := Project(p, config.DefaultCostTables())[1]
	assert.Zero(t, s.Living)
	assert.Zero(t, s.Housing)
	assert.Zero(t, s.Events)
	assert.Zero(t, s.TotalExpenses)
	assert.Equal(t, 120_000.0, s.RecurringContribution)
	assert.Equal(t, -120_000.0, s.Surplus)
}

func TestProject_Housing(t *testing.T) {
	tables := config.DefaultCostTables()

	loan := quietPlan(90)
	loan.Housing = model.Housing{
		Type:               model.HousingOwnWithLoan,
		MonthlyCost:        100_000,
		AnnualMaintenance:  200_000,
		RemainingLoanYears: 2,
	}
	snaps := Project(loan, tables)
	assert.Equal(t, 1_400_000.0, snaps[0].Housing)
	assert.Equal(t, 1_400_000.0, snaps[1].Housing)
	assert.Equal(t, 200_000.0, snaps[2].Housing)

	rent := quietPlan(90)
	rent.Housing = model.Housing{Type: model.HousingRent, MonthlyCost: 100_000}
	rent.Settings.InflationRate = 10
	snaps = Project(rent, tables)
	assert.Equal(t, 1_200_000.0, snaps[0].Housing)
	assert.Equal(t, 1_320_000.0, snaps[1].Housing)

	paid := quietPlan(90)
	paid.Housing = model.Housing{Type: model.HousingOwnPaidOff, MonthlyCost: 999_999, AnnualMaintenance: 150_000}
	assert.Equal(t, 150_000.0, Project(paid, tables)[3].Housing)
}

func TestProject_EducationBandEdge(t *testing.T) {
	tables := config.DefaultCostTables()
	child := model.Child{
		Name: "a",
		Age:  17,
		Education: model.EducationTrack{
			Kindergarten: model.SchoolPublic,
			Elementary:   model.SchoolPublic,
			JuniorHigh:   model.SchoolPublic,
			HighSchool:   model.SchoolPrivate,
			University:   model.UniversityPrivateScience,
		},
	}

	p := quietPlan(50)
	p.Children = []model.Child{child}
	snaps := Project(p, tables)
	assert.Equal(t, 1_054_000.0, snaps[0].Education)
	assert.Equal(t, 1_550_000.0, snaps[1].Education)
	assert.Equal(t, 1_550_000.0, snaps[4].Education) // 21
	assert.Equal(t, 0.0, snaps[5].Education)         // 22

	child.Education.University = model.UniversityNone
	p.Children = []model.Child{child}
	snaps = Project(p, tables)
	assert.Equal(t, 1_054_000.0, snaps[0].Education)
	assert.Equal(t, 0.0, snaps[1].Education)
}

func TestProject_VehicleEvents(t *testing.T) {
	p := quietPlan(90)
	p.Expenses.Vehicles = []model.VehicleEvent{
		{IntervalYears: 3, Cost: 1_000_000},
		{IntervalYears: 0, Cost: 5_000_000},
	}
	snaps := Project(p, config.DefaultCostTables())
	for _, s := range snaps {
		want := 0.0
		if s.Year > 0 && s.Year%3 == 0 {
			want = 1_000_000
		}
		if s.Events != want {
			t.Fatalf("year %d: events = %.0f, want %.0f", s.Year, s.Events, want)
		}
	}
}

func TestProject_OtherLoanPaidWhileCashCovers(t *testing.T) {
	p := quietPlan(90)
	p.Assets.Cash = 1_000_000
	p.Assets.OtherLoanBalance = 500_000
	p.Assets.OtherLoanMonthlyPayment = 10_000

	snaps := Project(p, config.DefaultCostTables())
	for y := 0; y <= 7; y++ {
		assert.Equal(t, 120_000.0, snaps[y].Events, "year %d", y)
	}
	assert.Equal(t, 40_000.0, snaps[7].CashAssets)
	assert.Equal(t, 0.0, snaps[8].Events, "cash no longer exceeds the payment")
	assert.Equal(t, 40_000.0, snaps[10].CashAssets)
}

func TestProject_DoesNotMutatePlan(t *testing.T) {
	p := model.DefaultPlan()
	s := model.DefaultSpouse()
	p.Spouse = &s
	p.Children = []model.Child{model.DefaultChild("a")}
	p.Expenses.Vehicles = []model.VehicleEvent{model.DefaultVehicle()}
	before := p.Clone()

	Project(p, config.DefaultCostTables())
	require.Equal(t, before, p)
}

func TestProject_Deterministic(t *testing.T) {
	p := model.DefaultPlan()
	p.Children = []model.Child{model.DefaultChild("a"), {Age: 5, Education: model.DefaultChild("").Education}}
	p.Expenses.Vehicles = []model.VehicleEvent{model.DefaultVehicle()}
	tables := config.DefaultCostTables()

	first := Project(p, tables)
	second := Project(p.Clone(), tables)
	require.Equal(t, first, second)
}

func TestProject_NaNPropagates(t *testing.T) {
	p := quietPlan(90)
	p.Assets.Cash = math.NaN()

	snaps := Project(p, config.DefaultCostTables())
	require.Len(t, snaps, 11)
	assert.True(t, math.IsNaN(snaps[0].TotalAssets))
	assert.True(t, math.IsNaN(snaps[10].TotalAssets))
}

func TestProject_Golden(t *testing.T) {
	p := quietPlan(97)
	p.Primary.Salary = 1_000_000
	p.Expenses.Food = 100_000
	p.Assets.Cash = 500_000
	p.Assets.Investments = 1_000_000
	p.Assets.Recurring = &model.RecurringInvestment{MonthlyAmount: 10_000, ReturnRate: 10, DurationYears: 2}
	p.Settings.IncludeRetirementTransition = model.Bool(false)

	var buf bytes.Buffer
	for _, s := range Project(p, config.DefaultCostTables()) {
		fmt.Fprintf(&buf, "age=%d income=%.0f expenses=%.0f contribution=%.0f surplus=%.0f cash=%.0f investments=%.0f recurring=%.0f total=%.0f savings_only=%.0f shortfall=%.0f\n",
			s.Age, s.TotalIncome, s.TotalExpenses, s.RecurringContribution, s.Surplus,
			s.CashAssets, s.InvestmentAssets, s.RecurringAssets, s.TotalAssets, s.SavingsOnlyTotal, s.Shortfall)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tail_projection", buf.Bytes())
}
