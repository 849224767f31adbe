// Package model defines domain types for lifeplan households and projections.
package model

// EmploymentType selects the default pension a person draws after retirement.
type EmploymentType string

const (
	EmploymentEmployee     EmploymentType = "employee"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentNone         EmploymentType = "none"
)

// SchoolTrack is the public/private choice for a compulsory or high school stage.
type SchoolTrack string

const (
	SchoolPublic  SchoolTrack = "public"
	SchoolPrivate SchoolTrack = "private"
)

// UniversityTrack is the university choice for a child.
type UniversityTrack string

const (
	UniversityNone            UniversityTrack = "none"
	UniversityNationalArts    UniversityTrack = "national_arts"
	UniversityNationalScience UniversityTrack = "national_science"
	UniversityPrivateArts     UniversityTrack = "private_arts"
	UniversityPrivateScience  UniversityTrack = "private_science"
)

// HousingType selects how housing costs are charged.
type HousingType string

const (
	HousingRent        HousingType = "rent"
	HousingOwnWithLoan HousingType = "own_with_loan"
	HousingOwnPaidOff  HousingType = "own_paid_off"
)

// Person is an earner in the household.
type Person struct {
	CurrentAge        int            `toml:"current_age" json:"current_age" yaml:"current_age"`
	RetirementAge     int            `toml:"retirement_age" json:"retirement_age" yaml:"retirement_age"`
	Employment        EmploymentType `toml:"employment" json:"employment" yaml:"employment"`
	Salary            float64        `toml:"salary" json:"salary" yaml:"salary"` // annual
	Bonus             float64        `toml:"bonus" json:"bonus" yaml:"bonus"`    // annual
	RetirementLumpSum float64        `toml:"retirement_lump_sum" json:"retirement_lump_sum" yaml:"retirement_lump_sum"`
}

// EducationTrack holds the per-stage school choices for one child.
type EducationTrack struct {
	Kindergarten SchoolTrack     `toml:"kindergarten" json:"kindergarten" yaml:"kindergarten"`
	Elementary   SchoolTrack     `toml:"elementary" json:"elementary" yaml:"elementary"`
	JuniorHigh   SchoolTrack     `toml:"junior_high" json:"junior_high" yaml:"junior_high"`
	HighSchool   SchoolTrack     `toml:"high_school" json:"high_school" yaml:"high_school"`
	University   UniversityTrack `toml:"university" json:"university" yaml:"university"`
}

// Child is a dependent whose education costs are projected.
type Child struct {
	Name      string         `toml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Age       int            `toml:"age" json:"age" yaml:"age"`
	Education EducationTrack `toml:"education" json:"education" yaml:"education"`
}

// Housing describes the household's dwelling.
type Housing struct {
	Type HousingType `toml:"type" json:"type" yaml:"type"`
	// MonthlyCost is rent for HousingRent and the loan payment for HousingOwnWithLoan.
	MonthlyCost        float64 `toml:"monthly_cost" json:"monthly_cost" yaml:"monthly_cost"`
	AnnualMaintenance  float64 `toml:"annual_maintenance" json:"annual_maintenance" yaml:"annual_maintenance"`
	RemainingLoanYears int     `toml:"remaining_loan_years" json:"remaining_loan_years" yaml:"remaining_loan_years"`
	LoanInterestRate   float64 `toml:"loan_interest_rate,omitempty" json:"loan_interest_rate,omitempty" yaml:"loan_interest_rate,omitempty"`
}

// VehicleEvent is a car replacement repeated every IntervalYears.
type VehicleEvent struct {
	IntervalYears int     `toml:"interval_years" json:"interval_years" yaml:"interval_years"`
	Cost          float64 `toml:"cost" json:"cost" yaml:"cost"`
}

// Expenses holds itemized monthly spending plus annual lumps.
type Expenses struct {
	Food             float64 `toml:"food" json:"food" yaml:"food"`
	Utilities        float64 `toml:"utilities" json:"utilities" yaml:"utilities"`
	Communication    float64 `toml:"communication" json:"communication" yaml:"communication"`
	DailyGoods       float64 `toml:"daily_goods" json:"daily_goods" yaml:"daily_goods"`
	ClothingBeauty   float64 `toml:"clothing_beauty" json:"clothing_beauty" yaml:"clothing_beauty"`
	Entertainment    float64 `toml:"entertainment" json:"entertainment" yaml:"entertainment"`
	MedicalInsurance float64 `toml:"medical_insurance" json:"medical_insurance" yaml:"medical_insurance"`
	Other            float64 `toml:"other" json:"other" yaml:"other"`

	AnnualDiscretionary float64        `toml:"annual_discretionary" json:"annual_discretionary" yaml:"annual_discretionary"`
	Vehicles            []VehicleEvent `toml:"vehicles,omitempty" json:"vehicles,omitempty" yaml:"vehicles,omitempty"`
}

// MonthlyTotal sums the itemized monthly categories.
func (e Expenses) MonthlyTotal() float64 {
	return e.Food + e.Utilities + e.Communication + e.DailyGoods +
		e.ClothingBeauty + e.Entertainment + e.MedicalInsurance + e.Other
}

// RecurringInvestment is a fixed monthly contribution stream (tsumitate).
type RecurringInvestment struct {
	MonthlyAmount float64 `toml:"monthly_amount" json:"monthly_amount" yaml:"monthly_amount"`
	ReturnRate    float64 `toml:"return_rate" json:"return_rate" yaml:"return_rate"` // percent per year
	DurationYears int     `toml:"duration_years" json:"duration_years" yaml:"duration_years"`
}

// Assets holds starting balances and liabilities.
type Assets struct {
	Cash        float64              `toml:"cash" json:"cash" yaml:"cash"`
	Investments float64              `toml:"investments" json:"investments" yaml:"investments"`
	Recurring   *RecurringInvestment `toml:"recurring,omitempty" json:"recurring,omitempty" yaml:"recurring,omitempty"`

	OtherLoanMonthlyPayment float64 `toml:"other_loan_monthly_payment" json:"other_loan_monthly_payment" yaml:"other_loan_monthly_payment"`
	OtherLoanBalance        float64 `toml:"other_loan_balance" json:"other_loan_balance" yaml:"other_loan_balance"`
}

// ReturnRate is the blended annual return in percent, 0 without a recurring investment.
func (a Assets) ReturnRate() float64 {
	if a.Recurring == nil {
		return 0
	}
	return a.Recurring.ReturnRate
}

// Settings holds projection-wide assumptions.
type Settings struct {
	InflationRate   float64 `toml:"inflation_rate" json:"inflation_rate" yaml:"inflation_rate"` // percent per year
	PensionStartAge int     `toml:"pension_start_age" json:"pension_start_age" yaml:"pension_start_age"`

	// Both toggles default to true when unset.
	IncludeLivingExpenses       *bool `toml:"include_living_expenses,omitempty" json:"include_living_expenses,omitempty" yaml:"include_living_expenses,omitempty"`
	IncludeRetirementTransition *bool `toml:"include_retirement_transition,omitempty" json:"include_retirement_transition,omitempty" yaml:"include_retirement_transition,omitempty"`
}

// LivingExpensesEnabled reports whether consumption is charged.
func (s Settings) LivingExpensesEnabled() bool {
	return s.IncludeLivingExpenses == nil || *s.IncludeLivingExpenses
}

// RetirementTransitionEnabled reports whether people retire and draw pensions.
func (s Settings) RetirementTransitionEnabled() bool {
	return s.IncludeRetirementTransition == nil || *s.IncludeRetirementTransition
}

// HouseholdPlan is the complete set of assumptions for one projection run.
type HouseholdPlan struct {
	Name     string   `toml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty" hash:"ignore"`
	Primary  Person   `toml:"primary" json:"primary" yaml:"primary"`
	Spouse   *Person  `toml:"spouse,omitempty" json:"spouse,omitempty" yaml:"spouse,omitempty"`
	Children []Child  `toml:"children,omitempty" json:"children,omitempty" yaml:"children,omitempty"`
	Housing  Housing  `toml:"housing" json:"housing" yaml:"housing"`
	Expenses Expenses `toml:"expenses" json:"expenses" yaml:"expenses"`
	Assets   Assets   `toml:"assets" json:"assets" yaml:"assets"`
	Settings Settings `toml:"settings" json:"settings" yaml:"settings"`
}

// Clone returns a deep copy that shares no references with p.
func (p HouseholdPlan) Clone() HouseholdPlan {
	c := p
	if p.Spouse != nil {
		s := *p.Spouse
		c.Spouse = &s
	}
	if p.Children != nil {
		c.Children = make([]Child, len(p.Children))
		copy(c.Children, p.Children)
	}
	if p.Expenses.Vehicles != nil {
		c.Expenses.Vehicles = make([]VehicleEvent, len(p.Expenses.Vehicles))
		copy(c.Expenses.Vehicles, p.Expenses.Vehicles)
	}
	if p.Assets.Recurring != nil {
		r := *p.Assets.Recurring
		c.Assets.Recurring = &r
	}
	c.Settings.IncludeLivingExpenses = cloneBool(p.Settings.IncludeLivingExpenses)
	c.Settings.IncludeRetirementTransition = cloneBool(p.Settings.IncludeRetirementTransition)
	return c
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Bool returns a pointer to v, for filling optional toggles.
func Bool(v bool) *bool {
	return &v
}
