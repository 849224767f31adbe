package model

// Variant holds optional overrides applied to a cloned plan for comparison.
// Nil fields leave the base value untouched.
type Variant struct {
	Name string `toml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`

	RetirementAge     *int         `toml:"retirement_age,omitempty" json:"retirement_age,omitempty" yaml:"retirement_age,omitempty"`
	Salary            *float64     `toml:"salary,omitempty" json:"salary,omitempty" yaml:"salary,omitempty"`
	Bonus             *float64     `toml:"bonus,omitempty" json:"bonus,omitempty" yaml:"bonus,omitempty"`
	MonthlyInvestment *float64     `toml:"monthly_investment,omitempty" json:"monthly_investment,omitempty" yaml:"monthly_investment,omitempty"`
	ReturnRate        *float64     `toml:"return_rate,omitempty" json:"return_rate,omitempty" yaml:"return_rate,omitempty"`
	InflationRate     *float64     `toml:"inflation_rate,omitempty" json:"inflation_rate,omitempty" yaml:"inflation_rate,omitempty"`
	HousingType       *HousingType `toml:"housing_type,omitempty" json:"housing_type,omitempty" yaml:"housing_type,omitempty"`
	HousingMonthly    *float64     `toml:"housing_monthly,omitempty" json:"housing_monthly,omitempty" yaml:"housing_monthly,omitempty"`
	Cash              *float64     `toml:"cash,omitempty" json:"cash,omitempty" yaml:"cash,omitempty"`
}

// IsZero reports whether the variant changes nothing.
func (v Variant) IsZero() bool {
	return v.RetirementAge == nil && v.Salary == nil && v.Bonus == nil &&
		v.MonthlyInvestment == nil && v.ReturnRate == nil && v.InflationRate == nil &&
		v.HousingType == nil && v.HousingMonthly == nil && v.Cash == nil
}

// Apply returns a deep copy of base with the overrides applied.
// Setting MonthlyInvestment or ReturnRate on a plan without a recurring
// investment creates one that runs until MaxAge.
func (v Variant) Apply(base HouseholdPlan) HouseholdPlan {
	p := base.Clone()

	if v.RetirementAge != nil {
		p.Primary.RetirementAge = *v.RetirementAge
	}
	if v.Salary != nil {
		p.Primary.Salary = *v.Salary
	}
	if v.Bonus != nil {
		p.Primary.Bonus = *v.Bonus
	}
	if v.MonthlyInvestment != nil || v.ReturnRate != nil {
		if p.Assets.Recurring == nil {
			p.Assets.Recurring = &RecurringInvestment{DurationYears: MaxAge - p.Primary.CurrentAge}
		}
		if v.MonthlyInvestment != nil {
			p.Assets.Recurring.MonthlyAmount = *v.MonthlyInvestment
		}
		if v.ReturnRate != nil {
			p.Assets.Recurring.ReturnRate = *v.ReturnRate
		}
	}
	if v.InflationRate != nil {
		p.Settings.InflationRate = *v.InflationRate
	}
	if v.HousingType != nil {
		p.Housing.Type = *v.HousingType
	}
	if v.HousingMonthly != nil {
		p.Housing.MonthlyCost = *v.HousingMonthly
	}
	if v.Cash != nil {
		p.Assets.Cash = *v.Cash
	}
	return p
}
