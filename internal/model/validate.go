package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FieldError describes one invalid field of a plan.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every FieldError found in a plan.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid plan: " + strings.Join(parts, "; ")
}

type validator struct {
	errs []FieldError
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) finite(field string, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.add(field, "must be a finite number")
	}
}

func (v *validator) age(field string, a int) {
	if a < 0 {
		v.add(field, "must not be negative, got %d", a)
	}
}

// Validate checks the plan's shape. It rejects unknown enum values, negative
// ages, non-finite numbers and vehicle intervals below one year. Odd but
// well-typed values (retirement before the current age, negative rates) pass.
func (p HouseholdPlan) Validate() error {
	v := &validator{}

	v.person("primary", p.Primary)
	if p.Primary.CurrentAge > MaxAge {
		v.add("primary.current_age", "must be at most %d, got %d", MaxAge, p.Primary.CurrentAge)
	}
	if p.Spouse != nil {
		v.person("spouse", *p.Spouse)
	}

	for i, c := range p.Children {
		prefix := fmt.Sprintf("children[%d]", i)
		v.age(prefix+".age", c.Age)
		for field, track := range map[string]SchoolTrack{
			"kindergarten": c.Education.Kindergarten,
			"elementary":   c.Education.Elementary,
			"junior_high":  c.Education.JuniorHigh,
			"high_school":  c.Education.HighSchool,
		} {
			if !track.Valid() {
				v.add(prefix+".education."+field, "unknown school track %q", track)
			}
		}
		if !c.Education.University.Valid() {
			v.add(prefix+".education.university", "unknown university track %q", c.Education.University)
		}
	}

	if !p.Housing.Type.Valid() {
		v.add("housing.type", "unknown housing type %q", p.Housing.Type)
	}
	v.finite("housing.monthly_cost", p.Housing.MonthlyCost)
	v.finite("housing.annual_maintenance", p.Housing.AnnualMaintenance)
	v.finite("housing.loan_interest_rate", p.Housing.LoanInterestRate)

	e := p.Expenses
	for field, f := range map[string]float64{
		"food":                 e.Food,
		"utilities":            e.Utilities,
		"communication":        e.Communication,
		"daily_goods":          e.DailyGoods,
		"clothing_beauty":      e.ClothingBeauty,
		"entertainment":        e.Entertainment,
		"medical_insurance":    e.MedicalInsurance,
		"other":                e.Other,
		"annual_discretionary": e.AnnualDiscretionary,
	} {
		v.finite("expenses."+field, f)
	}
	for i, veh := range e.Vehicles {
		prefix := fmt.Sprintf("expenses.vehicles[%d]", i)
		if veh.IntervalYears < 1 {
			v.add(prefix+".interval_years", "must be at least 1, got %d", veh.IntervalYears)
		}
		v.finite(prefix+".cost", veh.Cost)
	}

	a := p.Assets
	v.finite("assets.cash", a.Cash)
	v.finite("assets.investments", a.Investments)
	v.finite("assets.other_loan_monthly_payment", a.OtherLoanMonthlyPayment)
	v.finite("assets.other_loan_balance", a.OtherLoanBalance)
	if a.Recurring != nil {
		v.finite("assets.recurring.monthly_amount", a.Recurring.MonthlyAmount)
		v.finite("assets.recurring.return_rate", a.Recurring.ReturnRate)
	}

	v.finite("settings.inflation_rate", p.Settings.InflationRate)
	v.age("settings.pension_start_age", p.Settings.PensionStartAge)

	if len(v.errs) == 0 {
		return nil
	}
	// map iteration order is random; keep reported errors stable.
	sort.Slice(v.errs, func(i, j int) bool { return v.errs[i].Field < v.errs[j].Field })
	return &ValidationError{Fields: v.errs}
}

func (v *validator) person(prefix string, p Person) {
	v.age(prefix+".current_age", p.CurrentAge)
	v.age(prefix+".retirement_age", p.RetirementAge)
	if !p.Employment.Valid() {
		v.add(prefix+".employment", "unknown employment type %q", p.Employment)
	}
	v.finite(prefix+".salary", p.Salary)
	v.finite(prefix+".bonus", p.Bonus)
	v.finite(prefix+".retirement_lump_sum", p.RetirementLumpSum)
}

// Valid reports whether t is a known employment type.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentEmployee, EmploymentSelfEmployed, EmploymentNone:
		return true
	}
	return false
}

// Valid reports whether t is a known school track.
func (t SchoolTrack) Valid() bool {
	return t == SchoolPublic || t == SchoolPrivate
}

// Valid reports whether t is a known university track.
func (t UniversityTrack) Valid() bool {
	switch t {
	case UniversityNone, UniversityNationalArts, UniversityNationalScience,
		UniversityPrivateArts, UniversityPrivateScience:
		return true
	}
	return false
}

// Valid reports whether t is a known housing type.
func (t HousingType) Valid() bool {
	switch t {
	case HousingRent, HousingOwnWithLoan, HousingOwnPaidOff:
		return true
	}
	return false
}
