package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/lifeplan/internal/model"
)

// man is one 万, the unit amounts are entered in.
const man = 10_000

// PlanValues holds the answers of the plan wizard as typed.
// Amounts are in 万 yen; rates are percent.
type PlanValues struct {
	Name           string
	Age            string
	RetirementAge  string
	Employment     string
	Salary         string
	Bonus          string
	Spouse         bool
	Children       string
	Housing        string
	HousingMonthly string
	LoanYears      string
	Cash           string
	Investments    string
	MonthlyInvest  string
	ReturnRate     string
	InflationRate  string
}

// DefaultPlanValues returns wizard answers that reproduce model.DefaultPlan.
func DefaultPlanValues() PlanValues {
	p := model.DefaultPlan()
	return PlanValues{
		Name:           "Household plan",
		Age:            strconv.Itoa(p.Primary.CurrentAge),
		RetirementAge:  strconv.Itoa(p.Primary.RetirementAge),
		Employment:     string(p.Primary.Employment),
		Salary:         manString(p.Primary.Salary),
		Bonus:          manString(p.Primary.Bonus),
		Children:       "0",
		Housing:        string(p.Housing.Type),
		HousingMonthly: manString(p.Housing.MonthlyCost),
		LoanYears:      "0",
		Cash:           manString(p.Assets.Cash),
		Investments:    manString(p.Assets.Investments),
		MonthlyInvest:  manString(p.Assets.Recurring.MonthlyAmount),
		ReturnRate:     strconv.FormatFloat(p.Assets.Recurring.ReturnRate, 'f', -1, 64),
		InflationRate:  strconv.FormatFloat(p.Settings.InflationRate, 'f', -1, 64),
	}
}

// NewPlanForm builds the plan wizard writing into v.
func NewPlanForm(v *PlanValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Plan name").Value(&v.Name),
			huh.NewInput().Title("Your age").Value(&v.Age).Validate(validAge),
			huh.NewInput().Title("Retirement age").Value(&v.RetirementAge).Validate(validAge),
			huh.NewSelect[string]().
				Title("Employment").
				Options(
					huh.NewOption("Employee", string(model.EmploymentEmployee)),
					huh.NewOption("Self-employed", string(model.EmploymentSelfEmployed)),
					huh.NewOption("Not working", string(model.EmploymentNone)),
				).
				Value(&v.Employment),
			huh.NewInput().Title("Annual salary (万円)").Value(&v.Salary).Validate(validAmount),
			huh.NewInput().Title("Annual bonus (万円)").Value(&v.Bonus).Validate(validAmount),
		).Title("You"),

		huh.NewGroup(
			huh.NewConfirm().Title("Add a spouse?").Affirmative("Yes").Negative("No").Value(&v.Spouse),
			huh.NewInput().Title("Newborn children to plan for").Value(&v.Children).Validate(validCount),
		).Title("Household"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Housing").
				Options(
					huh.NewOption("Rent", string(model.HousingRent)),
					huh.NewOption("Own with a loan", string(model.HousingOwnWithLoan)),
					huh.NewOption("Own outright", string(model.HousingOwnPaidOff)),
				).
				Value(&v.Housing),
			huh.NewInput().Title("Monthly rent or loan payment (万円)").Value(&v.HousingMonthly).Validate(validAmount),
			huh.NewInput().Title("Loan years remaining").Value(&v.LoanYears).Validate(validCount),
		).Title("Housing"),

		huh.NewGroup(
			huh.NewInput().Title("Cash savings (万円)").Value(&v.Cash).Validate(validAmount),
			huh.NewInput().Title("Investments (万円)").Value(&v.Investments).Validate(validAmount),
			huh.NewInput().Title("Monthly investment (万円)").Value(&v.MonthlyInvest).Validate(validAmount),
			huh.NewInput().Title("Expected return (%/year)").Value(&v.ReturnRate).Validate(validRate),
			huh.NewInput().Title("Inflation (%/year)").Value(&v.InflationRate).Validate(validRate),
		).Title("Assets"),
	).WithTheme(huh.ThemeBase16())
}

// Plan converts the answers into a plan built on model.DefaultPlan.
func (v PlanValues) Plan() (model.HouseholdPlan, error) {
	p := model.DefaultPlan()
	p.Name = strings.TrimSpace(v.Name)
	var err error
	fail := func(field string, e error) error {
		return fmt.Errorf("%s: %w", field, e)
	}

	if p.Primary.CurrentAge, err = parseInt(v.Age); err != nil {
		return p, fail("age", err)
	}
	if p.Primary.RetirementAge, err = parseInt(v.RetirementAge); err != nil {
		return p, fail("retirement age", err)
	}
	p.Primary.Employment = model.EmploymentType(v.Employment)
	if p.Primary.Salary, err = parseMan(v.Salary); err != nil {
		return p, fail("salary", err)
	}
	if p.Primary.Bonus, err = parseMan(v.Bonus); err != nil {
		return p, fail("bonus", err)
	}

	if v.Spouse {
		s := model.DefaultSpouse()
		s.CurrentAge = p.Primary.CurrentAge
		p.Spouse = &s
	}
	children, err := parseInt(v.Children)
	if err != nil {
		return p, fail("children", err)
	}
	for i := range children {
		p.Children = append(p.Children, model.DefaultChild(fmt.Sprintf("Child %d", i+1)))
	}

	p.Housing.Type = model.HousingType(v.Housing)
	if p.Housing.MonthlyCost, err = parseMan(v.HousingMonthly); err != nil {
		return p, fail("housing cost", err)
	}
	if p.Housing.RemainingLoanYears, err = parseInt(v.LoanYears); err != nil {
		return p, fail("loan years", err)
	}

	if p.Assets.Cash, err = parseMan(v.Cash); err != nil {
		return p, fail("cash", err)
	}
	if p.Assets.Investments, err = parseMan(v.Investments); err != nil {
		return p, fail("investments", err)
	}
	if p.Assets.Recurring.MonthlyAmount, err = parseMan(v.MonthlyInvest); err != nil {
		return p, fail("monthly investment", err)
	}
	if p.Assets.Recurring.ReturnRate, err = parseFloat(v.ReturnRate); err != nil {
		return p, fail("return", err)
	}
	if p.Settings.InflationRate, err = parseFloat(v.InflationRate); err != nil {
		return p, fail("inflation", err)
	}
	// Contributions run until the primary retires.
	p.Assets.Recurring.DurationYears = max(0, p.Primary.RetirementAge-p.Primary.CurrentAge)

	return p, p.Validate()
}

func manString(yen float64) string {
	return strconv.FormatFloat(yen/man, 'f', -1, 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
}

func parseMan(s string) (float64, error) {
	f, err := parseFloat(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, err
	}
	return f * man, nil
}

func validAge(s string) error {
	n, err := parseInt(s)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 || n > model.MaxAge {
		return fmt.Errorf("must be between 0 and %d", model.MaxAge)
	}
	return nil
}

func validCount(s string) error {
	n, err := parseInt(s)
	if err != nil || n < 0 {
		return errors.New("enter a whole number, 0 or more")
	}
	return nil
}

func validAmount(s string) error {
	f, err := parseMan(s)
	if err != nil || f < 0 {
		return errors.New("enter an amount in 万円, 0 or more")
	}
	return nil
}

func validRate(s string) error {
	if _, err := parseFloat(s); err != nil {
		return errors.New("enter a percentage such as 3 or 2.5")
	}
	return nil
}
