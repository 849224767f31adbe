package cmd

import (
	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/planfile"
	"github.com/theirongolddev/lifeplan/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagVariantFile   string
	flagVariantName   string
	flagRetireAge     int
	flagSalary        float64
	flagMonthlyInvest float64
	flagReturnRate    float64
	flagInflation     float64
	flagCash          float64
	flagCompareEvery  int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the plan against a what-if variant",
	Long: `Project the plan and a variant of it side by side. The variant comes
from a --variant file of overrides, individual flags, or both; flags win.`,
	RunE: runCompare,
}

// compareResult is the JSON shape of the compare command.
type compareResult struct {
	Name string `json:"name"`
	projection.Comparison
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&flagVariantFile, "variant", "", "File of plan overrides (.toml, .yaml or .json)")
	f.StringVar(&flagVariantName, "name", "", "Label for the variant column")
	f.IntVar(&flagRetireAge, "retire-age", 0, "Primary retirement age")
	f.Float64Var(&flagSalary, "salary", 0, "Primary annual salary in yen")
	f.Float64Var(&flagMonthlyInvest, "monthly-invest", 0, "Monthly investment in yen")
	f.Float64Var(&flagReturnRate, "return-rate", 0, "Investment return, percent per year")
	f.Float64Var(&flagInflation, "inflation", 0, "Inflation, percent per year")
	f.Float64Var(&flagCash, "cash", 0, "Starting cash in yen")
	f.IntVar(&flagCompareEvery, "every", 5, "Show every Nth year (the final year is always shown)")
	rootCmd.AddCommand(compareCmd)
}

// variantFromFlags reads the --variant file, then applies any override
// flags the user set explicitly.
func variantFromFlags(cmd *cobra.Command) (model.Variant, error) {
	var v model.Variant
	if flagVariantFile != "" {
		var err error
		if v, err = planfile.LoadVariant(flagVariantFile); err != nil {
			return v, cli.WrapExitError(cli.ExitInputError, "loading variant", err)
		}
	}

	set := cmd.Flags().Changed
	if set("retire-age") {
		v.RetirementAge = &flagRetireAge
	}
	if set("salary") {
		v.Salary = &flagSalary
	}
	if set("monthly-invest") {
		v.MonthlyInvestment = &flagMonthlyInvest
	}
	if set("return-rate") {
		v.ReturnRate = &flagReturnRate
	}
	if set("inflation") {
		v.InflationRate = &flagInflation
	}
	if set("cash") {
		v.Cash = &flagCash
	}
	if set("name") {
		v.Name = flagVariantName
	}

	if v.IsZero() {
		return v, cli.NewExitError(cli.ExitInputError, "nothing to compare: pass --variant or at least one override flag")
	}
	return v, nil
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if flagCompareEvery < 1 {
		return cli.NewExitError(cli.ExitInputError, "--every must be at least 1")
	}
	v, err := variantFromFlags(cmd)
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	plan, err := e.loadPlan()
	if err != nil {
		return err
	}
	if err := v.Apply(plan).Validate(); err != nil {
		return cli.WrapExitError(cli.ExitInputError, "variant", err)
	}

	c := projection.CompareVariant(plan, v, e.tables)
	return e.out.Emit(compareResult{Name: v.Name, Comparison: c}, func() string {
		return heading("COMPARE", plan.Name) + cli.RenderComparison(v.Name, c, flagCompareEvery)
	})
}
