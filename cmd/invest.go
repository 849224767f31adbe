package cmd

import (
	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagInvestAge     int
	flagInvestRetire  int
	flagInvestInitial float64
	flagInvestMonthly float64
	flagInvestRate    float64
	flagInvestEvery   int
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Investing versus a bank deposit",
	Long:  "Compound a monthly contribution until retirement at an investment rate and at the ordinary deposit rate, and show what the difference buys.",
	RunE:  runInvest,
}

func init() {
	f := investCmd.Flags()
	f.IntVar(&flagInvestAge, "age", 30, "Current age")
	f.IntVar(&flagInvestRetire, "retire-age", 65, "Retirement age")
	f.Float64Var(&flagInvestInitial, "initial", 0, "Initial savings in yen")
	f.Float64Var(&flagInvestMonthly, "monthly", 30_000, "Monthly contribution in yen")
	f.Float64Var(&flagInvestRate, "rate", 5, "Investment return, percent per year")
	f.IntVar(&flagInvestEvery, "every", 5, "Show every Nth year (the final year is always shown)")
	rootCmd.AddCommand(investCmd)
}

func runInvest(cmd *cobra.Command, _ []string) error {
	if flagInvestAge < 0 {
		return cli.NewExitError(cli.ExitInputError, "--age must not be negative")
	}
	if flagInvestEvery < 1 {
		return cli.NewExitError(cli.ExitInputError, "--every must be at least 1")
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	rows := projection.SimulateSavings(projection.SavingsInput{
		CurrentAge:          flagInvestAge,
		RetirementAge:       flagInvestRetire,
		InitialSavings:      flagInvestInitial,
		MonthlyContribution: flagInvestMonthly,
		InvestmentRate:      flagInvestRate,
	})
	return e.out.Emit(rows, func() string {
		return heading("INVEST", cli.FormatPercent(flagInvestRate)+" a year") + cli.RenderSavings(rows, flagInvestEvery)
	})
}
