package cmd

import (
	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/projection"

	"github.com/spf13/cobra"
)

var flagEvery int

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Year-by-year projection table",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().IntVar(&flagEvery, "every", 5, "Show every Nth year (the final year is always shown)")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	if flagEvery < 1 {
		return cli.NewExitError(cli.ExitInputError, "--every must be at least 1")
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	plan, err := e.loadPlan()
	if err != nil {
		return err
	}

	snaps := projection.Project(plan, e.tables)
	return e.out.Emit(snaps, func() string {
		return heading("PROJECTION", plan.Name) + cli.RenderProjectionTable(snaps, flagEvery)
	})
}
