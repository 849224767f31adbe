package cmd

import (
	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/projection"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline results of the plan's projection",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	plan, err := e.loadPlan()
	if err != nil {
		return err
	}

	snaps := projection.Project(plan, e.tables)
	s := projection.Summarize(snaps)

	return e.out.Emit(s, func() string {
		return heading("LIFE PLAN", plan.Name) + cli.RenderSummary(s, snaps)
	})
}
