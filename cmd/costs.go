package cmd

import (
	"github.com/theirongolddev/lifeplan/internal/cli"

	"github.com/spf13/cobra"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show the effective cost tables",
	Long:  "Show the education, pension and retirement living tables after config and --costs overrides.",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	return e.out.Emit(e.tables, func() string {
		return heading("COST TABLES", "") + cli.RenderCostTables(e.tables)
	})
}
