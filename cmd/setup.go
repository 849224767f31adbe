package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/planfile"
	"github.com/theirongolddev/lifeplan/internal/tui"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagSetupOut string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive wizard that writes a plan file",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&flagSetupOut, "out", "", "Where to write the plan (default: --plan, then the configured plan path)")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	out := flagSetupOut
	if out == "" {
		out = e.planPath()
	}
	if _, err := planfile.FormatOf(out); err != nil {
		return cli.WrapExitError(cli.ExitInputError, "--out", err)
	}

	fmt.Println()
	fmt.Println("  Welcome to lifeplan!")
	fmt.Println("  Amounts are in 万円; the plan can be edited by hand afterwards.")
	fmt.Println()

	vals := tui.DefaultPlanValues()
	if err := tui.NewPlanForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing written.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}
	plan, err := vals.Plan()
	if err != nil {
		return cli.WrapExitError(cli.ExitInputError, "plan", err)
	}

	themeName := e.cfg.Appearance.Theme
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}
	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Dashboard color theme").Options(themes...).Value(&themeName),
	)).WithTheme(huh.ThemeBase16())
	if err := pick.Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("theme form: %w", err)
	}

	if err := planfile.Save(out, plan); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	cfg := e.cfg
	cfg.Appearance.Theme = themeName
	if out != config.DefaultPlanPath() {
		cfg.General.PlanPath = out
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Plan saved to %s\n", out)
	fmt.Printf("  Config saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `lifeplan` for a summary or `lifeplan tui` for the dashboard.")
	fmt.Println()
	return nil
}
