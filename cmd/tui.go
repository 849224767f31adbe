package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/planfile"
	"github.com/theirongolddev/lifeplan/internal/tui"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// A missing plan file starts the setup wizard inside the dashboard.
	path := e.planPath()
	var plan *model.HouseholdPlan
	p, err := planfile.Load(path)
	switch {
	case err == nil:
		plan = &p
	case !errors.Is(err, fs.ErrNotExist):
		return cli.WrapExitError(cli.ExitInputError, "loading plan", err)
	}

	cache := e.openCache(cmd.Context())
	if cache != nil {
		defer cache.Close()
	}

	app := tui.NewApp(tui.Options{
		Plan:       plan,
		PlanPath:   path,
		Tables:     e.tables,
		Cache:      cache,
		Iterations: e.cfg.Solver.Iterations,
		UpperBound: e.cfg.Solver.UpperBound,
	})
	prog := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
