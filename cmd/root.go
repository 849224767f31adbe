package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/planfile"
	"github.com/theirongolddev/lifeplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPlan    string
	flagCosts   string
	flagFormat  string
	flagQuiet   bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:           "lifeplan",
	Short:         "Household life-plan projections",
	Long:          "Project a household's income, spending and assets year by year to age 100, and find the monthly saving that reaches a target.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlan, "plan", "p", "", "Plan file (.toml, .yaml or .json)")
	rootCmd.PersistentFlags().StringVar(&flagCosts, "costs", "", "TOML file of cost table overrides")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the solver cache")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.WrapExitError(cli.ExitInputError, "invalid flags", err)
	})
}

// env is the state every command shares: config, effective cost tables
// and the output writer.
type env struct {
	cfg    config.Config
	tables config.CostTables
	out    *cli.Output
}

// loadEnv reads config and cost overrides and resolves the output format.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cli.WrapExitError(cli.ExitInputError, "loading config", err)
	}

	tables, err := config.Tables(cfg)
	if err != nil {
		return nil, cli.WrapExitError(cli.ExitInputError, "applying config costs", err)
	}
	if flagCosts != "" {
		o, err := config.LoadCostsFile(flagCosts)
		if err != nil {
			return nil, cli.WrapExitError(cli.ExitInputError, "loading "+flagCosts, err)
		}
		if tables, err = o.Apply(tables); err != nil {
			return nil, cli.WrapExitError(cli.ExitInputError, "applying "+flagCosts, err)
		}
	}

	format := flagFormat
	if format == "" {
		format = cfg.General.Format
	}
	switch format {
	case "", "text":
		format = "text"
	case "json":
	default:
		return nil, cli.NewExitError(cli.ExitInputError, fmt.Sprintf("unknown format %q (want text or json)", format))
	}

	return &env{
		cfg:    cfg,
		tables: tables,
		out: &cli.Output{
			Format: format,
			Writer: cmd.OutOrStdout(),
			Err:    cmd.ErrOrStderr(),
			Quiet:  flagQuiet,
		},
	}, nil
}

// planPath returns the plan file to read: the flag, then config, then the
// default location.
func (e *env) planPath() string {
	if flagPlan != "" {
		return flagPlan
	}
	if e.cfg.General.PlanPath != "" {
		return e.cfg.General.PlanPath
	}
	return config.DefaultPlanPath()
}

// loadPlan reads the plan file. When no path was given and the default
// file is missing, the built-in example plan is used instead.
func (e *env) loadPlan() (model.HouseholdPlan, error) {
	path := e.planPath()
	p, err := planfile.Load(path)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, fs.ErrNotExist) && flagPlan == "" && e.cfg.General.PlanPath == "" {
		e.out.Logf("  No plan at %s, using the example plan (run `lifeplan setup` to create one)", path)
		return model.DefaultPlan(), nil
	}
	return p, cli.WrapExitError(cli.ExitInputError, "loading plan", err)
}

// openCache opens the configured solver cache. Failures are reported and
// yield a nil cache, which solves without memoizing.
func (e *env) openCache(ctx context.Context) store.Cache {
	if flagNoCache {
		return nil
	}
	c, err := store.OpenConfigured(ctx, e.cfg)
	if err != nil {
		e.out.Logf("  Cache unavailable, solving without it: %v", err)
		return nil
	}
	return c
}

// heading renders a command's title box, naming the plan when it has a name.
func heading(title, planName string) string {
	if planName != "" {
		title += "  " + planName
	}
	return "\n" + cli.RenderTitle(title) + "\n\n"
}
