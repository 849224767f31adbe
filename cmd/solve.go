package cmd

import (
	"math"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagSolveAge    int
	flagSolveTarget float64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find the extra monthly saving that reaches a target",
	Long:  "Search for the smallest extra monthly saving that lifts total assets at --age above --target yen.",
	RunE:  runSolve,
}

// solveResult is the JSON shape of the solve command.
type solveResult struct {
	Target projection.Target `json:"target"`
	projection.Solution
	Cached bool `json:"cached"`
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveAge, "age", 60, "Age by which the target should be reached")
	solveCmd.Flags().Float64Var(&flagSolveTarget, "target", 0, "Target total assets in yen")
	_ = solveCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	if flagSolveAge < 1 || flagSolveAge > model.MaxAge {
		return cli.NewExitError(cli.ExitInputError, "--age must be between 1 and 100")
	}
	if math.IsNaN(flagSolveTarget) || math.IsInf(flagSolveTarget, 0) {
		return cli.NewExitError(cli.ExitInputError, "--target must be a finite amount")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	plan, err := e.loadPlan()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cache := e.openCache(ctx)
	if cache != nil {
		defer cache.Close()
	}

	target := projection.Target{Age: flagSolveAge, Asset: flagSolveTarget}
	sol, hit, err := store.Solve(ctx, cache, store.Query{
		Plan:       plan,
		Target:     target,
		Tables:     e.tables,
		Iterations: e.cfg.Solver.Iterations,
		UpperBound: e.cfg.Solver.UpperBound,
	})
	if err != nil {
		e.out.Logf("  Cache error, answer not stored: %v", err)
	}
	if hit {
		e.out.Logf("  Answer from cache")
	}

	if err := e.out.Emit(solveResult{Target: target, Solution: sol, Cached: hit}, func() string {
		return heading("TARGET", plan.Name) + cli.RenderSolution(target, sol)
	}); err != nil {
		return err
	}
	if !sol.Reached {
		return cli.NewExitError(cli.ExitFailure, "target out of reach within the solver's upper bound")
	}
	return nil
}
