// Package cmd implements the lifeplan CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

// configView is the JSON shape of the config command.
type configView struct {
	Path       string  `json:"path"`
	Loaded     bool    `json:"loaded"`
	PlanPath   string  `json:"plan_path"`
	Format     string  `json:"format"`
	Iterations int     `json:"solver_iterations"`
	UpperBound float64 `json:"solver_upper_bound"`
	Cache      string  `json:"cache_backend"`
	CachePath  string  `json:"cache_path,omitempty"`
	RedisAddr  string  `json:"redis_addr,omitempty"`
	TTLHours   int     `json:"cache_ttl_hours"`
	ServerAddr string  `json:"server_addr"`
	Theme      string  `json:"theme"`
	Overrides  bool    `json:"cost_overrides"`
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	cfg := e.cfg

	v := configView{
		Path:       config.ConfigPath(),
		Loaded:     config.Exists(),
		PlanPath:   e.planPath(),
		Format:     e.out.Format,
		Iterations: cfg.Solver.Iterations,
		UpperBound: cfg.Solver.UpperBound,
		Cache:      cfg.Cache.Backend,
		TTLHours:   cfg.Cache.TTLHours,
		ServerAddr: config.GetServerAddr(cfg),
		Theme:      cfg.Appearance.Theme,
		Overrides:  !cfg.Costs.IsZero(),
	}
	switch cfg.Cache.Backend {
	case config.CacheSQLite, "":
		v.CachePath = config.CachePath(cfg)
	case config.CacheRedis:
		v.RedisAddr = config.GetRedisAddr(cfg)
	}

	return e.out.Emit(v, func() string { return renderConfig(v) })
}

func renderConfig(v configView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Config file: %s\n", v.Path)
	if v.Loaded {
		b.WriteString("  Status: loaded\n")
	} else {
		b.WriteString("  Status: using defaults (no config file)\n")
	}
	b.WriteString("\n")

	b.WriteString(cli.RenderCards("General", []cli.KV{
		{Label: "Plan file", Value: v.PlanPath},
		{Label: "Output format", Value: v.Format},
	}))
	b.WriteString("\n")

	b.WriteString(cli.RenderCards("Solver", []cli.KV{
		{Label: "Iterations", Value: cli.FormatNumber(int64(v.Iterations))},
		{Label: "Upper bound", Value: cli.FormatYen(v.UpperBound) + " a month"},
	}))
	b.WriteString("\n")

	cache := []cli.KV{{Label: "Backend", Value: v.Cache}}
	if v.CachePath != "" {
		cache = append(cache, cli.KV{Label: "Path", Value: v.CachePath})
	}
	if v.RedisAddr != "" {
		cache = append(cache, cli.KV{Label: "Redis", Value: v.RedisAddr})
	}
	cache = append(cache, cli.KV{Label: "TTL", Value: cli.FormatNumber(int64(v.TTLHours)) + "h"})
	b.WriteString(cli.RenderCards("Cache", cache))
	b.WriteString("\n")

	overrides := "none"
	if v.Overrides {
		overrides = "set in [costs]"
	}
	b.WriteString(cli.RenderCards("Other", []cli.KV{
		{Label: "Server address", Value: v.ServerAddr},
		{Label: "Theme", Value: v.Theme},
		{Label: "Cost overrides", Value: overrides},
	}))
	b.WriteString("\n  Run `lifeplan setup` to create a plan.\n")
	return b.String()
}
