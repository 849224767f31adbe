package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/store"

	"github.com/spf13/cobra"
)

var flagPrune bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the solver cache",
	RunE:  runCache,
}

// cacheView is the JSON shape of the cache command.
type cacheView struct {
	Backend string `json:"backend"`
	Entries *int   `json:"entries,omitempty"` // unknown for redis
	Pruned  int64  `json:"pruned"`
}

func init() {
	cacheCmd.Flags().BoolVar(&flagPrune, "prune", false, "Delete answers older than the cache TTL")
	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	backend := e.cfg.Cache.Backend
	if backend == "" {
		backend = config.CacheSQLite
	}
	v := cacheView{Backend: backend}
	if flagNoCache || backend == config.CacheNone {
		v.Backend = config.CacheNone
		return e.out.Emit(v, func() string { return "  Solver cache is disabled.\n" })
	}

	c, err := store.OpenConfigured(ctx, e.cfg)
	if err != nil {
		return fmt.Errorf("opening %s cache: %w", backend, err)
	}
	defer c.Close()

	switch c := c.(type) {
	case *store.SQLiteCache:
		if flagPrune {
			if v.Pruned, err = c.Prune(ctx); err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
		}
		n, err := c.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting cache: %w", err)
		}
		v.Entries = &n
	case *store.MemoryCache:
		n := c.Len()
		v.Entries = &n
	}

	return e.out.Emit(v, func() string {
		var b strings.Builder
		items := []cli.KV{{Label: "Backend", Value: v.Backend}}
		switch v.Backend {
		case config.CacheSQLite:
			items = append(items, cli.KV{Label: "Path", Value: config.CachePath(e.cfg)})
		case config.CacheRedis:
			items = append(items, cli.KV{Label: "Address", Value: config.GetRedisAddr(e.cfg)})
		}
		if v.Entries != nil {
			items = append(items, cli.KV{Label: "Entries", Value: cli.FormatNumber(int64(*v.Entries))})
		} else {
			items = append(items, cli.KV{Label: "Entries", Value: "expire on their own"})
		}
		if flagPrune {
			items = append(items, cli.KV{Label: "Pruned", Value: cli.FormatNumber(v.Pruned)})
		}
		b.WriteString(cli.RenderCards("Solver cache", items))
		return b.String()
	})
}
