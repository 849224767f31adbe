package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/server"

	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from LIFEPLAN_ADDR or config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	addr := flagServeAddr
	if addr == "" {
		addr = config.GetServerAddr(e.cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := e.openCache(ctx)
	if cache != nil {
		defer cache.Close()
	}

	svc := server.New(server.Config{
		Addr:       addr,
		Tables:     e.tables,
		Cache:      cache,
		Iterations: e.cfg.Solver.Iterations,
		UpperBound: e.cfg.Solver.UpperBound,
	})
	e.out.Logf("  Serving on http://%s (Ctrl+C to stop)", addr)

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
