// Package main is the command line for ingestion, seeding and offline evaluation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/support-rag/internal/app"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ragctl",
		Short:        "Manage the support knowledge base and evaluate answer quality",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildEvaluateCmd(),
		buildIngestCmd(),
		buildSeedTemplatesCmd(),
		buildSeedUserCmd(),
		buildReportCmd(),
	)
	return rootCmd
}

// withApp loads configuration, configures logging and opens storage for one command.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app.SetupLogger(cfg.Log, os.Stderr)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
