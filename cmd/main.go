package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dafuqqqyunglean/assign_reviewer/app"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Warn("error occured", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reviewer roster HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.New().Run(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "assign-reviewer",
		Short:         "Reviewer assignment service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve, &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.New().Migrate(cmd.Context())
		},
	})

	return root
}
