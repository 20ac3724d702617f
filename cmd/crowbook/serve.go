package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hustcer/crowbook/internal/cli"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveWatch     bool
	serveRateLimit int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve book options over HTTP",
	Long: `Start an HTTP API serving the option catalog and a book's resolved values.

Endpoints:
  GET /api/v1/health
  GET /api/v1/version
  GET /api/v1/options
  GET /api/v1/options/{key}
  GET /api/v1/description?format=md|text|json
  GET /metrics

With --watch, edits to the option file are applied without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addStoreFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload the option file when it changes")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 0, "API requests allowed per client IP per minute (0: default, negative: unlimited)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := cli.ServeOptions{
		StoreOptions: storeOptions(),
		Addr:         serveAddr,
		Watch:        serveWatch,
		RateLimit:    serveRateLimit,
		Version:      version,
		GitCommit:    gitCommit,
		BuildTime:    buildTime,
		GoVersion:    goVersion,
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving book options on %s\n", serveAddr)
	if err := cli.Serve(ctx, opts); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Server shutdown complete")
	return nil
}
