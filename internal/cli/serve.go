package cli

import (
	"context"
	"fmt"

	"github.com/hustcer/crowbook/internal/api"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/hustcer/crowbook/internal/watch"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/rs/zerolog"
)

// ServeOptions holds configuration for the serve command
type ServeOptions struct {
	StoreOptions

	Addr      string
	Watch     bool
	RateLimit int // requests per minute per client IP, see api.ServerConfig

	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// Serve runs the option API until ctx is cancelled. With Watch set, edits
// to the option file are picked up without a restart.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := log.WithComponent("serve")

	watchPath := ""
	if opts.Watch {
		if opts.Config == "" {
			return fmt.Errorf("--watch requires --config")
		}
		watchPath = opts.Config
	}

	build, err := Builder(opts.StoreOptions)
	if err != nil {
		return err
	}
	holder, err := watch.NewHolder(build, watchPath)
	if err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}
	if opts.Watch {
		reportReloads(ctx, holder, logger)
	}
	if err := holder.Start(ctx); err != nil {
		return err
	}
	defer holder.Stop()

	server, err := api.NewServer(api.ServerConfig{
		Addr:      opts.Addr,
		Source:    holder,
		Version:   opts.Version,
		GitCommit: opts.GitCommit,
		BuildTime: opts.BuildTime,
		GoVersion: opts.GoVersion,
		RateLimit: opts.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info().
		Str(log.FieldAddr, opts.Addr).
		Str(log.FieldRoot, holder.Current().Root()).
		Str(log.FieldPath, opts.Config).
		Bool("watch", opts.Watch).
		Msg("starting option server")

	return server.StartWithContext(ctx)
}

// reportReloads logs a summary of every store the holder publishes until
// ctx is done.
func reportReloads(ctx context.Context, holder *watch.Holder, logger zerolog.Logger) {
	updates := make(chan *options.Store, 1)
	holder.Subscribe(updates)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case store := <-updates:
				logger.Info().
					Str(log.FieldEvent, "serve.options_updated").
					Int(log.FieldCount, len(store.Resolved())).
					Str(log.FieldRoot, store.Root()).
					Msg("serving reloaded options")
			}
		}
	}()
}
