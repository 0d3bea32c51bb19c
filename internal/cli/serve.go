package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvisee/qr2term/internal/server"
	"github.com/timvisee/qr2term/pkg/cache"
	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/observability"
)

// serveCommand creates the serve command running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR codes over HTTP",
		Long: `Serve QR codes over HTTP, so curl shows scannable codes in any terminal.

The cache and history backends come from the configuration file; the
defaults cache rendered codes on disk and keep history in memory.`,
		Example: `  qr2term serve
  qr2term serve --addr :9000
  curl localhost:8080/q/hello`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Listen = addr
			}
			if noCache {
				c.Config.Cache.Backend = "none"
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, for example :8080")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render every request fresh, without a cache")

	return cmd
}

// runServe builds the configured backends and runs the service until ctx is
// canceled.
func (c *CLI) runServe(ctx context.Context) error {
	hooks := logHooks{logger: c.Logger}
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)

	store, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := c.newHistory(ctx)
	if err != nil {
		return err
	}
	// The serve context is already canceled during shutdown.
	defer history.Close(context.Background())

	return server.New(c.Config, c.Logger, store, history).ListenAndServe(ctx)
}

// newStore builds the cache backend named by the configuration. A file
// cache that cannot be set up degrades to no caching; an unreachable Redis
// is an error, since it was asked for explicitly.
func (c *CLI) newStore(ctx context.Context) (cache.Cache, error) {
	switch c.Config.Cache.Backend {
	case "redis":
		store := cache.NewRedisCache(c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)

		// The backend may still be coming up alongside the service.
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Connecting to redis at %s...", c.Config.Cache.RedisAddr))
		spinner.Start()
		err := cache.RetryWithBackoff(ctx, func() error {
			return cache.Retryable(store.Ping(ctx))
		})
		spinner.Stop()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis at %s is unreachable", c.Config.Cache.RedisAddr)
		}

		c.Logger.Info("caching to redis", "addr", c.Config.Cache.RedisAddr)
		return store, nil

	case "file":
		dir, err := c.Config.CacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		c.Logger.Info("caching to disk", "dir", dir)
		return store, nil

	default:
		return cache.NewNullCache(), nil
	}
}

// newHistory builds the history backend named by the configuration.
func (c *CLI) newHistory(ctx context.Context) (server.History, error) {
	if c.Config.History.Backend != "mongo" {
		return server.NewMemoryHistory(c.Config.History.Limit), nil
	}

	spinner := newSpinnerWithContext(ctx, "Connecting to mongodb...")
	spinner.Start()
	history, err := server.NewMongoHistory(ctx, c.Config.History.MongoURI, c.Config.History.MongoDatabase)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Info("recording history to mongodb", "database", c.Config.History.MongoDatabase)
	return history, nil
}
