// Package cli implements the welcomescreen command-line interface.
//
// The CLI is the reference caller of the render pipeline: it turns flags or
// a guest file into a [pipeline.Request], writes the PNG, and reports
// timings. It is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - render: Render a welcome screen PNG for one room
//   - layout: Print the fixed element geometry as JSON
//   - conformance: Compare each backend's measured geometry with the layout
//   - cache: Manage the downloaded-background cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per painted layer.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/assets"
	"github.com/matzehuels/welcomescreen/pkg/buildinfo"
	"github.com/matzehuels/welcomescreen/pkg/cache"
	"github.com/matzehuels/welcomescreen/pkg/config"
	"github.com/matzehuels/welcomescreen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "welcomescreen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Welcomescreen renders 4K guest welcome screens",
		Long:         `Welcomescreen composes a 3840x2160 welcome screen for a guest room: greeting, guest name, Wi-Fi and WhatsApp QR codes on frosted-glass cards over a background photo.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/welcomescreen/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.conformanceCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the --config file, or the default location.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use. The returned cache must be
// closed by the caller.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	bc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	store := assets.NewStore(
		assets.WithCache(bc, cfg.Cache.TTL),
		assets.WithLogger(c.Logger),
	)
	return pipeline.NewRunner(cfg, store, c.Logger), bc, nil
}

// newCache picks the background byte cache: Redis when configured, the
// file cache otherwise, and nothing with --no-cache. An unusable default
// cache directory disables caching rather than failing the render.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.Cache.RedisAddr)
		return cache.WithPrefix(rc, cfg.Cache.RedisPrefix), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}
