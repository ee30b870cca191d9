// Package cli implements the pydeps command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/EgorK19/pydeps/pkg/buildinfo"
	"github.com/EgorK19/pydeps/pkg/cache"
	"github.com/EgorK19/pydeps/pkg/report"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pydeps"

	// envRedisAddr selects a shared Redis metadata cache when set.
	envRedisAddr = "PYDEPS_REDIS_ADDR"

	// envMongoURI selects a shared MongoDB history store when set.
	envMongoURI = "PYDEPS_MONGO_URI"
)

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
		Use:           "pydeps",
		Short:         "Pydeps reports the dependencies a Python package declares",
		Long:          `Pydeps is a CLI tool that inspects a Python package's build manifests (pyproject.toml, setup.cfg, setup.py) and reports the direct dependencies it declares, from a remote repository, a local checkout, or a source archive.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCache selects the metadata cache backend. Backend problems never stop an
// analysis: failures degrade to a null cache with a warning.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		rc, err := cache.NewRedisCache(addr)
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// newStore selects the report history store.
func (c *CLI) newStore(ctx context.Context) (report.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		return report.NewMongoStore(ctx, uri)
	}
	return report.NewFileStore("")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pydeps/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
