// Package cli implements the qr2term command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timvisee/qr2term/internal/config"
	"github.com/timvisee/qr2term/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "qr2term"

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command itself renders: `qr2term [content...]` prints content as
// a QR code, reading stdin when no arguments are given. The code goes to
// stdout with nothing else around it, so output stays scannable and
// pipeable.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
		opts       rootOpts
	)

	root := &cobra.Command{
		Use:   appName + " [content...]",
		Short: "Print QR codes in your terminal",
		Long: `qr2term renders QR codes as ANSI half-block text, packing two pixel rows
into every output line so codes come out square and scannable straight
from the terminal.

Content is taken from the arguments, joined by spaces, or read from
stdin when no arguments are given.`,
		Example: `  qr2term https://example.com
  echo https://example.com | qr2term
  qr2term --png -o code.png https://example.com`,
		Args:          cobra.ArbitraryArgs,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoot(cmd, args, &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file")
	registerRootFlags(root, &opts)

	// Register all subcommands
	root.AddCommand(c.wifiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
