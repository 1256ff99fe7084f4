// Package cli implements the citylayout command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/voidshard/citylayout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

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
		Use:          "citylayout",
		Short:        "Citylayout generates city district, road & lot layouts",
		Long:         `Citylayout places districts inside a circular boundary, partitions the land between them, grows streets & cuts the result into building lots.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.typesCommand())

	return root
}

// loadConfig reads fpath, or returns the default config if fpath is empty
func loadConfig(fpath string) (*citylayout.Config, error) {
	if fpath == "" {
		return citylayout.DefaultConfig(), nil
	}
	return citylayout.LoadConfig(fpath)
}
