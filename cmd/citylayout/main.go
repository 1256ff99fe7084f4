package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voidshard/citylayout"
	"github.com/voidshard/citylayout/internal/cli"
)

// exit codes, besides 0 & the usual 1
const (
	exitBadConfig   = 2   // config failed to parse or validate
	exitNoDistricts = 3   // nothing could be placed, so no city
	exitInterrupted = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a failed run to the code we exit with
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, citylayout.ErrInvalidConfig):
		return exitBadConfig
	case errors.Is(err, citylayout.ErrNoDistricts):
		return exitNoDistricts
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	// stage timings are logged at debug, placement / road warnings at warn
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every stage & its timing")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings & errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogWarn)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
