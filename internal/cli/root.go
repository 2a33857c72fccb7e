// Package cli implements the catalog command-line browser.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/f2p-catalog-service/internal/config"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
)

const (
	excerptLength = 80
	cliService    = "catalog-cli"
)

// app carries the state shared by every subcommand.
type app struct {
	out        io.Writer
	errOut     io.Writer
	loadConfig func() (config.Config, error)

	providerName string
	snapshotPath string
	outputRaw    string
	logLevel     string

	format Format
	logger *slog.Logger
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:        out,
		errOut:     errOut,
		loadConfig: config.Load,
	}
}

// NewRootCommand builds the catalog command tree writing to stdout and stderr.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp(os.Stdout, os.Stderr))
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the free-to-play game catalog",
		Long: `Browse the free-to-play game catalog from the terminal.

The catalog is loaded from the configured provider (the bundled fixture by
default, or the live free-to-play API) or from a snapshot file written by the
service, then filtered, searched and paged exactly like a browse session.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.providerName, "provider", "", "catalog source: fixture or freetogame (default from PROVIDER)")
	flags.StringVar(&a.snapshotPath, "snapshot", "", "load the catalog from a snapshot JSON file instead of a provider")
	flags.StringVarP(&a.outputRaw, "output", "o", "", "output format: table, json or yaml (default table on a terminal, json otherwise)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(
		newListCommand(a),
		newFeaturedCommand(a),
		newShowCommand(a),
		newCategoriesCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	format, err := ParseFormat(a.outputRaw)
	if err != nil {
		return err
	}
	a.format = DetectFormat(format)
	a.logger = logging.NewLogger(logging.Config{
		Level:   a.logLevel,
		Service: cliService,
		Output:  a.errOut,
	})
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
