// Package cli provides the command-line interface for compiledb.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/a5ehren/compiledb/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "compiledb",
		Short: "Generate a compilation database from make builds",
		Long: `compiledb derives compile_commands.json from the trace of a make dry
run. Point it at an existing build log, pipe a trace into it, or let
it run make itself:

  compiledb parse build.log
  make -Bnkw | compiledb parse
  compiledb make -- -j8 all

The database maps each compiled source file to the exact invocation
and working directory used to compile it, in the format consumed by
clangd, IDEs, and code indexers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbosity)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewMakeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// configureLogging maps the -v count to a log level. Skipped lines are
// only visible at info and below.
func configureLogging(verbosity int) {
	switch {
	case verbosity <= 0:
		log.SetLevel(log.WarnLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.DebugLevel)
	}
	log.SetOutput(os.Stderr)
}
