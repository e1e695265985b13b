package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/a5ehren/compiledb/pkg/buildtool"
	"github.com/a5ehren/compiledb/pkg/output"
	"github.com/a5ehren/compiledb/pkg/parser"
	"github.com/a5ehren/compiledb/pkg/webhook"
)

// NewMakeCommand creates the make command.
func NewMakeCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "make [-- make-args ...]",
		Short: "Run make and generate a compilation database",
		Long: `Run make in dry-run mode (-Bnkw), parse its trace into a compilation
database, then run the real build:

  compiledb make
  compiledb make -- -j8 all
  compiledb make -n -- all    # trace only, skip the real build

Trailing arguments after -- are passed to make unchanged for both the
dry run and the real build.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMake(cmd, args, opts)
		},
	}

	addGenerateFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.NoBuild, "no-build", "n", false,
		"Skip the real build and tolerate a failing dry run")

	return cmd
}

func runMake(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	cfg, err := opts.buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := parser.New(cfg)
	if err != nil {
		return fmt.Errorf("creating parser: %w", err)
	}

	runner := buildtool.NewRunner()

	records, err := runner.Trace(ctx, args, cfg, p)
	if err != nil {
		return err
	}

	if err := output.WriteFile(cfg.OutputFile, records); err != nil {
		return err
	}
	log.Infof("wrote %d compile commands to %s", len(records), cfg.OutputFile)

	notify(ctx, cfg, &webhook.Notice{
		OutputFile:  cfg.OutputFile,
		Records:     len(records),
		Sources:     []string{"make"},
		Duration:    time.Since(start),
		GeneratedAt: time.Now(),
	})

	return runner.Build(ctx, args, cfg)
}
