package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/a5ehren/compiledb/pkg/config"
	"github.com/a5ehren/compiledb/pkg/output"
	"github.com/a5ehren/compiledb/pkg/parser"
	"github.com/a5ehren/compiledb/pkg/webhook"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "parse [build-log ...]",
		Short: "Parse build logs into a compilation database",
		Long: `Parse one or more make dry-run logs (globs allowed) and write the
extracted compile commands to the output file. With no arguments the
trace is read from stdin:

  compiledb parse build.log
  compiledb parse 'logs/*.log'
  make -Bnkw | compiledb parse

Lines that yield no compile command are skipped, not errors; run with
-v to see why individual lines were dropped.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	addGenerateFlags(cmd, opts)

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	cfg, err := opts.buildConfig(cmd)
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.BuildLogs
	}

	var records []parser.CompileCommand
	var sources []string

	if len(patterns) == 0 {
		log.Infof("reading build output from stdin")
		p, err := parser.New(cfg)
		if err != nil {
			return fmt.Errorf("creating parser: %w", err)
		}
		records, err = p.Parse(ctx, os.Stdin)
		if err != nil {
			return err
		}
		sources = []string{"stdin"}
	} else {
		files, err := parser.ExpandGlobs(patterns)
		if err != nil {
			return err
		}

		// A directory stack never spans two traces: each log gets a
		// fresh parser state.
		for _, file := range files {
			p, err := parser.New(cfg)
			if err != nil {
				return fmt.Errorf("creating parser: %w", err)
			}
			recs, err := p.ParseFile(ctx, file)
			if err != nil {
				return err
			}
			records = append(records, recs...)
		}
		sources = files
	}

	if err := output.WriteFile(cfg.OutputFile, records); err != nil {
		return err
	}
	log.Infof("wrote %d compile commands to %s", len(records), cfg.OutputFile)

	notify(ctx, cfg, &webhook.Notice{
		OutputFile:  cfg.OutputFile,
		Records:     len(records),
		Sources:     sources,
		Duration:    time.Since(start),
		GeneratedAt: time.Now(),
	})

	return nil
}

// notify posts the generation notice to every configured webhook.
// Failures are logged and never fail the run.
func notify(ctx context.Context, cfg *config.Config, notice *webhook.Notice) {
	if len(cfg.Webhooks) == 0 {
		return
	}

	client := webhook.NewClient()
	for _, wh := range cfg.Webhooks {
		resp := client.Send(ctx, notice, wh)

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			log.Infof("webhook %s: sent (%d, %s)", name, resp.StatusCode, resp.Duration)
		} else {
			log.Warnf("webhook %s: failed (%v)", name, resp.Err)
		}
	}
}
