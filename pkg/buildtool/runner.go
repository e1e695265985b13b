// Package buildtool spawns the build tool in dry-run mode and streams
// its trace into the parser.
package buildtool

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/a5ehren/compiledb/pkg/config"
	"github.com/a5ehren/compiledb/pkg/parser"
)

// Runner wraps the build tool binary, normally make.
type Runner struct {
	tool string
}

// NewRunner locates make on PATH, falling back to the bare name so the
// eventual spawn error identifies the missing tool.
func NewRunner() *Runner {
	tool, err := exec.LookPath("make")
	if err != nil {
		tool = "make"
	}
	return &Runner{tool: tool}
}

// NewRunnerWithTool uses an explicit build tool binary.
func NewRunnerWithTool(tool string) *Runner {
	return &Runner{tool: tool}
}

// Trace runs the build tool with -Bnkw (rebuild all, no execute, keep
// going, print directory) in the configured build directory and feeds
// its stdout through the parser. Stderr is drained concurrently;
// reading the pipes sequentially would deadlock once either OS buffer
// fills.
//
// A non-zero exit from the dry run is fatal unless the configuration
// skips the real build.
func (r *Runner) Trace(ctx context.Context, args []string, cfg *config.Config, p *parser.Parser) ([]parser.CompileCommand, error) {
	cmd := exec.CommandContext(ctx, r.tool, append([]string{"-Bnkw"}, args...)...)
	cmd.Dir = cfg.BuildDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capturing %s stdout: %w", r.tool, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("capturing %s stderr: %w", r.tool, err)
	}

	log.Debugf("running %s -Bnkw %v in %s", r.tool, args, cfg.BuildDir)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", r.tool, err)
	}

	var records []parser.CompileCommand
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var parseErr error
		records, parseErr = p.Parse(gctx, stdout)
		return parseErr
	})
	g.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			log.Debugf("%s stderr: %s", r.tool, scanner.Text())
		}
		return scanner.Err()
	})

	// Both pipes must be drained before Wait closes them.
	drainErr := g.Wait()
	waitErr := cmd.Wait()
	if drainErr != nil {
		return nil, fmt.Errorf("draining %s output: %w", r.tool, drainErr)
	}
	if waitErr != nil && !cfg.NoBuild {
		return nil, fmt.Errorf("%s dry run failed: %w", r.tool, waitErr)
	}

	log.Infof("trace collected %d compile commands", len(records))
	return records, nil
}

// Build runs the real build with inherited standard streams. A no-op
// when the configuration skips the build.
func (r *Runner) Build(ctx context.Context, args []string, cfg *config.Config) error {
	if cfg.NoBuild {
		return nil
	}

	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.Dir = cfg.BuildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debugf("running %s %v in %s", r.tool, args, cfg.BuildDir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}
