package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/a5ehren/compiledb/pkg/config"
)

// Parser consumes a build trace line by line and emits compilation
// database records. A Parser owns its directory state exclusively: it
// is not safe for concurrent use, lines must arrive in trace order,
// and the state is reset at the start of every Parse run.
type Parser struct {
	cfg    *config.Config
	runner CommandRunner
	dirs   *dirTracker
}

// Option configures a Parser.
type Option func(*Parser)

// WithRunner overrides the subprocess runner used for back-tick
// command substitution.
func WithRunner(r CommandRunner) Option {
	return func(p *Parser) { p.runner = r }
}

// New creates a Parser for the given configuration. The configuration
// must already be validated so its patterns are compiled.
func New(cfg *config.Config, opts ...Option) (*Parser, error) {
	if cfg.CompiledCompilePattern() == nil || cfg.CompiledFilePattern() == nil {
		return nil, errors.New("configuration has not been validated: patterns are not compiled")
	}

	p := &Parser{
		cfg:    cfg,
		runner: shellRunner{},
		dirs:   newDirTracker(cfg.BuildDir),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParseLine interprets a single trace line and returns zero or more
// records. Directory announcements mutate the parser state and yield
// nothing; lines that fail extraction are skipped silently apart from
// diagnostic logging.
func (p *Parser) ParseLine(ctx context.Context, line string) []CompileCommand {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if p.dirs.consume(line) {
		return nil
	}

	compilePattern := p.cfg.CompiledCompilePattern()
	if !compilePattern.MatchString(line) {
		return nil
	}

	line, err := substituteBackticks(ctx, line, p.runner)
	if err != nil {
		log.Warnf("command substitution failed, skipping line: %v", err)
		return nil
	}
	line = unescapeQuotes(line)

	var records []CompileCommand
	for _, cmd := range splitCommands(line) {
		if m := cdPattern.FindStringSubmatch(cmd); m != nil {
			p.dirs.cd(m[1])
			continue
		}
		if !compilePattern.MatchString(cmd) {
			continue
		}
		if rec, ok := p.extract(cmd); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Parse folds ParseLine over every line of r in input order. Directory
// state is reset first, so each call is an independent run and parsing
// the same stream twice yields identical records.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]CompileCommand, error) {
	p.dirs = newDirTracker(p.cfg.BuildDir)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	var records []CompileCommand
	lineNum := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		recs := p.ParseLine(ctx, scanner.Text())
		if len(recs) > 0 {
			log.Debugf("line %d: %d compile command(s)", lineNum, len(recs))
		}
		records = append(records, recs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading build log: %w", err)
	}

	log.Infof("found %d compile commands in %d lines", len(records), lineNum)
	return records, nil
}

// ParseFile parses a build log file.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]CompileCommand, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening build log %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(ctx, f)
}
