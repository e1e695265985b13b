package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// maxSubstitutionPasses bounds the back-tick resolution loop so a
// substitution whose output reintroduces back-ticks cannot loop forever.
const maxSubstitutionPasses = 8

var (
	backtickPattern   = regexp.MustCompile("`([^`]*)`")
	combinatorPattern = regexp.MustCompile(`\s*(?:;|&&|\|\|)\s*`)
)

// substituteBackticks replaces every back-tick span in line with the
// trimmed stdout of the span's command, repeating until no spans
// remain or the pass cap is hit. A failing substitution aborts the
// whole line: the caller skips it without affecting the rest of the
// parse.
func substituteBackticks(ctx context.Context, line string, runner CommandRunner) (string, error) {
	for pass := 0; pass < maxSubstitutionPasses; pass++ {
		if !backtickPattern.MatchString(line) {
			return line, nil
		}

		var runErr error
		line = backtickPattern.ReplaceAllStringFunc(line, func(span string) string {
			if runErr != nil {
				return span
			}
			out, err := runner.Run(ctx, span[1:len(span)-1])
			if err != nil {
				runErr = err
				return span
			}
			return strings.TrimSpace(out)
		})
		if runErr != nil {
			return "", runErr
		}
	}

	log.Warnf("back-tick substitution unresolved after %d passes: %s", maxSubstitutionPasses, line)
	return line, nil
}

// unescapeQuotes normalizes escaped quote sequences left behind by the
// dry-run echo of shell-quoted commands.
func unescapeQuotes(line string) string {
	line = strings.ReplaceAll(line, `\"`, `"`)
	return strings.ReplaceAll(line, `\'`, `'`)
}

// splitCommands breaks a composite shell line into sub-commands on the
// sequencing operators ;, && and ||. The split is deliberately
// quote-unaware: trace lines carry no grammar guarantee, and an
// approximate split keeps the behavior predictable. Subshell parens
// are stripped from fragment edges; empty fragments are dropped.
func splitCommands(line string) []string {
	var cmds []string
	for _, frag := range combinatorPattern.Split(line, -1) {
		frag = strings.TrimSpace(frag)
		frag = strings.TrimLeft(frag, "(")
		frag = strings.TrimRight(frag, ")")
		frag = strings.TrimSpace(frag)
		if frag != "" {
			cmds = append(cmds, frag)
		}
	}
	return cmds
}
