package parser

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// extract builds a CompileCommand from a sub-command already known to
// match the compile pattern. A false result means the sub-command was
// skipped; skips are logged, never surfaced as errors.
func (p *Parser) extract(cmd string) (CompileCommand, bool) {
	tokens := strings.Fields(cmd)

	// Drop shell wrapper prefixes: the invocation starts at the first
	// token the compile pattern recognizes.
	start := -1
	for i, tok := range tokens {
		if p.cfg.CompiledCompilePattern().MatchString(tok) {
			start = i
			break
		}
	}
	if start < 0 {
		log.Debugf("no token matched the compile pattern: %s", cmd)
		return CompileCommand{}, false
	}
	args := tokens[start:]

	// The source file comes from the untruncated sub-command, so file
	// patterns may anchor on text preceding the compiler token.
	m := p.cfg.CompiledFilePattern().FindStringSubmatch(cmd)
	if len(m) < 2 || m[1] == "" {
		log.Debugf("no source file found: %s", cmd)
		return CompileCommand{}, false
	}

	wd := p.dirs.wd
	file := relativize(m[1], wd)

	if p.cfg.FullPath {
		if resolved, err := exec.LookPath(args[0]); err == nil {
			args[0] = resolved
		}
	}

	// Keep an absolute -c argument consistent with the reported file.
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-c" && filepath.IsAbs(args[i+1]) {
			args[i+1] = relativize(args[i+1], wd)
		}
	}

	if p.excluded(file) {
		log.Infof("excluding %s", file)
		return CompileCommand{}, false
	}

	if !p.cfg.NoStrict && !sourceExists(wd, file) {
		log.Warnf("source file not found: %s", file)
		return CompileCommand{}, false
	}

	args = append(args, p.cfg.Macros...)

	rec := CompileCommand{Directory: wd, File: file}
	if p.cfg.CommandStyle {
		rec.Command = strings.Join(args, " ")
	} else {
		rec.Arguments = args
	}
	return rec, true
}

// excluded reports whether any configured exclusion pattern matches.
// All patterns are checked, so the configured order does not matter.
func (p *Parser) excluded(file string) bool {
	for _, re := range p.cfg.CompiledExclude() {
		if re.MatchString(file) {
			return true
		}
	}
	return false
}

func sourceExists(wd, file string) bool {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// relativize rewrites an absolute path as relative to wd. Prefix
// stripping is tried first. Failing that, the longest run of path
// components matching a suffix of wd's components anchors the relative
// remainder, which covers traces recorded under a different mount of
// the same tree. Paths that align with neither are returned unchanged.
func relativize(path, wd string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	if rest := strings.TrimPrefix(path, wd+string(filepath.Separator)); rest != path {
		return rest
	}

	wdParts := splitComponents(wd)
	pathParts := splitComponents(path)

	bestCut, bestLen := -1, 0
	for cut := 1; cut < len(pathParts); cut++ {
		n := 0
		for n < cut && n < len(wdParts) && pathParts[cut-1-n] == wdParts[len(wdParts)-1-n] {
			n++
		}
		if n > bestLen {
			bestLen, bestCut = n, cut
		}
	}
	if bestLen == 0 {
		return path
	}
	return filepath.Join(pathParts[bestCut:]...)
}

func splitComponents(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
