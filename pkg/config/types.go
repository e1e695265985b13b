// Package config provides configuration loading and validation for compiledb.
package config

import (
	"regexp"
	"time"
)

// Config holds every setting for a database generation run. Command-line
// flags are the primary source; the same settings can come from a YAML
// config file, with flags taking precedence.
//
// A Config is immutable once validated. Validate compiles the regex
// patterns exactly once; the parser only sees compiled patterns.
type Config struct {
	// BuildLogs are build log paths or glob patterns to parse.
	BuildLogs []string `yaml:"build_logs,omitempty"`

	// OutputFile is where the compilation database is written.
	OutputFile string `yaml:"output_file,omitempty"`

	// BuildDir is the working directory the trace starts in.
	// Made absolute during validation.
	BuildDir string `yaml:"build_dir,omitempty"`

	// Exclude lists regex patterns; a source file matching any of them
	// is dropped from the database.
	Exclude []string `yaml:"exclude,omitempty"`

	// NoBuild skips the real build after trace collection and tolerates
	// a failing dry run.
	NoBuild bool `yaml:"no_build,omitempty"`

	// NoStrict skips the source file existence check.
	NoStrict bool `yaml:"no_strict,omitempty"`

	// Macros are extra tokens appended to every extracted invocation.
	Macros []string `yaml:"macros,omitempty"`

	// CommandStyle emits each record's invocation as a single command
	// string instead of an argument array.
	CommandStyle bool `yaml:"command_style,omitempty"`

	// FullPath resolves the compiler token to its absolute executable
	// location.
	FullPath bool `yaml:"full_path,omitempty"`

	// CompilePattern is the regex that recognizes compiler invocations.
	CompilePattern string `yaml:"compile_pattern,omitempty"`

	// FilePattern is the regex whose first capture group extracts the
	// compiled source file.
	FilePattern string `yaml:"file_pattern,omitempty"`

	// Webhooks are notified after the database has been written.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`

	// Compiled patterns (populated during validation)
	compiledCompilePattern *regexp.Regexp
	compiledFilePattern    *regexp.Regexp
	compiledExclude        []*regexp.Regexp
}

// CompiledCompilePattern returns the compiled compiler-recognition pattern.
func (c *Config) CompiledCompilePattern() *regexp.Regexp {
	return c.compiledCompilePattern
}

// CompiledFilePattern returns the compiled file-extraction pattern.
func (c *Config) CompiledFilePattern() *regexp.Regexp {
	return c.compiledFilePattern
}

// CompiledExclude returns the compiled exclusion patterns.
func (c *Config) CompiledExclude() []*regexp.Regexp {
	return c.compiledExclude
}

// WebhookConfig defines an endpoint that receives a generation notice.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	// Supports ${VAR} environment expansion.
	Token string `yaml:"token,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
