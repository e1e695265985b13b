package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutputFile     = "compile_commands.json"
	DefaultWebhookTimeout = 10 * time.Second

	// DefaultCompilePattern matches common C/C++ compiler front-ends,
	// optionally path-prefixed and optionally version-suffixed
	// (gcc-12, clang-17.0).
	DefaultCompilePattern = `(?:[^/]*/)*(gcc|clang|cc|g\+\+|c\+\+|clang\+\+|cl)(?:-[0-9.]+)?(?:\s|$)`

	// DefaultFilePattern captures the source argument of a
	// "-c <file> -o <out>" invocation.
	DefaultFilePattern = `\s-c\s+(\S+\.(c|cpp|cc|cxx|c\+\+|s|m|mm|cu))\s+-o\s`
)

// Environment variable names.
const (
	EnvBuildDir   = "COMPILEDB_BUILD_DIR"
	EnvOutputFile = "COMPILEDB_OUTPUT_FILE"
)

// DefaultConfig returns a configuration with sensible defaults.
// The build directory defaults to the current working directory.
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		OutputFile:     DefaultOutputFile,
		BuildDir:       wd,
		CompilePattern: DefaultCompilePattern,
		FilePattern:    DefaultFilePattern,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvBuildDir); dir != "" {
		c.BuildDir = dir
	}
	if out := os.Getenv(EnvOutputFile); out != "" {
		c.OutputFile = out
	}
}
