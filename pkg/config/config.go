package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a configuration file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a configuration file on top of the defaults without
// validating it. Callers that layer flag overrides on the result must
// call Validate themselves.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles its regex
// patterns. Invalid patterns are rejected here, before any line is
// parsed.
func Validate(cfg *Config) error {
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}

	if err := validateBuildDir(cfg); err != nil {
		return fmt.Errorf("build_dir: %w", err)
	}

	if err := validatePatterns(cfg); err != nil {
		return err
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateBuildDir(cfg *Config) error {
	if cfg.BuildDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving current directory: %w", err)
		}
		cfg.BuildDir = wd
	}

	abs, err := filepath.Abs(cfg.BuildDir)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", cfg.BuildDir, err)
	}
	cfg.BuildDir = abs

	return nil
}

func validatePatterns(cfg *Config) error {
	if cfg.CompilePattern == "" {
		cfg.CompilePattern = DefaultCompilePattern
	}
	if cfg.FilePattern == "" {
		cfg.FilePattern = DefaultFilePattern
	}

	re, err := regexp.Compile(cfg.CompilePattern)
	if err != nil {
		return fmt.Errorf("compile_pattern: invalid pattern: %w", err)
	}
	cfg.compiledCompilePattern = re

	re, err = regexp.Compile(cfg.FilePattern)
	if err != nil {
		return fmt.Errorf("file_pattern: invalid pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return errors.New("file_pattern: pattern must have at least one capture group for the source file")
	}
	cfg.compiledFilePattern = re

	cfg.compiledExclude = cfg.compiledExclude[:0]
	for i, pattern := range cfg.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("exclude[%d]: invalid pattern %q: %w", i, pattern, err)
		}
		cfg.compiledExclude = append(cfg.compiledExclude, re)
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
