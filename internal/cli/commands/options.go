// Package commands implements the compiledb subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/a5ehren/compiledb/pkg/config"
)

// GenerateOptions holds the command-line options shared by the parse
// and make commands.
type GenerateOptions struct {
	ConfigFile   string
	Output       string
	BuildDir     string
	Exclude      []string
	NoBuild      bool
	NoStrict     bool
	Macros       []string
	CommandStyle bool
	FullPath     bool
	RegexCompile string
	RegexFile    string

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// addGenerateFlags registers the shared generation flags on cmd.
func addGenerateFlags(cmd *cobra.Command, opts *GenerateOptions) {
	f := cmd.Flags()

	f.StringVar(&opts.ConfigFile, "config", "", "YAML config file (flags override file values)")
	f.StringVarP(&opts.Output, "output", "o", config.DefaultOutputFile, "Output file path")
	f.StringVarP(&opts.BuildDir, "build-dir", "d", "", "Initial build directory (default: current directory)")
	f.StringSliceVarP(&opts.Exclude, "exclude", "e", nil, "Regex for files to exclude (can be repeated)")
	f.BoolVarP(&opts.NoStrict, "no-strict", "S", false, "Skip the source file existence check")
	f.StringSliceVarP(&opts.Macros, "macros", "m", nil, "Macro token(s) appended to every command")
	f.BoolVarP(&opts.CommandStyle, "command-style", "c", false, "Emit a single command string instead of an argument array")
	f.BoolVar(&opts.FullPath, "full-path", false, "Resolve the compiler to its absolute path")
	f.StringVar(&opts.RegexCompile, "regex-compile", config.DefaultCompilePattern, "Regex recognizing compiler invocations")
	f.StringVar(&opts.RegexFile, "regex-file", config.DefaultFilePattern, "Regex extracting the source file (first capture group)")

	// Webhook flags
	f.StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint notified after generation")
	f.StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
}

// buildConfig assembles the effective configuration: config file (if
// given) under flag overrides, then validated so the patterns compile
// before any line is parsed.
func (o *GenerateOptions) buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if o.ConfigFile != "" {
		loaded, err := config.LoadFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	f := cmd.Flags()
	if f.Changed("output") {
		cfg.OutputFile = o.Output
	}
	if f.Changed("build-dir") {
		cfg.BuildDir = o.BuildDir
	}
	if f.Changed("exclude") {
		cfg.Exclude = o.Exclude
	}
	if f.Changed("no-build") {
		cfg.NoBuild = o.NoBuild
	}
	if f.Changed("no-strict") {
		cfg.NoStrict = o.NoStrict
	}
	if f.Changed("macros") {
		cfg.Macros = o.Macros
	}
	if f.Changed("command-style") {
		cfg.CommandStyle = o.CommandStyle
	}
	if f.Changed("full-path") {
		cfg.FullPath = o.FullPath
	}
	if f.Changed("regex-compile") {
		cfg.CompilePattern = o.RegexCompile
	}
	if f.Changed("regex-file") {
		cfg.FilePattern = o.RegexFile
	}
	if o.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			Name:  "cli",
			URL:   o.WebhookURL,
			Token: o.WebhookToken,
		})
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
