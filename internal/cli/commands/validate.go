package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a5ehren/compiledb/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a compiledb configuration file without parsing anything.

Checks:
  - YAML syntax
  - Regex pattern validity (compile, file, exclusions)
  - Capture group presence in the file pattern
  - Webhook URL validity`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Build dir:        %s\n", cfg.BuildDir)
	fmt.Printf("  Output file:      %s\n", cfg.OutputFile)
	fmt.Printf("  Compile pattern:  %s\n", cfg.CompilePattern)
	fmt.Printf("  File pattern:     %s\n", cfg.FilePattern)
	fmt.Printf("  Exclusions:       %d\n", len(cfg.Exclude))
	fmt.Printf("  Webhooks:         %d\n", len(cfg.Webhooks))

	if len(cfg.BuildLogs) > 0 {
		fmt.Printf("\nBuild logs:\n")
		for _, logPath := range cfg.BuildLogs {
			fmt.Printf("  - %s\n", logPath)
		}
	}

	return nil
}
