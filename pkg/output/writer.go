// Package output writes the compilation database to disk.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a5ehren/compiledb/pkg/parser"
)

// Write encodes records as a pretty-printed JSON array. A run with no
// records still produces a valid empty array.
func Write(w io.Writer, records []parser.CompileCommand) error {
	if records == nil {
		records = []parser.CompileCommand{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// WriteFile writes the compilation database to path, replacing any
// existing file.
func WriteFile(path string, records []parser.CompileCommand) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}

	if err := Write(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing compilation database to %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}
