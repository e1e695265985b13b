// Package parser implements the build-trace interpreter that turns raw
// make dry-run output into compilation database records.
package parser

// CompileCommand is a single entry of the compilation database.
// Exactly one of Command or Arguments is populated, selected by the
// command-style configuration. Absent optional fields are omitted from
// the JSON output, never emitted as null.
type CompileCommand struct {
	// Directory is the working directory the command ran in.
	Directory string `json:"directory"`

	// File is the compiled source, relative to Directory when possible.
	File string `json:"file"`

	// Command is the invocation as a single string.
	Command string `json:"command,omitempty"`

	// Arguments is the invocation as an ordered token list.
	Arguments []string `json:"arguments,omitempty"`

	// Output is the object file produced by the invocation.
	// Reserved for -o extraction; the parser does not populate it.
	Output string `json:"output,omitempty"`
}
