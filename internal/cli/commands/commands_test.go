package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/a5ehren/compiledb/pkg/parser"
)

const sampleTrace = `make: Entering directory '/project'
gcc -c main.c -o main.o
gcc -c util.c -o util.o
echo 'Not a compile command'
make: Leaving directory '/project'
`

func TestParseCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logFile, []byte(sampleTrace), 0644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "compile_commands.json")

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "-o", outFile, "-S", "-d", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("parse command error = %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	var records []parser.CompileCommand
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].File != "main.c" {
		t.Errorf("records[0].File = %q, want %q", records[0].File, "main.c")
	}
	// The Entering banner overrides the configured build dir.
	if records[0].Directory != "/project" {
		t.Errorf("records[0].Directory = %q, want %q", records[0].Directory, "/project")
	}
}

func TestParseCommand_CommandStyleAndMacros(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logFile, []byte("gcc -c main.c -o main.o\n"), 0644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "out.json")

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "-o", outFile, "-S", "-d", dir, "-c", "-m", "-D__GNUC__"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("parse command error = %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var records []parser.CompileCommand
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Command != "gcc -c main.c -o main.o -D__GNUC__" {
		t.Errorf("Command = %q", records[0].Command)
	}
	if records[0].Arguments != nil {
		t.Errorf("Arguments = %v, want nil in command style", records[0].Arguments)
	}
}

func TestParseCommand_MissingLogFails(t *testing.T) {
	cmd := NewParseCommand()
	cmd.SetArgs([]string{"/nonexistent/build.log", "-S"})
	if err := cmd.Execute(); err == nil {
		t.Error("parse command expected error for missing build log")
	}
}

func TestParseCommand_InvalidRegexFails(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logFile, []byte(sampleTrace), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "-S", "--regex-compile", "([unclosed"})
	if err := cmd.Execute(); err == nil {
		t.Error("parse command expected error for invalid pattern")
	}
}

func TestParseCommand_ConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logFile, []byte("gcc -c main.c -o main.o\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfgFile := filepath.Join(dir, "compiledb.yaml")
	cfgContent := "output_file: " + filepath.Join(dir, "from_config.json") + "\nno_strict: true\n"
	if err := os.WriteFile(cfgFile, []byte(cfgContent), 0644); err != nil {
		t.Fatal(err)
	}

	// The flag wins over the config file value.
	outFile := filepath.Join(dir, "from_flag.json")
	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "--config", cfgFile, "-o", outFile, "-d", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("parse command error = %v", err)
	}

	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("flag-specified output not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "from_config.json")); err == nil {
		t.Error("config-file output written despite flag override")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "compiledb.yaml")
	if err := os.WriteFile(cfgFile, []byte("no_strict: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{cfgFile})
	if err := cmd.Execute(); err != nil {
		t.Errorf("validate command error = %v", err)
	}
}

func TestValidateCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "compiledb.yaml")
	if err := os.WriteFile(cfgFile, []byte("compile_pattern: '([unclosed'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{cfgFile})
	if err := cmd.Execute(); err == nil {
		t.Error("validate command expected error for invalid pattern")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}
}
