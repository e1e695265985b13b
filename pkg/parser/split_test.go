package parser

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// fakeRunner returns canned outputs for back-tick substitution tests.
type fakeRunner struct {
	outputs map[string]string
	err     error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, command string) (string, error) {
	f.calls = append(f.calls, command)
	if f.err != nil {
		return "", f.err
	}
	out, ok := f.outputs[command]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", command)
	}
	return out, nil
}

func TestSplitCommands(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			"single command",
			"gcc -c a.c -o a.o",
			[]string{"gcc -c a.c -o a.o"},
		},
		{
			"semicolons",
			"echo start; gcc -c a.c -o a.o; echo done",
			[]string{"echo start", "gcc -c a.c -o a.o", "echo done"},
		},
		{
			"mixed combinators",
			"cd src && gcc -c a.c -o a.o || echo failed",
			[]string{"cd src", "gcc -c a.c -o a.o", "echo failed"},
		},
		{
			"subshell wrapper",
			"( set -e ; gcc -c a.c -o a.o )",
			[]string{"set -e", "gcc -c a.c -o a.o"},
		},
		{
			"empty fragments dropped",
			"; gcc -c a.c -o a.o ;;",
			[]string{"gcc -c a.c -o a.o"},
		},
		{
			"single pipe is not a separator",
			"gcc -c a.c -o a.o | tee log",
			[]string{"gcc -c a.c -o a.o | tee log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCommands(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCommands(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestUnescapeQuotes(t *testing.T) {
	got := unescapeQuotes(`gcc -DNAME=\"app\" -DCHAR=\'x\' -c a.c -o a.o`)
	want := `gcc -DNAME="app" -DCHAR='x' -c a.c -o a.o`
	if got != want {
		t.Errorf("unescapeQuotes = %q, want %q", got, want)
	}
}

func TestSubstituteBackticks(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"pkg-config --cflags glib": "-I/usr/include/glib",
	}}

	got, err := substituteBackticks(context.Background(),
		"gcc `pkg-config --cflags glib` -c a.c -o a.o", runner)
	if err != nil {
		t.Fatalf("substituteBackticks() error = %v", err)
	}
	want := "gcc -I/usr/include/glib -c a.c -o a.o"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(runner.calls) != 1 {
		t.Errorf("runner called %d times, want 1", len(runner.calls))
	}
}

func TestSubstituteBackticks_Nested(t *testing.T) {
	// The first substitution introduces another span; the loop resolves
	// it on the next pass.
	runner := &fakeRunner{outputs: map[string]string{
		"outer": "`inner`",
		"inner": "x.c",
	}}

	got, err := substituteBackticks(context.Background(), "gcc -c `outer` -o x.o", runner)
	if err != nil {
		t.Fatalf("substituteBackticks() error = %v", err)
	}
	if got != "gcc -c x.c -o x.o" {
		t.Errorf("got %q, want %q", got, "gcc -c x.c -o x.o")
	}
}

func TestSubstituteBackticks_CapTerminates(t *testing.T) {
	// A substitution that always reintroduces a span must hit the pass
	// cap instead of looping forever.
	runner := &fakeRunner{outputs: map[string]string{
		"loop": "`loop`",
	}}

	got, err := substituteBackticks(context.Background(), "gcc `loop` -c a.c -o a.o", runner)
	if err != nil {
		t.Fatalf("substituteBackticks() error = %v", err)
	}
	if got == "" {
		t.Error("capped substitution should keep the remaining text")
	}
	if len(runner.calls) != maxSubstitutionPasses {
		t.Errorf("runner called %d times, want %d", len(runner.calls), maxSubstitutionPasses)
	}
}

func TestSubstituteBackticks_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("spawn failed")}

	_, err := substituteBackticks(context.Background(), "gcc `broken` -c a.c -o a.o", runner)
	if err == nil {
		t.Error("expected error from failing runner")
	}
}

func TestSubstituteBackticks_NoSpans(t *testing.T) {
	runner := &fakeRunner{}

	line := "gcc -c a.c -o a.o"
	got, err := substituteBackticks(context.Background(), line, runner)
	if err != nil {
		t.Fatalf("substituteBackticks() error = %v", err)
	}
	if got != line {
		t.Errorf("got %q, want unchanged %q", got, line)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(runner.calls))
	}
}
