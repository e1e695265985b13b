package parser

import (
	"context"
	"os/exec"
	"strings"
)

// CommandRunner executes a shell command and returns its captured
// standard output. Back-tick substitution goes through this interface
// so tests can supply deterministic outputs instead of invoking a
// real shell.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// shellRunner runs commands through sh -c.
type shellRunner struct{}

func (shellRunner) Run(ctx context.Context, command string) (string, error) {
	out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
