// Package step executes external toolchain commands and translates their
// exit status into typed errors.
package step

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Error reports an external step that ran to completion but exited non-zero.
// Code carries the step's own exit status so the process can terminate with
// the same value.
type Error struct {
	Step string
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("step %s failed with exit status %d", e.Step, e.Code)
}

// Runner executes a named external step and blocks until it finishes.
type Runner interface {
	Run(ctx context.Context, name string, command string, args ...string) error
}

// ExecRunner runs steps with os/exec. The child inherits stdout and stderr so
// toolchain output reaches the operator unmodified.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, command string, args ...string) error {
	// Arguments are not logged here: the push step carries the registry
	// credential. The pipeline logs a redacted rendering instead.
	slog.Debug("Running external step", "step", name, "command", command)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Error{Step: name, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("start step %s: %w", name, err)
	}
	return nil
}
