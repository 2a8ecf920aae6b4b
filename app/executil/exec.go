// Package executil runs external programs such as the pager and the browser opener.
package executil

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// StartError is returned when a program could not be located or started.
// Errors returned after a successful start are never a StartError.
type StartError struct {
	Cmd string
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Cmd, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// Executor runs external commands.
type Executor interface {
	// Run executes a command, waits for it and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunStream executes a command wired to the provided reader and writers and waits for it.
	RunStream(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) error
}

// RealExecutor calls actual programs.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return nil, &StartError{Cmd: cmd, Err: err}
	}
	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// RunStream executes a command and streams stdin/stdout/stderr through the provided reader and writers.
func (e *RealExecutor) RunStream(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) error {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Start(); err != nil {
		return &StartError{Cmd: cmd, Err: err}
	}
	if err := c.Wait(); err != nil {
		return fmt.Errorf("exec %s: %w", cmd, err)
	}
	return nil
}
