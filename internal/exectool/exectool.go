// Package exectool runs the external command line tools that the experiments
// are stitched together from.
package exectool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExitError is returned when an external tool can't be started or exits
// with a non-zero status.
type ExitError struct {
	// Cmd is the command line that was run
	Cmd string

	// Stderr is everything the tool wrote to stderr
	Stderr string

	// Err is the underlying error from os/exec
	Err error
}

func (e *ExitError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("failed to execute %s: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("failed to execute %s: %v: %s", e.Cmd, e.Err, stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Run executes name with args and waits on it to finish. stdout, if not nil,
// receives the tool's standard output.
func Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExitError{
			Cmd:    commandLine(name, args),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return nil
}

// RunToFile executes the tool with its stdout redirected to the file at out,
// the equivalent of "name args... > out".
func RunToFile(ctx context.Context, name string, args []string, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file for %s: %w", name, err)
	}

	runErr := Run(ctx, name, args, f)
	if err := f.Close(); err != nil && runErr == nil {
		return fmt.Errorf("failed to close output file %s: %w", out, err)
	}
	return runErr
}

// Output executes the tool and returns its stdout.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdout bytes.Buffer
	if err := Run(ctx, name, args, &stdout); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
