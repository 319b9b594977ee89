package exectool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// script writes an executable shell script to a temp dir
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutput(t *testing.T) {
	tool := script(t, `echo "args: $@"`)

	got, err := Output(context.Background(), tool, "a", "--b=2")
	if err != nil {
		t.Fatal(err)
	}
	if want := "args: a --b=2\n"; got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}
}

func TestRun_exitError(t *testing.T) {
	tool := script(t, "echo 'bad seed table' >&2\nexit 3\n")

	err := Run(context.Background(), tool, []string{"x"}, nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if !strings.HasSuffix(exitErr.Cmd, "tool.sh x") {
		t.Errorf("ExitError.Cmd = %q", exitErr.Cmd)
	}
	if !strings.Contains(err.Error(), "bad seed table") {
		t.Errorf("stderr missing from error: %v", err)
	}
}

func TestRun_missingBinary(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, nil)
	if err == nil {
		t.Fatal("Run() of a missing binary returned nil")
	}
}

func TestRunToFile(t *testing.T) {
	tool := script(t, "printf 'HSPs: 12\\n'\n")
	out := filepath.Join(t.TempDir(), "stats.txt")

	if err := RunToFile(context.Background(), tool, nil, out); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != "HSPs: 12\n" {
		t.Errorf("RunToFile() wrote %q", contents)
	}
}
