package sampling

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// script writes an executable shell script called name to dir
func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// recorder is a tool that writes its args, one per line, to a file
func recorder(t *testing.T) (tool, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	tool = script(t, dir, "tool.sh", `printf '%s\n' "$@" > `+argsFile+"\necho out\n")
	return tool, argsFile
}

func readArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	contents, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(contents)), "\n")
}

func TestTools(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name string
		run  func(tools Tools) error
		want []string
	}{
		{
			"raw seed counts",
			func(tools Tools) error {
				return tools.RawSeedCounts(ctx, "seq.fa", out)
			},
			[]string{"--tableonly=count", "seq.fa"},
		},
		{
			"seed scores table",
			func(tools Tools) error {
				return tools.SeedScoresTable(ctx, 2, "scores", "a.counts", "b.counts")
			},
			[]string{"--countThreshold=2", "--seedScoresFile=scores", "a.counts", "b.counts"},
		},
		{
			"sampled lastz",
			func(tools Tools) error {
				return tools.SampledLastz(ctx, "a.fa", "b.fa", "scores", "stats", 20, out)
			},
			[]string{
				"a.fa[unmask][multiple]",
				"b.fa[unmask][multiple]",
				"--seedScoresFile=scores",
				"--stats=stats",
				"--sampleSeedThreshold=20",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, argsFile := recorder(t)
			tools := Tools{Lastz: tool, SeedScores: tool, Chunker: tool}

			if err := tt.run(tools); err != nil {
				t.Fatal(err)
			}
			if got := readArgs(t, argsFile); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTools_RawSeedCounts_stdout(t *testing.T) {
	dir := t.TempDir()
	lastz := script(t, dir, "lastz.sh", "echo 'ACGTACGT 12'\n")
	out := filepath.Join(dir, "counts")

	if err := (Tools{Lastz: lastz}).RawSeedCounts(context.Background(), "seq.fa", out); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(contents); got != "ACGTACGT 12\n" {
		t.Errorf("counts = %q", got)
	}
}

func TestTools_ChunkSequences(t *testing.T) {
	dir := t.TempDir()
	chunker := script(t, dir, "chunker.sh", `echo "$1 $2 $3" > "$4/args"
echo "$4/chunk0.fa"
echo
echo "$4/chunk1.fa"
`)
	chunkDir := t.TempDir()

	got, err := (Tools{Chunker: chunker}).ChunkSequences(context.Background(), 5000, 1000, chunkDir, "a.fa")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{filepath.Join(chunkDir, "chunk0.fa"), filepath.Join(chunkDir, "chunk1.fa")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChunkSequences() = %v, want %v", got, want)
	}

	args, err := os.ReadFile(filepath.Join(chunkDir, "args"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(args)); got != "DEBUG 5000 1000" {
		t.Errorf("chunker args = %q", got)
	}
}

func TestTools_failure(t *testing.T) {
	dir := t.TempDir()
	tools := Tools{SeedScores: script(t, dir, "fail.sh", "echo 'no counts' >&2\nexit 1\n")}

	err := tools.SeedScoresTable(context.Background(), 2, filepath.Join(dir, "scores"))
	if err == nil || !strings.Contains(err.Error(), "no counts") {
		t.Errorf("SeedScoresTable() error = %v, want the tool's stderr", err)
	}
}
