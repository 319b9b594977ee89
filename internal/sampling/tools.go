package sampling

import (
	"context"
	"fmt"
	"strings"

	"github.com/adderan/cactusRepeats/config"
	"github.com/adderan/cactusRepeats/internal/exectool"
)

// Tools are the external binaries an experiment is built from
type Tools struct {
	// Lastz is the seed-sampling aligner
	Lastz string

	// SeedScores turns raw seed counts into a seed scores table
	SeedScores string

	// Chunker splits sequences into overlapping chunks
	Chunker string
}

// NewTools gets the binary paths from the settings
func NewTools(c config.ToolsConfig) Tools {
	return Tools{
		Lastz:      c.Lastz,
		SeedScores: c.SeedScores,
		Chunker:    c.Chunker,
	}
}

// RawSeedCounts writes lastz's count of every seed in seq to out
func (t Tools) RawSeedCounts(ctx context.Context, seq, out string) error {
	return exectool.RunToFile(ctx, t.Lastz, []string{"--tableonly=count", seq}, out)
}

// SeedScoresTable combines raw seed count files into a seed scores table at
// out. Seeds seen fewer than countThreshold times are left out
func (t Tools) SeedScoresTable(ctx context.Context, countThreshold int, out string, counts ...string) error {
	args := []string{
		fmt.Sprintf("--countThreshold=%d", countThreshold),
		"--seedScoresFile=" + out,
	}
	return exectool.Run(ctx, t.SeedScores, append(args, counts...), nil)
}

// ChunkSequences splits seqs into chunks of chunkSize bp, with overlap bp
// shared by neighbors, written to dir. It returns the chunk paths
func (t Tools) ChunkSequences(ctx context.Context, chunkSize, overlap int, dir string, seqs ...string) ([]string, error) {
	args := []string{
		"DEBUG",
		fmt.Sprint(chunkSize),
		fmt.Sprint(overlap),
		dir,
	}

	out, err := exectool.Output(ctx, t.Chunker, append(args, seqs...)...)
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			chunks = append(chunks, line)
		}
	}
	return chunks, nil
}

// SampledLastz aligns seq1 against seq2, skipping seeds according to the
// seed scores table and sampleSeedThreshold. Alignments go to alignments and
// lastz's statistics to stats
func (t Tools) SampledLastz(ctx context.Context, seq1, seq2, seedScores, stats string, sampleSeedThreshold int, alignments string) error {
	args := []string{
		seq1 + "[unmask][multiple]",
		seq2 + "[unmask][multiple]",
		"--seedScoresFile=" + seedScores,
		"--stats=" + stats,
		fmt.Sprintf("--sampleSeedThreshold=%d", sampleSeedThreshold),
	}
	return exectool.RunToFile(ctx, t.Lastz, args, alignments)
}
