// Package sampling is for measuring how lastz's seed sampling trades
// alignment sensitivity for speed. Sequences are chunked, aligned chunk
// against chunk at a range of sampling thresholds, and lastz's statistics
// summed per threshold.
package sampling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/adderan/cactusRepeats/internal/fasta"
	"github.com/adderan/cactusRepeats/internal/workflow"
)

// Options are the parameters of a threshold experiment
type Options struct {
	// RunID names the run in logs and the manifest
	RunID string

	// Sequences are the FASTA files to align
	Sequences []string

	// Thresholds are the values of lastz's --sampleSeedThreshold to try
	Thresholds []int

	// ChunkSize is the length of each sequence chunk
	ChunkSize int

	// OverlapSize is the overlap between neighboring chunks
	OverlapSize int

	// CountThreshold is the min count for a seed to be scored
	CountThreshold int

	// Columns are the statistics written to the output table
	Columns []string

	// OutputFile is the path for the tab-separated table
	OutputFile string

	// PlotFile, if set, is the path for an HTML plot of the table
	PlotFile string
}

// Result is the summed lastz statistics at one sampling threshold
type Result struct {
	Threshold int
	Stats     Stats
}

// Experiment runs lastz over every pair of sequence chunks at each sampling
// threshold
type Experiment struct {
	opts   Options
	tools  Tools
	runner *workflow.Runner
	logger *slog.Logger

	// total length of the input sequences
	bases int64
}

// NewExperiment checks opts and creates an Experiment that runs on runner
func NewExperiment(opts Options, tools Tools, runner *workflow.Runner) (*Experiment, error) {
	if len(opts.Sequences) == 0 {
		return nil, errors.New("no sequences to align")
	}
	if len(opts.Thresholds) == 0 {
		return nil, errors.New("no sampling thresholds")
	}
	thresholds, err := uniqueThresholds(opts.Thresholds)
	if err != nil {
		return nil, err
	}
	opts.Thresholds = thresholds
	if opts.ChunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.OverlapSize < 0 || opts.OverlapSize >= opts.ChunkSize {
		return nil, fmt.Errorf("overlap size must be in [0, %d), got %d", opts.ChunkSize, opts.OverlapSize)
	}
	if opts.OutputFile == "" {
		return nil, errors.New("no output file")
	}
	var bases int64
	for _, seq := range opts.Sequences {
		records, err := fasta.ReadFile(seq)
		if err != nil {
			return nil, err
		}
		bases += fasta.TotalLen(records)
	}
	if len(opts.Columns) == 0 {
		opts.Columns = []string{"HSPs"}
	}

	logger := runner.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Experiment{
		opts:   opts,
		tools:  tools,
		runner: runner,
		logger: logger,
		bases:  bases,
	}, nil
}

// uniqueThresholds drops repeated thresholds, keeping the first of each,
// and rejects negative ones
func uniqueThresholds(thresholds []int) ([]int, error) {
	seen := make(map[int]bool, len(thresholds))
	unique := make([]int, 0, len(thresholds))
	for _, t := range thresholds {
		if t < 0 {
			return nil, fmt.Errorf("sampling threshold must be at least 0, got %d", t)
		}
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	return unique, nil
}

// tableOutput is what the final job returns
type tableOutput struct {
	table   workflow.FileID
	results []Result
}

// Run executes the experiment and writes the output table, manifest, and
// plot (if one was asked for)
func (e *Experiment) Run(ctx context.Context) ([]Result, error) {
	perThreshold := make([]workflow.Promise, len(e.opts.Thresholds))

	root := workflow.NewJob("import", e.importSequences)

	var countJobs []workflow.Promise
	for i := range e.opts.Sequences {
		countJobs = append(countJobs, root.AddChild(e.seedCountsJob(root.Rv(), i)).Rv())
	}
	chunks := root.AddChild(workflow.NewJob("chunk", e.chunkFn(root.Rv())))

	scores := root.AddFollowOn(workflow.NewJob("seedScores", e.seedScoresFn(countJobs)))
	align := scores.AddFollowOn(workflow.NewJob("align", e.alignFn(chunks.Rv(), scores.Rv(), perThreshold)))
	output := align.AddFollowOn(workflow.NewJob("output", e.outputFn(perThreshold)))

	e.logger.Info("starting threshold experiment",
		"sequences", len(e.opts.Sequences),
		"bases", e.bases,
		"thresholds", e.opts.Thresholds,
	)
	if _, err := e.runner.Start(ctx, root); err != nil {
		return nil, err
	}

	out, err := workflow.Resolve[tableOutput](output.Rv())
	if err != nil {
		return nil, err
	}

	if err := e.runner.Store.ExportFile(out.table, workflow.ToURL(e.opts.OutputFile)); err != nil {
		return nil, fmt.Errorf("failed to export the output table: %w", err)
	}
	if err := writeManifest(manifestPath(e.opts.OutputFile), e.opts, out.results); err != nil {
		return nil, err
	}
	if e.opts.PlotFile != "" {
		if err := plotResults(e.opts.PlotFile, e.opts.Columns, out.results); err != nil {
			return nil, err
		}
	}

	return out.results, nil
}

// importSequences copies the input sequences into the file store
func (e *Experiment) importSequences(ctx context.Context, j *workflow.Job) (any, error) {
	ids := make([]workflow.FileID, 0, len(e.opts.Sequences))
	for _, seq := range e.opts.Sequences {
		id, err := j.Store().ImportFile(workflow.ToURL(seq))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// seedCountsJob counts the seeds in the i-th sequence
func (e *Experiment) seedCountsJob(sequences workflow.Promise, i int) *workflow.Job {
	return workflow.NewJob(fmt.Sprintf("seedCounts-%d", i), func(ctx context.Context, j *workflow.Job) (any, error) {
		j.Log("getting seed counts from lastz", "sequence", e.opts.Sequences[i])

		ids, err := workflow.Resolve[[]workflow.FileID](sequences)
		if err != nil {
			return nil, err
		}
		seq, err := j.Store().ReadGlobalFile(ids[i])
		if err != nil {
			return nil, err
		}

		counts, err := j.Store().LocalTempFile()
		if err != nil {
			return nil, err
		}
		if err := e.tools.RawSeedCounts(ctx, seq, counts); err != nil {
			return nil, err
		}
		return j.Store().WriteGlobalFile(counts)
	})
}

func (e *Experiment) seedScoresFn(counts []workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		j.Log("making seed scores table", "countThreshold", e.opts.CountThreshold)

		ids, err := workflow.ResolveAll[workflow.FileID](counts)
		if err != nil {
			return nil, err
		}

		files := make([]string, 0, len(ids))
		for _, id := range ids {
			f, err := j.Store().ReadGlobalFile(id)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}

		table, err := j.Store().LocalTempFile()
		if err != nil {
			return nil, err
		}
		if err := e.tools.SeedScoresTable(ctx, e.opts.CountThreshold, table, files...); err != nil {
			return nil, err
		}
		return j.Store().WriteGlobalFile(table)
	}
}

func (e *Experiment) chunkFn(sequences workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		j.Log("making chunks", "chunkSize", e.opts.ChunkSize, "overlapSize", e.opts.OverlapSize)

		ids, err := workflow.Resolve[[]workflow.FileID](sequences)
		if err != nil {
			return nil, err
		}

		seqs := make([]string, 0, len(ids))
		for _, id := range ids {
			seq, err := j.Store().ReadGlobalFile(id)
			if err != nil {
				return nil, err
			}
			seqs = append(seqs, seq)
		}

		dir, err := j.Store().LocalTempDir()
		if err != nil {
			return nil, err
		}
		paths, err := e.tools.ChunkSequences(ctx, e.opts.ChunkSize, e.opts.OverlapSize, dir, seqs...)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, errors.New("chunker produced no chunks")
		}

		chunks := make([]workflow.FileID, 0, len(paths))
		for _, p := range paths {
			id, err := j.Store().WriteGlobalFile(p)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, id)
		}

		j.Log("made chunks", "count", len(chunks))
		return chunks, nil
	}
}

// alignFn schedules, for every threshold, a sampled lastz run on each pair
// of chunks followed by a job summing their stats. The sum's promise goes in
// perThreshold
func (e *Experiment) alignFn(chunks, scores workflow.Promise, perThreshold []workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		chunkIDs, err := workflow.Resolve[[]workflow.FileID](chunks)
		if err != nil {
			return nil, err
		}
		scoresID, err := workflow.Resolve[workflow.FileID](scores)
		if err != nil {
			return nil, err
		}

		pairs := 0
		for i, threshold := range e.opts.Thresholds {
			thresholdJob := j.AddChild(workflow.NewJob(fmt.Sprintf("threshold-%d", threshold), nil))

			var parsed []workflow.Promise
			for a := range chunkIDs {
				for b := a; b < len(chunkIDs); b++ {
					name := fmt.Sprintf("lastz-%d-%d-%d", threshold, a, b)
					lastz := thresholdJob.AddChild(e.lastzJob(name, chunkIDs[a], chunkIDs[b], scoresID, threshold))
					parse := lastz.AddFollowOn(workflow.NewJob("parse-"+name, parseStatsFn(lastz.Rv())))
					parsed = append(parsed, parse.Rv())
				}
			}
			pairs = len(parsed)

			sum := thresholdJob.AddFollowOn(workflow.NewJob(fmt.Sprintf("sum-%d", threshold), sumStatsFn(threshold, parsed)))
			perThreshold[i] = sum.Rv()
		}

		j.Log("scheduled alignments", "thresholds", len(e.opts.Thresholds), "chunkPairs", pairs)
		return pairs, nil
	}
}

func (e *Experiment) lastzJob(name string, seq1, seq2, scores workflow.FileID, threshold int) *workflow.Job {
	return workflow.NewJob(name, func(ctx context.Context, j *workflow.Job) (any, error) {
		j.Log("running lastz with seed sampling", "sampleSeedThreshold", threshold)

		s1, err := j.Store().ReadGlobalFile(seq1)
		if err != nil {
			return nil, err
		}
		s2, err := j.Store().ReadGlobalFile(seq2)
		if err != nil {
			return nil, err
		}
		table, err := j.Store().ReadGlobalFile(scores)
		if err != nil {
			return nil, err
		}

		alignments, err := j.Store().LocalTempFile()
		if err != nil {
			return nil, err
		}
		stats, err := j.Store().LocalTempFile()
		if err != nil {
			return nil, err
		}

		if err := e.tools.SampledLastz(ctx, s1, s2, table, stats, threshold, alignments); err != nil {
			return nil, err
		}
		return j.Store().WriteGlobalFile(stats)
	})
}

func parseStatsFn(statsFile workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		id, err := workflow.Resolve[workflow.FileID](statsFile)
		if err != nil {
			return nil, err
		}
		path, err := j.Store().ReadGlobalFile(id)
		if err != nil {
			return nil, err
		}
		return ParseStatsFile(path)
	}
}

func sumStatsFn(threshold int, parsed []workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		all, err := workflow.ResolveAll[Stats](parsed)
		if err != nil {
			return nil, err
		}

		total := Stats{}
		for _, s := range all {
			total.Add(s)
		}
		return Result{Threshold: threshold, Stats: total}, nil
	}
}

func (e *Experiment) outputFn(perThreshold []workflow.Promise) workflow.JobFunc {
	return func(ctx context.Context, j *workflow.Job) (any, error) {
		results, err := workflow.ResolveAll[Result](perThreshold)
		if err != nil {
			return nil, err
		}

		path, err := j.Store().LocalTempFile()
		if err != nil {
			return nil, err
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := writeTable(f, e.opts.Columns, results); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}

		id, err := j.Store().WriteGlobalFile(path)
		if err != nil {
			return nil, err
		}
		return tableOutput{table: id, results: results}, nil
	}
}
