package sampling

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/adderan/cactusRepeats/config"
	"github.com/adderan/cactusRepeats/internal/logging"
	"github.com/adderan/cactusRepeats/internal/workflow"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// ThresholdsCmd is the root of `repeats sampling thresholds`
//
// it measures, for each seed sampling threshold, how many HSPs (and any
// other requested statistics) lastz finds between chunks of the input
// sequences, writing one row per threshold
func ThresholdsCmd(cmd *cobra.Command, args []string) {
	conf := config.New()

	opts, err := parseCmdFlags(cmd, args, conf)
	if err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := execThresholds(ctx, opts, conf)
	if err != nil {
		stderr.Fatal(err)
	}

	stderr.Printf("wrote %d thresholds to %s", len(results), opts.OutputFile)
}

// parseCmdFlags gathers the experiment's options from the command's flags,
// falling back on the settings for anything unset
func parseCmdFlags(cmd *cobra.Command, args []string, conf *config.Config) (Options, error) {
	flags := cmd.Flags()
	opts := Options{
		RunID:          uuid.NewString(),
		ChunkSize:      conf.Sampling.ChunkSize,
		OverlapSize:    conf.Sampling.OverlapSize,
		CountThreshold: conf.Sampling.CountThreshold,
		Columns:        conf.Sampling.Columns,
	}

	sequences, err := flags.GetString("sequences")
	if err != nil {
		return opts, err
	}
	opts.Sequences = splitList(sequences)
	if len(opts.Sequences) == 0 && len(args) > 0 {
		opts.Sequences = args
	}

	if opts.Thresholds, err = flags.GetIntSlice("thresholds"); err != nil {
		return opts, err
	}
	if flags.Changed("sample-seed-threshold") {
		threshold, err := flags.GetInt("sample-seed-threshold")
		if err != nil {
			return opts, err
		}
		opts.Thresholds = append(opts.Thresholds, threshold)
	}

	if opts.OutputFile, err = flags.GetString("out"); err != nil {
		return opts, err
	}
	if opts.PlotFile, err = flags.GetString("plot"); err != nil {
		return opts, err
	}

	if flags.Changed("columns") {
		if opts.Columns, err = flags.GetStringSlice("columns"); err != nil {
			return opts, err
		}
	}

	if opts.OutputFile != "" && !filepath.IsAbs(opts.OutputFile) {
		if opts.OutputFile, err = filepath.Abs(opts.OutputFile); err != nil {
			return opts, fmt.Errorf("failed to make output path absolute: %w", err)
		}
	}

	return opts, nil
}

// execThresholds runs the experiment in a fresh file store under the work dir
func execThresholds(ctx context.Context, opts Options, conf *config.Config) ([]Result, error) {
	level, err := logging.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", conf.LogLevel, err)
	}
	logger := logging.New(os.Stderr, level, slog.String("run", opts.RunID))

	store, err := workflow.NewFileStore(filepath.Join(conf.Workflow.WorkDir, "repeats-"+opts.RunID))
	if err != nil {
		return nil, err
	}
	if conf.Workflow.Keep {
		logger.Info("keeping file store", "dir", store.Dir())
	} else {
		defer store.Clean()
	}

	runner := &workflow.Runner{
		Store:       store,
		Logger:      logger,
		MaxParallel: conf.Workflow.MaxParallel,
	}

	exp, err := NewExperiment(opts, NewTools(conf.Tools), runner)
	if err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

// splitList splits a comma separated list, dropping empty entries
func splitList(s string) (list []string) {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return
}
