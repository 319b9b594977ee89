package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adderan/cactusRepeats/internal/sampling"
)

// samplingCmd groups the seed sampling experiments
var samplingCmd = &cobra.Command{
	Use:                        "sampling",
	Short:                      "Measure the effect of lastz's seed sampling",
	SuggestionsMinimumDistance: 2,
}

// thresholdsCmd runs lastz at a range of sampling thresholds
var thresholdsCmd = &cobra.Command{
	Use:                        "thresholds [sequence] ... [sequenceN]",
	Short:                      "Count HSPs at each seed sampling threshold",
	Run:                        sampling.ThresholdsCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Count the HSPs lastz finds at each seed sampling threshold.

The sequences are split into overlapping chunks and their seeds counted into a
seed scores table. Then, for each threshold, every pair of chunks is aligned
with sampled lastz and the statistics lastz reports are summed. The output is
a tab separated table with a row per threshold.`,
	Example: "  repeats sampling thresholds --sequences a.fa,b.fa --thresholds 1,2,4,8 --out hsps.tsv --plot hsps.html",
}

// set flags
func init() {
	flags := thresholdsCmd.Flags()
	flags.StringP("sequences", "s", "", "comma separated list of sequences to align <FASTA>")
	flags.IntSliceP("thresholds", "t", nil, "comma separated list of sampling thresholds")
	flags.Int("sample-seed-threshold", 0, "a single sampling threshold, added to --thresholds")
	flags.StringP("out", "o", "", "output file for the table <TSV>")
	flags.StringP("plot", "p", "", "output file for a plot of the table <HTML>")
	flags.StringSliceP("columns", "c", []string{"HSPs"}, "lastz statistics written to the table")

	flags.Int("chunk-size", 5000, "length of each sequence chunk")
	flags.Int("overlap-size", 1000, "overlap between neighboring chunks")
	flags.Int("count-threshold", 2, "min count for a seed to be scored")

	flags.String("lastz", "cactus_lastz", "path to lastz")
	flags.String("seed-scores", "cactus_blast_makeSeedScoresTable", "path to the seed scores table maker")
	flags.String("chunker", "cactus_blast_chunkSequences", "path to the sequence chunker")

	flags.String("work-dir", "", "directory for the run's file store (default: the temp dir)")
	flags.IntP("max-parallel", "j", 0, "max jobs running at once (default: number of CPUs)")
	flags.Bool("keep", false, "keep the file store after the run")

	thresholdsCmd.MarkFlagRequired("out")

	// settings that can also come from the settings file
	for key, flag := range map[string]string{
		"sampling.chunk-size":      "chunk-size",
		"sampling.overlap-size":    "overlap-size",
		"sampling.count-threshold": "count-threshold",
		"tools.lastz":              "lastz",
		"tools.seed-scores":        "seed-scores",
		"tools.chunker":            "chunker",
		"workflow.work-dir":        "work-dir",
		"workflow.max-parallel":    "max-parallel",
		"workflow.keep":            "keep",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	samplingCmd.AddCommand(thresholdsCmd)

	rootCmd.AddCommand(samplingCmd)
}
