package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adderan/cactusRepeats/internal/collapse"
)

// collapseCmd groups the graph collapse estimates
var collapseCmd = &cobra.Command{
	Use:                        "collapse",
	Short:                      "Estimate the edges needed to connect a random graph",
	SuggestionsMinimumDistance: 2,
	Long: `
Estimate how many random edges must be added to a graph of n nodes before it
is a single connected component. The estimates are either exact, from the
probability that an Erdos-Renyi graph is connected, or simulated.`,
}

// exactCmd prints and plots the edges needed per node count
var exactCmd = &cobra.Command{
	Use:                        "exact",
	Short:                      "Edges needed to connect graphs of 1 to max-nodes nodes",
	Run:                        collapse.ExactCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
For each node count n below max-nodes, find the number of edges such that a
random graph with n nodes and that many edges is connected with probability
threshold. By default the large-n estimate is used. --exact uses the exact
connectivity probability, which is much slower.

The edge counts are plotted against the number of all possible edges.`,
	Example: "  repeats collapse exact --threshold 0.95 --max-nodes 200 --out collapse.html",
}

// probCmd prints the connectivity probability of G(n, p)
var probCmd = &cobra.Command{
	Use:                        "prob",
	Short:                      "Probability that a random graph is connected",
	Run:                        collapse.ProbCmd,
	SuggestionsMinimumDistance: 3,
	Example:                    "  repeats collapse prob --n 50 --p 0.1",
}

// simulateCmd adds random edges until graphs are connected
var simulateCmd = &cobra.Command{
	Use:                        "simulate",
	Short:                      "Simulate adding random edges until a graph is connected",
	Run:                        collapse.SimulateCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
For graphs of 0, step, 2*step, ... nodes (below max-nodes), add distinct random
edges until the graph is one connected component. The mean number of edges
over the trials is written as a "nodes edges" table for 'repeats collapse plot'.`,
	Example: "  repeats collapse simulate --max-nodes 10000 --step 100 | repeats collapse plot --out sim.html",
}

// plotCmd fits a line to a simulated table
var plotCmd = &cobra.Command{
	Use:                        "plot",
	Short:                      "Fit and plot a simulated nodes vs edges table",
	Run:                        collapse.PlotCmd,
	SuggestionsMinimumDistance: 3,
	Long: `
Read a "nodes edges" table from stdin (or --in), fit a line to it, and plot the
points with the fit. The offset is added to the fit's intercept. The slope (a)
and intercept (b) are printed.`,
}

// set flags
func init() {
	exactCmd.Flags().Float64P("threshold", "t", 0.95, "probability that the graph is connected")
	exactCmd.Flags().IntP("max-nodes", "n", 100, "node counts up to, not including, this are estimated")
	exactCmd.Flags().BoolP("exact", "e", false, "use the exact connectivity probability, not the large-n estimate")
	exactCmd.Flags().StringP("out", "o", "", "output file for the plot <HTML>")
	exactCmd.Flags().String("table", "", "output file for the nodes vs edges table")
	exactCmd.MarkFlagRequired("out")

	probCmd.Flags().Int("n", 10, "number of nodes")
	probCmd.Flags().Float64("p", 0.5, "probability of each edge")

	simulateCmd.Flags().IntP("max-nodes", "n", 1000, "simulate graphs smaller than this")
	simulateCmd.Flags().IntP("step", "s", 10, "node count increment")
	simulateCmd.Flags().IntP("trials", "t", 1, "random graphs averaged per node count")
	simulateCmd.Flags().Uint64("seed", 1, "random seed")
	simulateCmd.Flags().IntP("workers", "w", 0, "node counts simulated at once (default: number of CPUs)")
	simulateCmd.Flags().StringP("out", "o", "", "output file for the table (default: stdout)")

	plotCmd.Flags().StringP("in", "i", "", "input table (default: stdin)")
	plotCmd.Flags().StringP("out", "o", "", "output file for the plot <HTML>")
	plotCmd.Flags().Float64("offset", 3000, "added to the fit line's intercept")
	plotCmd.MarkFlagRequired("out")

	collapseCmd.AddCommand(exactCmd)
	collapseCmd.AddCommand(probCmd)
	collapseCmd.AddCommand(simulateCmd)
	collapseCmd.AddCommand(plotCmd)

	rootCmd.AddCommand(collapseCmd)
}
