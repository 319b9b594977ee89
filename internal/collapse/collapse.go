// Package collapse is for estimating how many random edges it takes to join
// an n node graph into a single connected component, both exactly (with the
// Erdos-Renyi connectivity recurrence) and by simulation.
package collapse

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/adderan/cactusRepeats/internal/plot"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// fitOffset is added to the fit line's intercept in `collapse plot`
const fitOffset = 3000

// ExactCmd is for `repeats collapse exact`. It prints and plots the number
// of edges needed to connect graphs of 1 to max-nodes-1 nodes
func ExactCmd(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	threshold, _ := flags.GetFloat64("threshold")
	maxNodes, _ := flags.GetInt("max-nodes")
	exact, _ := flags.GetBool("exact")
	out, _ := flags.GetString("out")
	table, _ := flags.GetString("table")

	if out == "" {
		cmd.Help()
		stderr.Fatal("no --out file for the plot")
	}

	points, err := EdgeCurve(maxNodes, threshold, exact)
	if err != nil {
		stderr.Fatal(err)
	}

	for _, p := range points {
		fmt.Printf("n = %d, e = %d\n", int(p.Nodes), int(p.Edges))
	}

	if table != "" {
		if err := writeTableFile(table, points); err != nil {
			stderr.Fatal(err)
		}
	}
	if err := edgeCurveChart(points).RenderToFile(out); err != nil {
		stderr.Fatal(err)
	}
}

// EdgeCurve returns, for every n in [1, maxNodes), the number of edges needed
// for an n node graph to be connected with probability threshold. exact uses
// the connectivity recurrence, otherwise the large-n estimate
func EdgeCurve(maxNodes int, threshold float64, exact bool) ([]Point, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}

	var points []Point
	for n := 1; n < maxNodes; n++ {
		var e float64
		if exact {
			edges, err := EdgesToCollapse(n, threshold)
			if err != nil {
				return nil, err
			}
			e = float64(edges)
		} else {
			edges, err := EdgesToCollapseAtInfinity(n, threshold)
			if err != nil {
				return nil, err
			}
			e = edges
		}
		points = append(points, Point{Nodes: float64(n), Edges: e})
	}
	return points, nil
}

// edgeCurveChart is the edge curve in blue against every possible edge in red
func edgeCurveChart(points []Point) plot.Chart {
	curve := plot.Series{Name: "Number of edges to collapse graph", Color: "blue", Thick: true}
	all := plot.Series{Name: "All edges", Color: "red", Thick: true}
	for _, p := range points {
		curve.Points = append(curve.Points, plot.XY{X: p.Nodes, Y: p.Edges})
		all.Points = append(all.Points, plot.XY{X: p.Nodes, Y: Choose(int(p.Nodes), 2)})
	}

	return plot.Chart{
		Title:  "Edges needed to connect a random graph",
		XLabel: "Number of nodes",
		YLabel: "Number of edges",
		Series: []plot.Series{curve, all},
	}
}

// ProbCmd is for `repeats collapse prob`. It prints the probability that
// G(n, p) is connected
func ProbCmd(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	n, _ := flags.GetInt("n")
	p, _ := flags.GetFloat64("p")

	if p < 0 || p > 1 {
		cmd.Help()
		stderr.Fatalf("edge probability must be in [0, 1], got %f", p)
	}

	fmt.Printf("P_n(%d, %f) = %.10f\n", n, p, NewConnectivity(p).Prob(n))
}

// SimulateCmd is for `repeats collapse simulate`. It adds random edges to
// graphs of increasing size until each is one component, and writes the
// "nodes edges" table
func SimulateCmd(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	var opts SimulateOptions
	opts.MaxNodes, _ = flags.GetInt("max-nodes")
	opts.Step, _ = flags.GetInt("step")
	opts.Trials, _ = flags.GetInt("trials")
	opts.Seed, _ = flags.GetUint64("seed")
	opts.Workers, _ = flags.GetInt("workers")
	out, _ := flags.GetString("out")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	points, err := Simulate(ctx, opts)
	if err != nil {
		stderr.Fatal(err)
	}

	if out == "" {
		err = WriteTable(os.Stdout, points)
	} else {
		err = writeTableFile(out, points)
	}
	if err != nil {
		stderr.Fatal(err)
	}
}

// PlotCmd is for `repeats collapse plot`. It fits a line to a simulated
// "nodes edges" table and plots both
func PlotCmd(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	in, _ := flags.GetString("in")
	out, _ := flags.GetString("out")
	offset, _ := flags.GetFloat64("offset")

	if out == "" {
		cmd.Help()
		stderr.Fatal("no --out file for the plot")
	}

	var r io.Reader = os.Stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			stderr.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	points, err := ReadTable(r)
	if err != nil {
		stderr.Fatal(err)
	}

	chart, slope, intercept, err := fitChart(points, offset)
	if err != nil {
		stderr.Fatal(err)
	}
	fmt.Printf("a = %f, b = %f\n", slope, intercept)

	if err := chart.RenderToFile(out); err != nil {
		stderr.Fatal(err)
	}
}

// fitChart fits a line to points, raises its intercept by offset, and
// returns a scatter of the points overlaid with the line
func fitChart(points []Point, offset float64) (chart plot.Chart, slope, intercept float64, err error) {
	slope, intercept, err = FitLine(points)
	if err != nil {
		return chart, 0, 0, err
	}
	intercept += offset

	scatter := plot.Series{Name: "Simulated", Scatter: true}
	fit := plot.Series{Name: fmt.Sprintf("e = %.2fn + %.2f", slope, intercept)}
	for _, p := range points {
		scatter.Points = append(scatter.Points, plot.XY{X: p.Nodes, Y: p.Edges})
		fit.Points = append(fit.Points, plot.XY{X: p.Nodes, Y: slope*p.Nodes + intercept})
	}

	chart = plot.Chart{
		Title:  "Number of random edges to reach 1 connected component",
		XLabel: "Number of nodes in graph",
		YLabel: "Number of edges",
		Series: []plot.Series{scatter, fit},
	}
	return chart, slope, intercept, nil
}

func writeTableFile(filename string, points []Point) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WriteTable(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
