package sampling

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/adderan/cactusRepeats/internal/plot"
)

// writeTable writes one tab-separated row per threshold with the requested
// statistics, after a "#threshold<TAB>column..." header
func writeTable(w io.Writer, columns []string, results []Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#threshold\t%s\n", strings.Join(columns, "\t"))
	for _, r := range results {
		fmt.Fprintf(bw, "%d", r.Threshold)
		for _, col := range columns {
			v, err := r.Stats.Get(col)
			if err != nil {
				return fmt.Errorf("threshold %d: %w", r.Threshold, err)
			}
			fmt.Fprintf(bw, "\t%d", v)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// manifest records what a run was asked to do and everything lastz reported
type manifest struct {
	Run            string           `yaml:"run"`
	Time           string           `yaml:"time"`
	Sequences      []string         `yaml:"sequences"`
	ChunkSize      int              `yaml:"chunkSize"`
	OverlapSize    int              `yaml:"overlapSize"`
	CountThreshold int              `yaml:"countThreshold"`
	Output         string           `yaml:"output"`
	Results        []manifestResult `yaml:"results"`
}

type manifestResult struct {
	Threshold int              `yaml:"threshold"`
	Stats     map[string]int64 `yaml:"stats"`
}

// manifestPath swaps the output table's extension for .manifest.yaml
func manifestPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".manifest.yaml"
}

func writeManifest(path string, opts Options, results []Result) error {
	m := manifest{
		Run:            opts.RunID,
		Time:           time.Now().Format("2006/01/02 15:04:05"),
		Sequences:      opts.Sequences,
		ChunkSize:      opts.ChunkSize,
		OverlapSize:    opts.OverlapSize,
		CountThreshold: opts.CountThreshold,
		Output:         opts.OutputFile,
	}
	for _, r := range results {
		m.Results = append(m.Results, manifestResult{Threshold: r.Threshold, Stats: r.Stats})
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal the run manifest: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write the run manifest: %w", err)
	}
	return nil
}

// plotResults draws each column against the sampling threshold
func plotResults(filename string, columns []string, results []Result) error {
	chart := plot.Chart{
		Title:  "Seed sampling threshold vs alignment statistics",
		XLabel: "sampleSeedThreshold",
		YLabel: strings.Join(columns, ", "),
	}

	for _, col := range columns {
		s := plot.Series{Name: col, Thick: true}
		for _, r := range results {
			v, err := r.Stats.Get(col)
			if err != nil {
				return err
			}
			s.Points = append(s.Points, plot.XY{X: float64(r.Threshold), Y: float64(v)})
		}
		chart.Series = append(chart.Series, s)
	}

	return chart.RenderToFile(filename)
}
