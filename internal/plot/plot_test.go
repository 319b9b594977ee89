package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChart_Render(t *testing.T) {
	tests := []struct {
		name    string
		chart   Chart
		want    []string
		wantErr bool
	}{
		{
			"lines",
			Chart{
				Title:  "How many edges are necessary?",
				XLabel: "Number of nodes",
				YLabel: "Number of edges",
				Series: []Series{
					{Name: "Number of edges to collapse graph", Points: []XY{{1, 0}, {2, 0.75}}, Color: "blue", Thick: true},
					{Name: "All edges", Points: []XY{{1, 0}, {2, 1}}, Color: "red", Thick: true},
				},
			},
			[]string{"Number of edges to collapse graph", "All edges", "Number of nodes", "blue"},
			false,
		},
		{
			"scatter with fit line",
			Chart{
				Title: "Number of random edges to reach 1 connected component",
				Series: []Series{
					{Name: "simulated", Points: []XY{{10, 21}, {20, 48}}, Scatter: true},
					{Name: "fit", Points: []XY{{10, 3020}, {20, 3045}}},
				},
			},
			[]string{"simulated", "fit", "scatter", "line"},
			false,
		},
		{
			"scatter only",
			Chart{
				Series: []Series{
					{Name: "a", Points: []XY{{1, 1}}, Scatter: true},
					{Name: "b", Points: []XY{{2, 2}}, Scatter: true},
				},
			},
			[]string{`"a"`, `"b"`},
			false,
		},
		{
			"empty",
			Chart{},
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.chart.Render(&buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}

			html := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("Render() output missing %q", w)
				}
			}
		})
	}
}

func TestChart_RenderToFile(t *testing.T) {
	dir := t.TempDir()
	chart := Chart{Series: []Series{{Name: "curve", Points: []XY{{0, 0}, {1, 1}}}}}

	if err := chart.RenderToFile(filepath.Join(dir, "curve")); err != nil {
		t.Fatal(err)
	}

	html, err := os.ReadFile(filepath.Join(dir, "curve.html"))
	if err != nil {
		t.Fatalf("no .html added to the file name: %v", err)
	}
	if !strings.Contains(string(html), "curve") {
		t.Error("rendered file missing series name")
	}

	// keep an explicit extension
	if err := chart.RenderToFile(filepath.Join(dir, "curve.htm")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "curve.htm")); err != nil {
		t.Error(err)
	}
}
