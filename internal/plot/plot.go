// Package plot renders the experiments' curves and scatter plots to
// self-contained go-echarts HTML pages.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// XY is a single point on a chart
type XY struct {
	X, Y float64
}

// Series is one named set of points
type Series struct {
	Name   string
	Points []XY

	// Color is any CSS color. Empty lets echarts pick
	Color string

	// Thick draws a heavier line, ignored for scatter series
	Thick bool

	// Scatter draws the points unconnected
	Scatter bool
}

// Chart is a set of series sharing numeric x and y axes
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Render writes the chart to w as an HTML page
func (c Chart) Render(w io.Writer) error {
	if len(c.Series) == 0 {
		return errors.New("no series to plot")
	}

	var lines *charts.Line
	var scatters []*charts.Scatter
	for _, s := range c.Series {
		if s.Scatter {
			scatters = append(scatters, c.scatter(s))
			continue
		}
		if lines == nil {
			lines = charts.NewLine()
			lines.SetGlobalOptions(c.globalOpts()...)
		}
		lines.AddSeries(s.Name, lineData(s.Points), lineOpts(s)...)
	}

	// overlaps render onto the first chart, so the base is the line chart
	// when there is one
	page := components.NewPage()
	page.PageTitle = c.Title
	switch {
	case lines != nil:
		for _, sc := range scatters {
			lines.Overlap(sc)
		}
		page.AddCharts(lines)
	default:
		base := scatters[0]
		base.SetGlobalOptions(c.globalOpts()...)
		for _, sc := range scatters[1:] {
			base.Overlap(sc)
		}
		page.AddCharts(base)
	}

	return page.Render(w)
}

// RenderToFile writes the chart to filename, adding a ".html" extension when
// the name has none
func (c Chart) RenderToFile(filename string) error {
	if filepath.Ext(filename) == "" {
		filename += ".html"
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}

	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", filename, err)
	}
	return f.Close()
}

func (c Chart) globalOpts() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: c.Title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: c.XLabel,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: c.YLabel,
			Type: "value",
		}),
	}
}

func (c Chart) scatter(s Series) *charts.Scatter {
	sc := charts.NewScatter()

	data := make([]opts.ScatterData, 0, len(s.Points))
	for _, p := range s.Points {
		data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}})
	}

	var seriesOpts []charts.SeriesOpts
	if s.Color != "" {
		seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	sc.AddSeries(s.Name, data, seriesOpts...)
	return sc
}

func lineData(points []XY) []opts.LineData {
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.LineData{Value: []float64{p.X, p.Y}})
	}
	return data
}

func lineOpts(s Series) []charts.SeriesOpts {
	style := opts.LineStyle{Color: s.Color, Width: 2}
	if s.Thick {
		style.Width = 4
	}
	return []charts.SeriesOpts{
		charts.WithLineStyleOpts(style),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
	}
}
