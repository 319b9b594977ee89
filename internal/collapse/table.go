package collapse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Point is a row of a node count vs edge count table
type Point struct {
	Nodes float64
	Edges float64
}

// ReadTable reads whitespace separated "nodes edges" rows. Lines that don't
// have exactly two fields (blank lines, comments, headers) are skipped
func ReadTable(r io.Reader) ([]Point, error) {
	var points []Point

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}

		nodes, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse node count: %w", lineNum, err)
		}
		edges, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse edge count: %w", lineNum, err)
		}

		points = append(points, Point{Nodes: nodes, Edges: edges})
	}

	return points, scanner.Err()
}

// WriteTable writes the points as "nodes edges" rows
func WriteTable(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%s %s\n", formatNum(p.Nodes), formatNum(p.Edges)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FitLine is an ordinary least squares fit of edges = slope*nodes + intercept
func FitLine(points []Point) (slope, intercept float64, err error) {
	if len(points) < 2 {
		return 0, 0, errors.New("at least two points are needed to fit a line")
	}

	n := float64(len(points))
	var meanX, meanY float64
	for _, p := range points {
		meanX += p.Nodes
		meanY += p.Edges
	}
	meanX /= n
	meanY /= n

	var sxx, sxy float64
	for _, p := range points {
		dx := p.Nodes - meanX
		sxx += dx * dx
		sxy += dx * (p.Edges - meanY)
	}
	if sxx == 0 {
		return 0, 0, errors.New("cannot fit a line to points that all share one node count")
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept, nil
}
