package collapse

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// components is a union-find over graph nodes that tracks the number of
// connected components
type components struct {
	parent []int
	rank   []int
	count  int
}

func newComponents(n int) *components {
	c := &components{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range c.parent {
		c.parent[i] = i
	}
	return c
}

func (c *components) find(i int) int {
	for c.parent[i] != i {
		c.parent[i] = c.parent[c.parent[i]]
		i = c.parent[i]
	}
	return i
}

// union joins the components of i and j
func (c *components) union(i, j int) {
	ri, rj := c.find(i), c.find(j)
	if ri == rj {
		return
	}

	switch {
	case c.rank[ri] < c.rank[rj]:
		c.parent[ri] = rj
	case c.rank[ri] > c.rank[rj]:
		c.parent[rj] = ri
	default:
		c.parent[rj] = ri
		c.rank[ri]++
	}
	c.count--
}

// EdgesUntilCollapse adds random edges to n isolated nodes, never repeating
// an edge or adding a self loop, until the graph is a single connected
// component. It returns the number of edges added
func EdgesUntilCollapse(n int, rng *rand.Rand) int {
	if n <= 1 {
		return 0
	}

	comps := newComponents(n)
	edges := make(map[[2]int]struct{})

	nEdges := 0
	for comps.count > 1 {
		i, j := rng.IntN(n), rng.IntN(n)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}
		if _, seen := edges[[2]int{i, j}]; seen {
			continue
		}

		edges[[2]int{i, j}] = struct{}{}
		comps.union(i, j)
		nEdges++
	}
	return nEdges
}

// SimulateOptions are the parameters of a collapse simulation
type SimulateOptions struct {
	// graphs of 0, Step, 2*Step, ... nodes are simulated, below MaxNodes
	MaxNodes int

	// node count increment between samples
	Step int

	// number of random graphs averaged for each node count
	Trials int

	// seed for the random edges. equal seeds give equal results
	Seed uint64

	// max number of node counts simulated concurrently
	Workers int
}

// Simulate runs EdgesUntilCollapse over a range of graph sizes and returns
// the mean edge count for each, ordered by node count
func Simulate(ctx context.Context, opts SimulateOptions) ([]Point, error) {
	if opts.Step < 1 {
		return nil, fmt.Errorf("step must be positive, got %d", opts.Step)
	}
	if opts.Trials < 1 {
		opts.Trials = 1
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}

	var sizes []int
	for n := 0; n < opts.MaxNodes; n += opts.Step {
		sizes = append(sizes, n)
	}
	points := make([]Point, len(sizes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, n := range sizes {
		g.Go(func() error {
			// each size gets its own stream so results don't depend on scheduling
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(n)))

			total := 0
			for trial := 0; trial < opts.Trials; trial++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				total += EdgesUntilCollapse(n, rng)
			}

			points[i] = Point{
				Nodes: float64(n),
				Edges: float64(total) / float64(opts.Trials),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
