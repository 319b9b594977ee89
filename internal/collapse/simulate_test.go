package collapse

import (
	"context"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestEdgesUntilCollapse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name     string
		n        int
		min, max int
	}{
		{"no nodes", 0, 0, 0},
		{"single node", 1, 0, 0},
		{"two nodes", 2, 1, 1},
		// a spanning tree at least, every possible edge at most
		{"ten nodes", 10, 9, 45},
		{"hundred nodes", 100, 99, 4950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				got := EdgesUntilCollapse(tt.n, rng)
				if got < tt.min || got > tt.max {
					t.Fatalf("EdgesUntilCollapse(%d) = %d, want in [%d, %d]", tt.n, got, tt.min, tt.max)
				}
			}
		})
	}
}

func Test_components(t *testing.T) {
	c := newComponents(5)
	c.union(0, 1)
	c.union(1, 0)
	c.union(2, 3)

	if c.count != 3 {
		t.Errorf("count = %d, want 3", c.count)
	}
	if c.find(0) != c.find(1) {
		t.Error("0 and 1 should share a component")
	}
	if c.find(1) == c.find(2) {
		t.Error("1 and 2 should be in different components")
	}

	c.union(1, 3)
	c.union(4, 0)
	if c.count != 1 {
		t.Errorf("count = %d, want 1", c.count)
	}
}

func TestSimulate(t *testing.T) {
	opts := SimulateOptions{
		MaxNodes: 50,
		Step:     10,
		Trials:   3,
		Seed:     42,
		Workers:  2,
	}

	points, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 5 {
		t.Fatalf("Simulate() returned %d points, want 5", len(points))
	}
	for i, p := range points {
		if p.Nodes != float64(i*10) {
			t.Errorf("points[%d].Nodes = %v, want %d", i, p.Nodes, i*10)
		}
	}
	if points[0].Edges != 0 {
		t.Errorf("empty graph needed %v edges", points[0].Edges)
	}

	// same seed, same answer, regardless of the worker count
	opts.Workers = 5
	again, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(points, again) {
		t.Errorf("Simulate() not reproducible:\n%v\n%v", points, again)
	}
}

func TestSimulate_badStep(t *testing.T) {
	if _, err := Simulate(context.Background(), SimulateOptions{MaxNodes: 10}); err == nil {
		t.Error("Simulate() with a zero step should fail")
	}
}

func TestSimulate_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, SimulateOptions{MaxNodes: 100, Step: 10, Trials: 5})
	if err == nil {
		t.Error("Simulate() with a canceled context should fail")
	}
}
