package collapse

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ErrThreshold is returned for a connectivity threshold outside of (0, 1]
var ErrThreshold = errors.New("threshold must be in (0, 1]")

// Connectivity computes the probability that an Erdos-Renyi graph G(n, p)
// is connected, for a fixed edge probability p.
//
// P(1) = 1, and for n > 1
//
//	P(n) = 1 - sum_{k=1}^{n-1} C(n-1, k-1) * P(k) * (1-p)^(k(n-k))
//
// each term being the probability that the component containing node 1 has
// exactly k nodes. P(k) is memoized, so a Connectivity is only valid for one p.
//
// The subtraction loses relative precision whenever P(k) is small and the
// loss compounds through the memo, so the recurrence is evaluated with
// big.Floats whose precision covers the error growth up to n.
type Connectivity struct {
	p    float64
	prec uint
	memo []*big.Float // memo[k] is P(k)
}

// NewConnectivity returns a Connectivity for the edge probability p
func NewConnectivity(p float64) *Connectivity {
	return &Connectivity{p: p}
}

// P returns the edge probability
func (c *Connectivity) P() float64 {
	return c.p
}

// Prob returns the probability that G(n, p) is connected
func (c *Connectivity) Prob(n int) float64 {
	if n <= 1 {
		return 1.0
	}
	if c.p <= 0 {
		return 0.0
	}
	if c.p >= 1 {
		return 1.0
	}

	if prec := precisionFor(n, c.p); prec > c.prec {
		c.prec = prec
		c.memo = nil
	}
	c.fill(n)

	f, _ := c.memo[n].Float64()
	return clamp(f)
}

// fill extends the memo through P(n)
func (c *Connectivity) fill(n int) {
	if len(c.memo) == 0 {
		c.memo = []*big.Float{c.float(0), c.float(1)}
	}

	q := c.float(1)
	q.Sub(q, c.float(0).SetFloat64(c.p))

	for m := len(c.memo); m <= n; m++ {
		c.memo = append(c.memo, c.prob(m, q))
	}
}

// prob evaluates the recurrence for m, with P(1)..P(m-1) in the memo
func (c *Connectivity) prob(m int, q *big.Float) *big.Float {
	sum := c.float(0)
	binom := c.float(1) // C(m-1, k-1)
	term := c.float(0)

	for k := 1; k < m; k++ {
		if k > 1 {
			binom.Mul(binom, c.float(int64(m-k+1)))
			binom.Quo(binom, c.float(int64(k-1)))
		}

		term.Mul(binom, c.memo[k])
		term.Mul(term, c.pow(q, k*(m-k)))
		sum.Add(sum, term)
	}

	pm := c.float(1)
	pm.Sub(pm, sum)
	if pm.Sign() < 0 {
		pm.SetInt64(0)
	}
	return pm
}

// pow is x^e by squaring
func (c *Connectivity) pow(x *big.Float, e int) *big.Float {
	result := c.float(1)
	base := c.float(0).Set(x)
	for e > 0 {
		if e&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		e >>= 1
	}
	return result
}

func (c *Connectivity) float(i int64) *big.Float {
	return new(big.Float).SetPrec(c.prec).SetInt64(i)
}

// precisionFor returns the mantissa bits needed to get P(n) to float64
// accuracy. The absolute error of P(m) is bounded by A(m) units of rounding,
// where A(1) = 1 and A(m) = 1 + sum_k C(m-1, k-1) (1-p)^(k(m-k)) A(k)
func precisionFor(n int, p float64) uint {
	logQ := math.Log1p(-p)

	logA := make([]float64, n+1) // natural logs
	terms := make([]float64, 0, n)
	for m := 2; m <= n; m++ {
		terms = append(terms[:0], 0) // the rounding of P(m) itself
		for k := 1; k < m; k++ {
			terms = append(terms, logChoose(m-1, k-1)+float64(k*(m-k))*logQ+logA[k])
		}
		logA[m] = logSumExp(terms)
	}

	bits := 64 + 64 + uint(math.Ceil(logA[n]/math.Ln2))
	return (bits + 63) / 64 * 64
}

func logSumExp(xs []float64) float64 {
	hi := math.Inf(-1)
	for _, x := range xs {
		if x > hi {
			hi = x
		}
	}
	if math.IsInf(hi, -1) {
		return hi
	}

	sum := 0.0
	for _, x := range xs {
		sum += math.Exp(x - hi)
	}
	return hi + math.Log(sum)
}

// EdgesToCollapse returns the fewest edges that, placed uniformly at random
// among the C(n, 2) possible ones, make an n node graph connected with
// probability at least threshold
func EdgesToCollapse(n int, threshold float64) (int, error) {
	if err := checkThreshold(threshold); err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, nil
	}

	possible := Choose(n, 2)
	maxEdges := int(possible)

	// P(n) is non-decreasing in the edge count and is 1 once every edge is in
	return sort.Search(maxEdges+1, func(e int) bool {
		return NewConnectivity(float64(e)/possible).Prob(n) >= threshold
	}), nil
}

// EdgesToCollapseAtInfinity is the large-n estimate of EdgesToCollapse.
// It uses P(n) ~ 1 - n(1-p)^(n-1), one minus the expected number of
// isolated nodes
func EdgesToCollapseAtInfinity(n int, threshold float64) (float64, error) {
	if err := checkThreshold(threshold); err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, nil
	}

	q := math.Pow((1.0-threshold)/float64(n), 1.0/(float64(n)-1.0))
	p := 1.0 - q
	return p * Choose(n, 2), nil
}

// Choose is the binomial coefficient C(n, k) as a float64
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return math.Round(math.Exp(logChoose(n, k)))
}

func logChoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}

func checkThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}
	return nil
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
