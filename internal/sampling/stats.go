package sampling

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrNoStat is returned when a statistic isn't in the aligner's output
var ErrNoStat = errors.New("statistic not found")

// statLine matches "HSPs: 1,234" style lines in the lastz stats file. Text
// after the number is ignored
var statLine = regexp.MustCompile(`^(\S+):\s+([\d,]+)`)

// Stats are the integer statistics reported by the aligner, keyed by name
type Stats map[string]int64

// ParseStats reads the "name: value" lines of a lastz stats file. Any other
// line is ignored
func ParseStats(r io.Reader) (Stats, error) {
	stats := Stats{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := statLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}

		value, err := strconv.ParseInt(strings.ReplaceAll(m[2], ",", ""), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", m[1], err)
		}
		stats[m[1]] = value
	}

	return stats, scanner.Err()
}

// ParseStatsFile parses the stats file at path
func ParseStatsFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseStats(f)
}

// Add sums other into s
func (s Stats) Add(other Stats) {
	for k, v := range other {
		s[k] += v
	}
}

// Get returns the named statistic
func (s Stats) Get(key string) (int64, error) {
	v, ok := s[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoStat, key)
	}
	return v, nil
}

// Keys are the statistics' names, sorted
func (s Stats) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
