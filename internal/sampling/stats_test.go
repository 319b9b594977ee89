package sampling

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseStats(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Stats
		wantErr bool
	}{
		{
			"lastz stats",
			`Lastz stats
  seeds: 1,234,567
  HSPs: 42
  gapped extensions: 12
  alignments: 7
`,
			Stats{"seeds": 1234567, "HSPs": 42, "alignments": 7},
			false,
		},
		{
			"annotated values",
			"HSPs: 42 (3 discarded)\nseeds: 10\nratio: 1,200 per Mbp\n",
			Stats{"HSPs": 42, "seeds": 10, "ratio": 1200},
			false,
		},
		{
			"junk only",
			"nothing to see here\n\n",
			Stats{},
			false,
		},
		{
			"overflow",
			"HSPs: 99999999999999999999999\n",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStats(strings.NewReader(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStats() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	total := Stats{}
	total.Add(Stats{"HSPs": 3, "seeds": 10})
	total.Add(Stats{"HSPs": 4})

	if v, err := total.Get("HSPs"); err != nil || v != 7 {
		t.Errorf("Get(HSPs) = %d, %v, want 7", v, err)
	}
	if v, err := total.Get("seeds"); err != nil || v != 10 {
		t.Errorf("Get(seeds) = %d, %v, want 10", v, err)
	}
	if _, err := total.Get("alignments"); !errors.Is(err, ErrNoStat) {
		t.Errorf("Get(alignments) error = %v, want ErrNoStat", err)
	}
	if got, want := total.Keys(), []string{"HSPs", "seeds"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
