package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_commandTree(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"collapse", "exact"}, "exact"},
		{[]string{"collapse", "prob"}, "prob"},
		{[]string{"collapse", "simulate"}, "simulate"},
		{[]string{"collapse", "plot"}, "plot"},
		{[]string{"sampling", "thresholds"}, "thresholds"},
		{[]string{"docs"}, "docs"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			c, _, err := rootCmd.Find(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if c.Name() != tt.want {
				t.Errorf("Find(%v) = %s, want %s", tt.args, c.Name(), tt.want)
			}
			if c.Run == nil {
				t.Errorf("%s has no Run", c.Name())
			}
		})
	}
}

func Test_makeDocs(t *testing.T) {
	dir := t.TempDir()
	if err := makeDocs(dir); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		file    string
		want    []string
		notWant []string
	}{
		{
			"repeats.md",
			[]string{"title: repeats\n", "permalink: /\n", "has_children: true\n"},
			[]string{"parent:", "nav_order:"},
		},
		{
			"repeats_collapse.md",
			[]string{"parent: repeats\n", "nav_order: 0\n", "has_children: true\n"},
			[]string{"grand_parent:", "permalink:"},
		},
		{
			"repeats_sampling_thresholds.md",
			[]string{"title: thresholds\n", "parent: sampling\n", "grand_parent: repeats\n"},
			[]string{"has_children:", "permalink:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			contents, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			page := string(contents)
			if !strings.HasPrefix(page, "---\nlayout: default\n") {
				t.Fatalf("%s is missing its front matter:\n%s", tt.file, page)
			}
			frontMatter := page[:strings.Index(page[3:], "---")+3]
			for _, w := range tt.want {
				if !strings.Contains(frontMatter, w) {
					t.Errorf("%s front matter is missing %q:\n%s", tt.file, w, frontMatter)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(frontMatter, w) {
					t.Errorf("%s front matter has %q:\n%s", tt.file, w, frontMatter)
				}
			}
		})
	}
}

func Test_linkHandler(t *testing.T) {
	if got := linkHandler("repeats.md"); got != "/" {
		t.Errorf("linkHandler(repeats.md) = %q", got)
	}
	if got := linkHandler("repeats_collapse_exact.md"); got != "repeats_collapse_exact" {
		t.Errorf("linkHandler(repeats_collapse_exact.md) = %q", got)
	}
}
