package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd writes the command docs
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Write Markdown docs for every command",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if err := makeDocs(dir); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	docsCmd.Flags().StringP("dir", "d", "./docs", "output directory")

	rootCmd.AddCommand(docsCmd)
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return doc.GenMarkdownTreeCustom(rootCmd, dir, filePrepender, linkHandler)
}

// filePrepender adds the YAML front matter that the just-the-docs theme
// navigates by. Pages only get the keys their position in the command tree
// needs
// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
func filePrepender(filename string) string {
	parts := strings.Split(docName(filename), "_")
	c, _, err := rootCmd.Find(parts[1:])
	if err != nil || c.CommandPath() != strings.Join(parts, " ") {
		return ""
	}

	var b strings.Builder
	b.WriteString("---\nlayout: default\n")
	fmt.Fprintf(&b, "title: %s\n", c.Name())
	if !c.HasParent() {
		b.WriteString("permalink: /\n")
	}
	if n := len(parts); n > 1 {
		fmt.Fprintf(&b, "parent: %s\n", parts[n-2])
		if n > 2 {
			fmt.Fprintf(&b, "grand_parent: %s\n", parts[n-3])
		}
		fmt.Fprintf(&b, "nav_order: %d\n", navOrder(c))
	}
	if c.HasAvailableSubCommands() {
		b.WriteString("has_children: true\n")
	}
	b.WriteString("---\n")
	return b.String()
}

// navOrder is c's position among its documented siblings
func navOrder(c *cobra.Command) int {
	order := 0
	for _, sibling := range c.Parent().Commands() {
		if sibling == c {
			break
		}
		if sibling.IsAvailableCommand() {
			order++
		}
	}
	return order
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	if base := docName(filename); base != "repeats" {
		return base
	}
	return "/"
}

func docName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}
