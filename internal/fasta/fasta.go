// Package fasta is for checking the sequence files handed to the aligner
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a FASTA entry's ID and sequence length. The sequence itself
// isn't kept; genomes don't fit in memory comfortably
type Record struct {
	ID  string
	Len int64
}

// Read scans a multi-FASTA stream, returning each entry's ID and length.
// Whitespace in sequence lines isn't counted
func Read(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, ">") {
			id := strings.TrimSpace(line[1:])
			if fields := strings.Fields(id); len(fields) > 0 {
				id = fields[0]
			}
			records = append(records, Record{ID: id})
			continue
		}

		if len(records) == 0 {
			return nil, fmt.Errorf("line %d: sequence before the first FASTA header", lineNum)
		}
		records[len(records)-1].Len += int64(len(strings.Join(strings.Fields(line), "")))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("no FASTA records")
	}
	return records, nil
}

// ReadFile is Read on the file at path
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FASTA file: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// TotalLen sums the records' lengths
func TotalLen(records []Record) (total int64) {
	for _, r := range records {
		total += r.Len
	}
	return
}
