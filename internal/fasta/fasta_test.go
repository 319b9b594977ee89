package fasta

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Record
		wantErr bool
	}{
		{
			"multi-FASTA",
			">chr1 human chromosome 1\nACGTacgtNN\nACGT\n\n>chr2\nAC GT\n",
			[]Record{{"chr1", 14}, {"chr2", 4}},
			false,
		},
		{
			"empty record",
			">empty\n>full\nA\n",
			[]Record{{"empty", 0}, {"full", 1}},
			false,
		},
		{
			"comment lines",
			"; old style comment\n>seq\nAAA\n",
			[]Record{{"seq", 3}},
			false,
		},
		{
			"no header",
			"ACGT\n>seq\nA\n",
			nil,
			true,
		},
		{
			"empty file",
			"",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqs.fa")
	if err := os.WriteFile(path, []byte(">a\nACGT\n>b\nACGTACGT\n"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := TotalLen(records); got != 12 {
		t.Errorf("TotalLen() = %d, want 12", got)
	}

	if _, err := ReadFile(path + ".missing"); err == nil {
		t.Error("ReadFile() of a missing file should fail")
	}
}
