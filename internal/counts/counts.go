// Package counts parses featureCounts raw output tables and writes
// the two-column (gene id, count) tables downstream differential
// expression tools consume.
package counts

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Table is one sample's gene counts in annotation order
type Table struct {
	// gene identifiers, unique, in the order the counter emitted them
	GeneIDs []string

	// raw read (or fragment) counts, indexed like GeneIDs
	Counts []int
}

// Read parses a featureCounts raw table: '#' program lines, then a
// header row starting with "Geneid", then one row per gene with
// coordinate metadata columns between the id and the count. The
// count is always the last column.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open count table %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = '\t'
	r.Comment = '#'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("count table %s is empty", path)
		}
		return nil, err
	}
	if header[0] != "Geneid" {
		return nil, fmt.Errorf(`unexpected first column name in %s: %q != "Geneid"`, path, header[0])
	}

	t := &Table{}
	seen := make(map[string]bool)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("count table row for %q has no count column", row[0])
		}

		id := row[0]
		if seen[id] {
			return nil, fmt.Errorf("duplicate gene id %q in %s", id, path)
		}
		seen[id] = true

		count, err := strconv.Atoi(row[len(row)-1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse count for %q: %v", id, err)
		}

		t.GeneIDs = append(t.GeneIDs, id)
		t.Counts = append(t.Counts, count)
	}

	return t, nil
}

// Len is the number of genes in the table
func (t *Table) Len() int {
	return len(t.GeneIDs)
}

// Assigned is the total number of reads attributed to any gene
func (t *Table) Assigned() (total int) {
	for _, c := range t.Counts {
		total += c
	}
	return total
}

// Write materializes the table as a two-column tab-separated file,
// one (gene id, count) row per gene, no header
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}

	w := bufio.NewWriter(f)
	for i, id := range t.GeneIDs {
		fmt.Fprintf(w, "%s\t%d\n", id, t.Counts[i])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return f.Close()
}
