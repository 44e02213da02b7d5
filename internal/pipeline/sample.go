package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Sample is one biological sample: a sequencing run accession, the
// condition it belongs to and the archive its raw reads come from.
// The archive is produced by an out-of-band acquisition step before
// the pipeline runs.
type Sample struct {
	// unique sequencing run accession, eg SRR10676752
	Accession string `csv:"accession"`

	// condition label, eg "treated" or "untreated"
	Condition string `csv:"condition"`

	// path to the .sra archive; empty defaults to
	// <workspace>/sra/<accession>.sra
	Archive string `csv:"archive"`
}

// archivePath resolves the sample's archive location under the
// passed workspace when none was given on the sheet
func (s *Sample) archivePath(workspace string) string {
	if s.Archive != "" {
		return s.Archive
	}
	return filepath.Join(workspace, "sra", s.Accession+".sra")
}

// ReadSampleSheet parses a tab-separated sample sheet with an
// accession/condition/archive header row into Samples. Accessions
// must be unique and every row needs a condition label.
func ReadSampleSheet(path string) ([]*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample sheet %s: %v", path, err)
	}
	defer f.Close()

	// the sheet is tab delimited
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	samples := []*Sample{}
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse sample sheet %s: %v", path, err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("sample sheet %s has no samples", path)
	}

	seen := make(map[string]bool)
	for i, s := range samples {
		if s.Accession == "" {
			return nil, fmt.Errorf("sample sheet row %d has no accession", i+1)
		}
		if s.Condition == "" {
			return nil, fmt.Errorf("sample %s has no condition label", s.Accession)
		}
		if seen[s.Accession] {
			return nil, fmt.Errorf("duplicate accession %s in sample sheet", s.Accession)
		}
		seen[s.Accession] = true
	}

	return samples, nil
}
