// Package samstat verifies alignment artifacts after the align
// stage: the SAM header must only reference sequences within the
// run's reference scope, and the record tallies back the alignment
// rate the aligner reported.
package samstat

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/sam"
)

// Stats are primary-record tallies for one SAM artifact
type Stats struct {
	// primary records in the file
	Total int

	// primary records with the unmapped flag clear
	Mapped int

	// primary records flagged as properly paired
	ProperlyPaired int
}

// Rate is the mapped fraction as a percentage
func (s Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Mapped) / float64(s.Total)
}

// Verify opens a SAM artifact, checks every header reference is
// within scope and tallies its primary records. An empty scope map
// skips the header check.
func Verify(path string, scope map[string]bool) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open alignment %s: %v", path, err)
	}
	defer f.Close()

	r, err := sam.NewReader(f)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read SAM header of %s: %v", path, err)
	}

	if len(scope) > 0 {
		for _, ref := range r.Header().Refs() {
			if !scope[ref.Name()] {
				return Stats{}, fmt.Errorf("alignment %s references %s, outside the reference scope", path, ref.Name())
			}
		}
	}

	var stats Stats
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, fmt.Errorf("failed to read SAM record in %s: %v", path, err)
		}

		// secondary and supplementary alignments would double
		// count their read
		if rec.Flags&sam.Secondary != 0 || rec.Flags&sam.Supplementary != 0 {
			continue
		}

		stats.Total++
		if rec.Flags&sam.Unmapped == 0 {
			stats.Mapped++
		}
		if rec.Flags&sam.ProperPair != 0 {
			stats.ProperlyPaired++
		}
	}

	return stats, nil
}
