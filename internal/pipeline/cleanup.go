package pipeline

import (
	"fmt"
	"os"
)

// cleanup deletes the sample's bulky intermediates (the SAM artifact
// and the unpaired trim outputs) once its count table exists. The
// precondition is checked on disk: if the table is absent nothing is
// deleted, so a failed sample keeps its intermediates for a rerun.
func (p *Pipeline) cleanup(s *Sample, trim TrimSet, aln Alignment, table GeneCountTable) error {
	if _, err := os.Stat(table.Path); err != nil {
		return &StageError{
			Accession: s.Accession,
			Stage:     StageCleanup,
			Err:       fmt.Errorf("refusing to delete intermediates, count table %s is absent: %v", table.Path, err),
		}
	}

	for _, path := range []string{aln.SAM, trim.UnpairedMate1, trim.UnpairedMate2} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &StageError{Accession: s.Accession, Stage: StageCleanup, Err: err}
		}
	}

	return nil
}
