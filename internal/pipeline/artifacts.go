package pipeline

import "github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/tools"

// The structs below are the typed artifacts stages hand to one
// another. Passing paths this way keeps missing or misnamed files a
// contract between stages rather than a runtime surprise at the
// next tool invocation.

// ReadPair is the extract stage's output: one FASTQ per mate
type ReadPair struct {
	Mate1 string
	Mate2 string
}

// TrimSet is the trim stage's output. Reads whose mate was dropped
// below the minimum length move to the unpaired files; the paired
// files keep mate order correspondence.
type TrimSet struct {
	PairedMate1   string
	UnpairedMate1 string
	PairedMate2   string
	UnpairedMate2 string

	// survival accounting parsed from the trimmer
	Stats tools.TrimStats
}

// IndexHandle is an immutable reference to the alignment index
// bundle. It is constructed exactly once per run, before any sample
// aligns, and only ever read after that.
type IndexHandle struct {
	// the file name prefix all index files share
	Prefix string
}

// Alignment is the align stage's output: the SAM artifact, the
// aligner's human-readable summary and the overall rate parsed from
// it
type Alignment struct {
	SAM     string
	Summary string

	// percent of reads aligned
	Rate float64
}

// GeneCountTable is the reformatted two-column (gene id, count)
// table for one sample
type GeneCountTable struct {
	Path string

	// data rows in the table
	Genes int

	// reads attributed to any gene
	Assigned int
}
