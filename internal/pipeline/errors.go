package pipeline

import "fmt"

// stage names as they appear in failure reports
const (
	StageExtract  = "extract"
	StageQC       = "qc"
	StageTrim     = "trim"
	StageIndex    = "index"
	StageAlign    = "align"
	StageQuantify = "quantify"
	StageReformat = "reformat"
	StageCollect  = "collect"
	StageCleanup  = "cleanup"
)

// StageError is a fatal stage-execution failure: an external tool
// invocation returned nonzero, or a stage's own bookkeeping failed.
// It halts the sample's remaining stages and is never retried.
type StageError struct {
	// the sample whose pipeline failed
	Accession string

	// the stage that failed
	Stage string

	// the underlying tool/fs error, stderr excerpt included
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("sample %s failed at %s: %v", e.Accession, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// MissingInputError is raised when a file a stage requires does not
// exist before the stage starts
type MissingInputError struct {
	Accession string
	Stage     string

	// the absent file
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("sample %s is missing an input for %s: %s", e.Accession, e.Stage, e.Path)
}

// ScopeError is a fatal configuration error: the annotation and the
// reference do not overlap, so quantification could only ever
// produce empty count tables
type ScopeError struct {
	// the annotation file checked
	Annotation string

	// where the mismatch surfaced: before alignment, or in a
	// sample's count table
	Detail string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("annotation %s has no features within the reference scope: %s", e.Annotation, e.Detail)
}
