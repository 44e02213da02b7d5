package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/gocarina/gocsv"
)

// reliable variance estimation needs at least this many replicates
// per condition; fewer and the run is flagged invalid for
// differential expression
const minReplicates = 3

// ResultEntry is one finished sample's contribution to the run:
// where its final artifacts landed and its summary metrics
type ResultEntry struct {
	Accession string `csv:"accession" json:"accession"`
	Condition string `csv:"condition" json:"condition"`

	// read pairs in and surviving the trim stage
	InputPairs     int     `csv:"input_pairs" json:"inputPairs"`
	SurvivingPairs int     `csv:"surviving_pairs" json:"survivingPairs"`
	SurvivalPct    float64 `csv:"survival_pct" json:"survivalPct"`

	// percent of read pairs aligned
	AlignmentRate float64 `csv:"alignment_rate" json:"alignmentRate"`

	// reads attributed to genes and genes in the table
	AssignedReads int `csv:"assigned_reads" json:"assignedReads"`
	Genes         int `csv:"genes" json:"genes"`

	// condition-qualified copies in the results directory
	CountTable   string `csv:"count_table" json:"countTable"`
	AlignSummary string `csv:"align_summary" json:"alignSummary"`
}

// Failure records a sample whose pipeline halted and at which stage
type Failure struct {
	Accession string `json:"accession"`
	Stage     string `json:"stage"`
	Message   string `json:"message"`
}

// ResultSet is everything a run produced: per-sample entries,
// per-sample failures and the run-level bookkeeping persisted to the
// summary and manifest files
type ResultSet struct {
	// unique run identifier
	RunID string `json:"runId"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	Entries  []*ResultEntry `json:"entries"`
	Failures []Failure      `json:"failures"`

	// false when any condition has fewer than minReplicates samples
	StatisticallyValid bool `json:"statisticallyValid"`
}

// manifest is the JSON document written alongside the results,
// pairing the ResultSet with the settings that produced it
type manifest struct {
	ResultSet
	Config config.Config `json:"config"`
}

// newFailure maps a sample error onto its failure record, keeping
// the stage name when the error carries one
func newFailure(s *Sample, err error) *Failure {
	f := &Failure{
		Accession: s.Accession,
		Message:   err.Error(),
	}

	switch e := err.(type) {
	case *StageError:
		f.Stage = e.Stage
	case *MissingInputError:
		f.Stage = e.Stage
	case *ScopeError:
		f.Stage = StageReformat
	}

	return f
}

// collect copies the sample's final artifacts into the shared
// results directory under condition-qualified names, so two samples
// can never collide there
func (p *Pipeline) collect(s *Sample, trim TrimSet, aln Alignment, table GeneCountTable) (*ResultEntry, error) {
	entry := &ResultEntry{
		Accession:      s.Accession,
		Condition:      s.Condition,
		InputPairs:     trim.Stats.InputPairs,
		SurvivingPairs: trim.Stats.SurvivingPairs,
		SurvivalPct:    trim.Stats.SurvivalPct,
		AlignmentRate:  aln.Rate,
		AssignedReads:  table.Assigned,
		Genes:          table.Genes,
	}

	prefix := fmt.Sprintf("%s_%s", s.Condition, s.Accession)
	entry.CountTable = filepath.Join(p.OutDir, prefix+".counts.tsv")
	entry.AlignSummary = filepath.Join(p.OutDir, prefix+".align_summary.txt")

	if err := copyFile(table.Path, entry.CountTable); err != nil {
		return nil, &StageError{Accession: s.Accession, Stage: StageCollect, Err: err}
	}
	if err := copyFile(aln.Summary, entry.AlignSummary); err != nil {
		return nil, &StageError{Accession: s.Accession, Stage: StageCollect, Err: err}
	}

	return entry, nil
}

// replicatesValid reports whether every condition present has at
// least minReplicates finished samples
func replicatesValid(entries []*ResultEntry) bool {
	if len(entries) == 0 {
		return false
	}

	perCondition := make(map[string]int)
	for _, e := range entries {
		perCondition[e.Condition]++
	}
	for _, n := range perCondition {
		if n < minReplicates {
			return false
		}
	}
	return true
}

// writeSummary writes one tab-separated metrics row per finished
// sample to run_summary.tsv in the results directory
func (p *Pipeline) writeSummary(set *ResultSet) error {
	f, err := os.Create(filepath.Join(p.OutDir, "run_summary.tsv"))
	if err != nil {
		return fmt.Errorf("failed to create the run summary: %v", err)
	}
	defer f.Close()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		return gocsv.NewSafeCSVWriter(w)
	})

	if err := gocsv.MarshalFile(&set.Entries, f); err != nil {
		return fmt.Errorf("failed to write the run summary: %v", err)
	}
	return nil
}

// writeManifest persists the run's outcome and the settings that
// produced it as run_manifest.json
func (p *Pipeline) writeManifest(set *ResultSet) error {
	m := manifest{
		ResultSet: *set,
		Config:    p.Conf,
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize the run manifest: %v", err)
	}

	path := filepath.Join(p.OutDir, "run_manifest.json")
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write the run manifest: %v", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", src, err)
	}
	if err := os.WriteFile(dst, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", dst, err)
	}
	return nil
}
