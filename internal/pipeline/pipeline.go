// Package pipeline sequences the per-sample RNA-Seq stages (extract,
// QC, trim, align, quantify, reformat) over external tools and
// collects the resulting gene count tables into a shared results
// directory.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/gtf"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/tools"
	"github.com/google/uuid"
)

// Pipeline orchestrates one run over a set of samples. The exported
// fields are set by the caller before Run; the unexported ones are
// filled by prepare and immutable afterwards.
type Pipeline struct {
	// tool, trim, align and quant settings
	Conf config.Config

	// reference sequence FASTA
	Reference string

	// GTF feature annotation
	Annotation string

	// per-sample working directories live under here
	Workspace string

	// shared results directory
	OutDir string

	// parallel sample workers; 1 means strictly sequential
	Procs int

	// skip the final deletion of SAM and unpaired-read intermediates
	KeepIntermediates bool

	// reference sequence names, the run's scope
	scope map[string]bool

	// gene ids the annotation defines within scope, in file order
	genes []string

	// the shared alignment index, built exactly once
	index IndexHandle
}

// Run executes the full pipeline: a one-time prepare step (scope
// check and index build), then every sample's stage sequence, then
// collection of results, the run summary and the run manifest. A
// sample's failure halts that sample only; sibling samples proceed.
func (p *Pipeline) Run(ctx context.Context, samples []*Sample) (*ResultSet, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to process")
	}
	seen := make(map[string]bool)
	for _, s := range samples {
		if seen[s.Accession] {
			return nil, fmt.Errorf("duplicate accession %s", s.Accession)
		}
		seen[s.Accession] = true
	}

	set := &ResultSet{
		RunID:   uuid.New().String(),
		Started: time.Now(),
	}
	log.Printf("run %s: %d samples", set.RunID, len(samples))

	// the index build and scope check are a one-time barrier: no
	// sample starts until both succeed
	if err := p.Prepare(ctx); err != nil {
		return nil, err
	}

	procs := p.Procs
	if procs < 1 {
		procs = 1
	}

	jobs := make(chan *Sample)
	go func() {
		defer close(jobs)
		for _, s := range samples {
			jobs <- s
		}
	}()

	type outcome struct {
		entry *ResultEntry
		fail  *Failure
	}

	results := make(chan outcome)
	for i := 0; i < procs; i++ {
		go func() {
			for s := range jobs {
				entry, err := p.runSample(ctx, s)
				if err != nil {
					log.Printf("run %s: %v", set.RunID, err)
					results <- outcome{fail: newFailure(s, err)}
					continue
				}
				results <- outcome{entry: entry}
			}
		}()
	}

	for range samples {
		o := <-results
		if o.fail != nil {
			set.Failures = append(set.Failures, *o.fail)
			continue
		}
		set.Entries = append(set.Entries, o.entry)
	}

	// deterministic ordering regardless of worker interleaving
	sort.Slice(set.Entries, func(i, j int) bool {
		return set.Entries[i].Accession < set.Entries[j].Accession
	})
	sort.Slice(set.Failures, func(i, j int) bool {
		return set.Failures[i].Accession < set.Failures[j].Accession
	})

	set.Finished = time.Now()
	set.StatisticallyValid = replicatesValid(set.Entries)
	if !set.StatisticallyValid {
		log.Printf("run %s: warning: fewer than %d replicates per condition, counts are not statistically valid for differential expression", set.RunID, minReplicates)
	}

	if err := p.writeSummary(set); err != nil {
		return nil, err
	}
	if err := p.writeManifest(set); err != nil {
		return nil, err
	}

	log.Printf("run %s: finished, %d succeeded, %d failed",
		set.RunID, len(set.Entries), len(set.Failures))
	return set, nil
}

// Prepare validates the reference/annotation scope and builds the
// shared alignment index. It is idempotent: an index already built
// under this workspace is reused, never rebuilt.
func (p *Pipeline) Prepare(ctx context.Context) error {
	if err := p.LoadScope(); err != nil {
		return err
	}

	index, err := p.buildIndex(ctx)
	if err != nil {
		return err
	}
	p.index = index

	log.Printf("prepared: %d genes in scope, index at %s", len(p.genes), index.Prefix)
	return nil
}

// LoadScope reads the reference's sequence names and the
// annotation's gene inventory restricted to them. A zero-gene
// overlap is a fatal configuration error and surfaces here, before
// any alignment, rather than as empty count tables downstream.
func (p *Pipeline) LoadScope() error {
	if _, err := os.Stat(p.Reference); err != nil {
		return fmt.Errorf("failed to find the reference sequence: %v", err)
	}
	if _, err := os.Stat(p.Annotation); err != nil {
		return fmt.Errorf("failed to find the annotation: %v", err)
	}
	if err := os.MkdirAll(p.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create the results directory: %v", err)
	}

	scope, err := fastaSeqnames(p.Reference)
	if err != nil {
		return err
	}
	p.scope = scope

	genes, err := gtf.Genes(p.Annotation, p.Conf.Quant.FeatureType, p.Conf.Quant.GroupAttr, scope)
	if err != nil {
		return err
	}
	if len(genes) == 0 {
		return &ScopeError{
			Annotation: p.Annotation,
			Detail: fmt.Sprintf("no %s features on %s",
				p.Conf.Quant.FeatureType, strings.Join(scopeNames(scope), ",")),
		}
	}
	p.genes = genes

	return nil
}

// Index returns the shared index handle. Valid after Prepare.
func (p *Pipeline) Index() IndexHandle { return p.index }

// buildIndex constructs the alignment index once under the
// workspace. A bundle already on disk for this reference is reused.
func (p *Pipeline) buildIndex(ctx context.Context) (IndexHandle, error) {
	base := filepath.Base(p.Reference)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	indexDir := filepath.Join(p.Workspace, "index")
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return IndexHandle{}, fmt.Errorf("failed to create the index directory: %v", err)
	}
	prefix := filepath.Join(indexDir, base)

	// hisat2-build writes <prefix>.1.ht2 first
	if _, err := os.Stat(prefix + ".1.ht2"); err == nil {
		log.Printf("reusing index at %s", prefix)
		return IndexHandle{Prefix: prefix}, nil
	}

	log.Printf("building index at %s", prefix)
	if err := tools.BuildIndex(ctx, p.Conf.Tools.Hisat2Build, p.Reference, prefix); err != nil {
		return IndexHandle{}, fmt.Errorf("failed to build the reference index: %v", err)
	}

	return IndexHandle{Prefix: prefix}, nil
}

// sampleDir is the sample's private working directory; one per
// sample so cleanup can never race a sibling
func (p *Pipeline) sampleDir(s *Sample) string {
	return filepath.Join(p.Workspace, s.Accession)
}

func scopeNames(scope map[string]bool) []string {
	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
