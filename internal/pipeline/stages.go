package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/counts"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/samstat"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/tools"
)

// alignment rates from the summary file and the SAM tally may
// disagree by this many percentage points before a warning
const rateTolerance = 5.0

// runSample executes every stage for one sample in strict order.
// The first failing stage halts the sample; QC failures only warn.
func (p *Pipeline) runSample(ctx context.Context, s *Sample) (*ResultEntry, error) {
	log.Printf("%s: starting", s.Accession)

	pair, err := p.Extract(ctx, s)
	if err != nil {
		return nil, err
	}

	p.QCReport(ctx, s, "qc_raw", pair.Mate1, pair.Mate2)

	trim, err := p.TrimReads(ctx, s, pair)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: %d of %d read pairs survived trimming (%.2f%%)",
		s.Accession, trim.Stats.SurvivingPairs, trim.Stats.InputPairs, trim.Stats.SurvivalPct)

	p.QCReport(ctx, s, "qc_trimmed", trim.PairedMate1, trim.PairedMate2)

	aln, err := p.AlignReads(ctx, s, trim, p.index)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: %.2f%% overall alignment rate", s.Accession, aln.Rate)

	raw, err := p.Quantify(ctx, s, aln)
	if err != nil {
		return nil, err
	}

	table, err := p.Reformat(s, raw)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: %d reads assigned across %d genes", s.Accession, table.Assigned, table.Genes)

	entry, err := p.collect(s, trim, aln, table)
	if err != nil {
		return nil, err
	}

	if !p.KeepIntermediates {
		if err := p.cleanup(s, trim, aln, table); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// Extract converts the sample's archive into paired FASTQ files in
// the sample directory. The archive must already exist: acquisition
// is out of band.
func (p *Pipeline) Extract(ctx context.Context, s *Sample) (ReadPair, error) {
	archive := s.archivePath(p.Workspace)
	if _, err := os.Stat(archive); err != nil {
		return ReadPair{}, &MissingInputError{Accession: s.Accession, Stage: StageExtract, Path: archive}
	}

	dir := p.sampleDir(s)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ReadPair{}, &StageError{Accession: s.Accession, Stage: StageExtract, Err: err}
	}

	if err := tools.Extract(ctx, p.Conf.Tools.FasterqDump, archive, dir); err != nil {
		return ReadPair{}, &StageError{Accession: s.Accession, Stage: StageExtract, Err: err}
	}

	pair := ReadPair{
		Mate1: filepath.Join(dir, s.Accession+"_1.fastq"),
		Mate2: filepath.Join(dir, s.Accession+"_2.fastq"),
	}
	for _, mate := range []string{pair.Mate1, pair.Mate2} {
		if _, err := os.Stat(mate); err != nil {
			return ReadPair{}, &StageError{
				Accession: s.Accession,
				Stage:     StageExtract,
				Err:       fmt.Errorf("extraction produced no %s, was the run paired-end?", filepath.Base(mate)),
			}
		}
	}

	return pair, nil
}

// QCReport runs the quality reporter over the passed FASTQ files.
// QC is observational: a failure logs a warning and never halts the
// sample.
func (p *Pipeline) QCReport(ctx context.Context, s *Sample, subdir string, fastqs ...string) {
	dir := filepath.Join(p.sampleDir(s), subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("%s: warning: failed to create the QC directory: %v", s.Accession, err)
		return
	}

	if err := tools.FastQC(ctx, p.Conf.Tools.FastQC, dir, fastqs...); err != nil {
		log.Printf("%s: warning: QC reporting failed: %v", s.Accession, err)
	}
}

// TrimReads clips adapters (the stock list plus a generated
// sample-specific synthetic adapter file) and applies the quality
// trimming rules, producing paired and unpaired outputs per mate
func (p *Pipeline) TrimReads(ctx context.Context, s *Sample, pair ReadPair) (TrimSet, error) {
	for _, mate := range []string{pair.Mate1, pair.Mate2} {
		if _, err := os.Stat(mate); err != nil {
			return TrimSet{}, &MissingInputError{Accession: s.Accession, Stage: StageTrim, Path: mate}
		}
	}

	dir := p.sampleDir(s)
	adapters, err := syntheticAdapters(dir, s.Accession)
	if err != nil {
		return TrimSet{}, &StageError{Accession: s.Accession, Stage: StageTrim, Err: err}
	}

	clips := []string{}
	if p.Conf.Trim.Adapters != "" {
		clips = append(clips, p.Conf.Trim.Adapters)
	}
	clips = append(clips, adapters)

	set := TrimSet{
		PairedMate1:   filepath.Join(dir, s.Accession+"_1.paired.fastq"),
		UnpairedMate1: filepath.Join(dir, s.Accession+"_1.unpaired.fastq"),
		PairedMate2:   filepath.Join(dir, s.Accession+"_2.paired.fastq"),
		UnpairedMate2: filepath.Join(dir, s.Accession+"_2.unpaired.fastq"),
	}

	stats, err := tools.Trim(ctx, p.Conf.Tools.Trimmomatic, tools.TrimJob{
		Mate1:               pair.Mate1,
		Mate2:               pair.Mate2,
		PairedMate1:         set.PairedMate1,
		UnpairedMate1:       set.UnpairedMate1,
		PairedMate2:         set.PairedMate2,
		UnpairedMate2:       set.UnpairedMate2,
		ClipFiles:           clips,
		SeedMismatches:      p.Conf.Trim.SeedMismatches,
		PalindromeThreshold: p.Conf.Trim.PalindromeThreshold,
		SimpleThreshold:     p.Conf.Trim.SimpleThreshold,
		HeadCrop:            p.Conf.Trim.HeadCrop,
		WindowSize:          p.Conf.Trim.WindowSize,
		WindowQuality:       p.Conf.Trim.WindowQuality,
		TrailingQuality:     p.Conf.Trim.TrailingQuality,
		MinLength:           p.Conf.Trim.MinLength,
		Threads:             p.Conf.Align.Threads,
	})
	if err != nil {
		return TrimSet{}, &StageError{Accession: s.Accession, Stage: StageTrim, Err: err}
	}
	set.Stats = stats

	return set, nil
}

// AlignReads maps the surviving read pairs against the shared index,
// then verifies the SAM artifact against the reference scope
func (p *Pipeline) AlignReads(ctx context.Context, s *Sample, trim TrimSet, index IndexHandle) (Alignment, error) {
	for _, mate := range []string{trim.PairedMate1, trim.PairedMate2} {
		if _, err := os.Stat(mate); err != nil {
			return Alignment{}, &MissingInputError{Accession: s.Accession, Stage: StageAlign, Path: mate}
		}
	}

	dir := p.sampleDir(s)
	aln := Alignment{
		SAM:     filepath.Join(dir, s.Accession+".aligned.sam"),
		Summary: filepath.Join(dir, s.Accession+".align_summary.txt"),
	}

	err := tools.Align(ctx, p.Conf.Tools.Hisat2, index.Prefix,
		trim.PairedMate1, trim.PairedMate2, aln.SAM, aln.Summary, p.Conf.Align.Threads)
	if err != nil {
		return Alignment{}, &StageError{Accession: s.Accession, Stage: StageAlign, Err: err}
	}

	rate, err := tools.ParseAlignmentRate(aln.Summary)
	if err != nil {
		return Alignment{}, &StageError{Accession: s.Accession, Stage: StageAlign, Err: err}
	}
	aln.Rate = rate

	stats, err := samstat.Verify(aln.SAM, p.scope)
	if err != nil {
		return Alignment{}, &StageError{Accession: s.Accession, Stage: StageAlign, Err: err}
	}
	if diff := math.Abs(stats.Rate() - rate); diff > rateTolerance {
		log.Printf("%s: warning: summary rate %.2f%% and SAM tally %.2f%% disagree",
			s.Accession, rate, stats.Rate())
	}

	return aln, nil
}

// Quantify counts aligned reads per gene over the annotation,
// producing the raw multi-column count table
func (p *Pipeline) Quantify(ctx context.Context, s *Sample, aln Alignment) (string, error) {
	if _, err := os.Stat(aln.SAM); err != nil {
		return "", &MissingInputError{Accession: s.Accession, Stage: StageQuantify, Path: aln.SAM}
	}

	raw := filepath.Join(p.sampleDir(s), s.Accession+".gene_counts.txt")
	err := tools.Quantify(ctx, p.Conf.Tools.FeatureCounts, aln.SAM, p.Annotation,
		p.Conf.Quant.FeatureType, p.Conf.Quant.GroupAttr, raw,
		p.Conf.Quant.Paired, p.Conf.Quant.Threads)
	if err != nil {
		return "", &StageError{Accession: s.Accession, Stage: StageQuantify, Err: err}
	}

	return raw, nil
}

// Reformat strips the raw count table down to (gene id, count) rows
// and checks it against the annotation's gene inventory. A table
// with zero data rows is a configuration-scope failure, not a valid
// result.
func (p *Pipeline) Reformat(s *Sample, raw string) (GeneCountTable, error) {
	table, err := counts.Read(raw)
	if err != nil {
		return GeneCountTable{}, &StageError{Accession: s.Accession, Stage: StageReformat, Err: err}
	}

	if table.Len() == 0 {
		return GeneCountTable{}, &ScopeError{
			Annotation: p.Annotation,
			Detail:     fmt.Sprintf("count table for %s has zero data rows", s.Accession),
		}
	}

	inScope := make(map[string]bool, len(p.genes))
	for _, id := range p.genes {
		inScope[id] = true
	}
	for _, id := range table.GeneIDs {
		if !inScope[id] {
			return GeneCountTable{}, &StageError{
				Accession: s.Accession,
				Stage:     StageReformat,
				Err:       fmt.Errorf("gene %s is not in the annotation's scoped inventory", id),
			}
		}
	}
	if table.Len() != len(p.genes) {
		log.Printf("%s: warning: count table has %d genes, annotation defines %d in scope",
			s.Accession, table.Len(), len(p.genes))
	}

	out := filepath.Join(p.sampleDir(s), s.Accession+".counts.tsv")
	if err := table.Write(out); err != nil {
		return GeneCountTable{}, &StageError{Accession: s.Accession, Stage: StageReformat, Err: err}
	}

	return GeneCountTable{
		Path:     out,
		Genes:    table.Len(),
		Assigned: table.Assigned(),
	}, nil
}
