package test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/config"
	"github.com/Shaurav20/RNASeq-analysis-pipeline-for-countfile-generation/internal/pipeline"
)

const annotation = `chr22	havana	exon	100	900	.	+	.	gene_id "GENE1";
chr22	havana	exon	2000	5000	.	+	.	gene_id "GENE1";
chr22	havana	exon	9000	9900	.	-	.	gene_id "GENE2";
`

const samArtifact = "@HD\tVN:1.6\tSO:unsorted\n" +
	"@SQ\tSN:chr22\tLN:50818468\n" +
	"@PG\tID:hisat2\tPN:hisat2\tVN:2.2.1\n" +
	"r1\t99\tchr22\t100\t60\t10M\t=\t200\t110\tACGTACGTAC\tIIIIIIIIII\n" +
	"r1\t147\tchr22\t200\t60\t10M\t=\t100\t-110\tACGTACGTAC\tIIIIIIIIII\n"

const rawCountTable = "# Program:featureCounts\n" +
	"Geneid\tChr\tStart\tEnd\tStrand\tLength\taligned.sam\n" +
	"GENE1\tchr22\t100;2000\t900;5000\t+;+\t3802\t2\n" +
	"GENE2\tchr22\t9000\t9900\t-\t901\t1\n"

// stubTools fakes the five external executables with shell scripts
// so the orchestrator can be exercised end to end without any
// bioinformatics software installed. The returned config points the
// pipeline at them.
func stubTools(t *testing.T, dir string) config.Config {
	t.Helper()

	write := func(name, script string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
			t.Fatal(err)
		}
		return path
	}

	extract := write("fasterq-dump", `out=""
while [ $# -gt 1 ]; do
  case "$1" in
    -O) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
acc=$(basename "$1" .sra)
printf '@r1\nACGTACGTAC\n+\nIIIIIIIIII\n' > "$out/${acc}_1.fastq"
printf '@r1\nACGTACGTAC\n+\nIIIIIIIIII\n' > "$out/${acc}_2.fastq"
`)

	fastqc := write("fastqc", "exit 0\n")

	trimmomatic := write("trimmomatic", `shift 3
cp "$1" "$3"
cp "$2" "$5"
: > "$4"
: > "$6"
echo "Input Read Pairs: 4 Both Surviving: 4 (100.00%) Forward Only Surviving: 0 (0.00%) Reverse Only Surviving: 0 (0.00%) Dropped: 0 (0.00%)" >&2
`)

	buildCalls := filepath.Join(dir, "build_calls")
	hisatBuild := write("hisat2-build", fmt.Sprintf(
		"echo run >> %s\ntouch \"$2.1.ht2\"\n", buildCalls))

	hisat := write("hisat2", fmt.Sprintf(`sam=""
summary=""
while [ $# -gt 0 ]; do
  case "$1" in
    -S) sam="$2"; shift 2 ;;
    --summary-file) summary="$2"; shift 2 ;;
    *) shift ;;
  esac
done
printf '%%s' '%s' > "$sam"
echo "100.00%% overall alignment rate" > "$summary"
`, samArtifact))

	featureCounts := write("featureCounts", fmt.Sprintf(`out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
printf '%%s' '%s' > "$out"
`, rawCountTable))

	c := config.Config{}
	c.Tools = config.ToolConfig{
		FasterqDump:   extract,
		FastQC:        fastqc,
		Trimmomatic:   trimmomatic,
		Hisat2Build:   hisatBuild,
		Hisat2:        hisat,
		FeatureCounts: featureCounts,
	}
	c.Trim = config.TrimConfig{
		SeedMismatches:      2,
		PalindromeThreshold: 30,
		SimpleThreshold:     10,
		HeadCrop:            11,
		WindowSize:          4,
		WindowQuality:       20,
		TrailingQuality:     10,
		MinLength:           20,
	}
	c.Align = config.AlignConfig{Threads: 1}
	c.Quant = config.QuantConfig{FeatureType: "exon", GroupAttr: "gene_id", Paired: true, Threads: 1}
	return c
}

// newRun lays out a workspace with a reference, annotation and one
// archive per passed accession
func newRun(t *testing.T, conf config.Config, accessions ...string) *pipeline.Pipeline {
	t.Helper()

	dir := t.TempDir()

	reference := filepath.Join(dir, "chr22.fa")
	if err := os.WriteFile(reference, []byte(">chr22\nACGTACGTACGT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	annotationPath := filepath.Join(dir, "annotation.gtf")
	if err := os.WriteFile(annotationPath, []byte(annotation), 0644); err != nil {
		t.Fatal(err)
	}

	sraDir := filepath.Join(dir, "work", "sra")
	if err := os.MkdirAll(sraDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, acc := range accessions {
		if err := os.WriteFile(filepath.Join(sraDir, acc+".sra"), []byte("sra"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return &pipeline.Pipeline{
		Conf:       conf,
		Reference:  reference,
		Annotation: annotationPath,
		Workspace:  filepath.Join(dir, "work"),
		OutDir:     filepath.Join(dir, "Results"),
		Procs:      1,
	}
}

func Test_Run_twoSamples(t *testing.T) {
	stubs := t.TempDir()
	conf := stubTools(t, stubs)

	p := newRun(t, conf, "SRR_A", "SRR_B")
	samples := []*pipeline.Sample{
		{Accession: "SRR_A", Condition: "untreated"},
		{Accession: "SRR_B", Condition: "treated"},
	}

	set, err := p.Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(set.Failures) != 0 {
		t.Fatalf("Run() failures = %+v, want none", set.Failures)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("Run() produced %d entries, want 2", len(set.Entries))
	}

	// exactly two condition-qualified tables and summaries, no collision
	wantFiles := []string{
		"untreated_SRR_A.counts.tsv",
		"untreated_SRR_A.align_summary.txt",
		"treated_SRR_B.counts.tsv",
		"treated_SRR_B.align_summary.txt",
		"run_summary.tsv",
		"run_manifest.json",
	}
	for _, name := range wantFiles {
		if _, err := os.Stat(filepath.Join(p.OutDir, name)); err != nil {
			t.Errorf("results directory is missing %s: %v", name, err)
		}
	}

	// the reformatted table is two columns in annotation order
	b, err := os.ReadFile(filepath.Join(p.OutDir, "untreated_SRR_A.counts.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), "GENE1\t2\nGENE2\t1\n"; got != want {
		t.Errorf("count table = %q, want %q", got, want)
	}

	// the index was built exactly once across both samples
	calls, err := os.ReadFile(filepath.Join(stubs, "build_calls"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(calls), "run"); got != 1 {
		t.Errorf("index was built %d times, want exactly 1", got)
	}

	// two single-replicate conditions are never statistically valid
	if set.StatisticallyValid {
		t.Error("Run() claimed statistical validity for single-replicate conditions")
	}

	// cleanup ran: the SAM intermediates are gone, the per-sample
	// count tables remain
	for _, acc := range []string{"SRR_A", "SRR_B"} {
		sam := filepath.Join(p.Workspace, acc, acc+".aligned.sam")
		if _, err := os.Stat(sam); !os.IsNotExist(err) {
			t.Errorf("cleanup left %s behind", sam)
		}
		table := filepath.Join(p.Workspace, acc, acc+".counts.tsv")
		if _, err := os.Stat(table); err != nil {
			t.Errorf("cleanup removed the count table %s: %v", table, err)
		}
	}

	for _, e := range set.Entries {
		if e.SurvivalPct != 100.0 {
			t.Errorf("%s survival = %v, want 100", e.Accession, e.SurvivalPct)
		}
		if e.AlignmentRate != 100.0 {
			t.Errorf("%s alignment rate = %v, want 100", e.Accession, e.AlignmentRate)
		}
		if e.Genes != 2 || e.AssignedReads != 3 {
			t.Errorf("%s genes/assigned = %d/%d, want 2/3", e.Accession, e.Genes, e.AssignedReads)
		}
	}
}

func Test_Run_alignerFailureIsolated(t *testing.T) {
	stubs := t.TempDir()
	conf := stubTools(t, stubs)

	// the aligner fails for SRR_B only
	failing := filepath.Join(stubs, "hisat2-failing")
	script := `#!/bin/sh
case "$*" in
  *SRR_B*) echo "hisat2: perm interval" >&2; exit 1 ;;
esac
exec ` + conf.Tools.Hisat2 + ` "$@"
`
	if err := os.WriteFile(failing, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	conf.Tools.Hisat2 = failing

	p := newRun(t, conf, "SRR_A", "SRR_B")
	samples := []*pipeline.Sample{
		{Accession: "SRR_A", Condition: "untreated"},
		{Accession: "SRR_B", Condition: "treated"},
	}

	set, err := p.Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// SRR_A proceeds unaffected
	if len(set.Entries) != 1 || set.Entries[0].Accession != "SRR_A" {
		t.Fatalf("Run() entries = %+v, want SRR_A only", set.Entries)
	}

	// SRR_B halts at align with no count table
	if len(set.Failures) != 1 {
		t.Fatalf("Run() failures = %+v, want one", set.Failures)
	}
	if f := set.Failures[0]; f.Accession != "SRR_B" || f.Stage != "align" {
		t.Errorf("failure = %+v, want SRR_B at align", f)
	}
	matches, _ := filepath.Glob(filepath.Join(p.OutDir, "*SRR_B*"))
	if len(matches) != 0 {
		t.Errorf("failed sample left artifacts in the results directory: %v", matches)
	}

	// the failed sample keeps its intermediates for a rerun
	unpaired := filepath.Join(p.Workspace, "SRR_B", "SRR_B_1.unpaired.fastq")
	if _, err := os.Stat(unpaired); err != nil {
		t.Errorf("failed sample's intermediates were deleted: %v", err)
	}
}

func Test_Run_scopeMismatch(t *testing.T) {
	stubs := t.TempDir()
	conf := stubTools(t, stubs)

	p := newRun(t, conf, "SRR_A")
	// annotation restricted to a chromosome the reference lacks
	if err := os.WriteFile(p.Annotation,
		[]byte("chrX\thavana\texon\t1\t100\t.\t+\t.\tgene_id \"GENE9\";\n"), 0644); err != nil {
		t.Fatal(err)
	}

	samples := []*pipeline.Sample{{Accession: "SRR_A", Condition: "untreated"}}

	if _, err := p.Run(context.Background(), samples); err == nil {
		t.Fatal("Run() expected a configuration-scope error before alignment")
	}

	// nothing was produced for the sample
	if _, err := os.Stat(filepath.Join(p.OutDir, "untreated_SRR_A.counts.tsv")); !os.IsNotExist(err) {
		t.Error("Run() produced a count table despite the scope mismatch")
	}
}
