package tools

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// BuildIndex runs hisat2-build on a reference FASTA. The resulting
// index bundle is a set of files sharing the passed prefix; the
// prefix is the only handle later alignments need.
func BuildIndex(ctx context.Context, exe, reference, prefix string) error {
	_, err := run(ctx, exe, reference, prefix)
	return err
}

// alignExec is a single hisat2 invocation mapping a trimmed mate
// pair against a prebuilt index
type alignExec struct {
	exe string

	// index file name prefix
	prefix string

	// paired (surviving) trimmed mates
	mate1, mate2 string

	// SAM output path
	sam string

	// alignment rate summary output path
	summary string

	threads int
}

// matches "95.52% overall alignment rate"
var alignRateRegexp = regexp.MustCompile(`([\d.]+)% overall alignment rate`)

// Align maps a trimmed read pair against the index at prefix,
// writing one SAM artifact and one alignment summary text file
func Align(ctx context.Context, exe, prefix, mate1, mate2, sam, summary string, threads int) error {
	a := &alignExec{
		exe:     exe,
		prefix:  prefix,
		mate1:   mate1,
		mate2:   mate2,
		sam:     sam,
		summary: summary,
		threads: threads,
	}
	return a.run(ctx)
}

func (a *alignExec) run(ctx context.Context) error {
	_, err := run(ctx, a.exe,
		"-q",
		"-x", a.prefix,
		"-1", a.mate1,
		"-2", a.mate2,
		"-S", a.sam,
		"--summary-file", a.summary,
		"-p", strconv.Itoa(a.threads),
	)
	return err
}

// ParseAlignmentRate reads the overall alignment rate percentage out
// of a hisat2 summary file
func ParseAlignmentRate(summaryPath string) (float64, error) {
	b, err := os.ReadFile(summaryPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read alignment summary: %v", err)
	}

	m := alignRateRegexp.FindStringSubmatch(string(b))
	if m == nil {
		return 0, fmt.Errorf("failed to find an overall alignment rate in %s", summaryPath)
	}

	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse alignment rate %q: %v", m[1], err)
	}
	return rate, nil
}
