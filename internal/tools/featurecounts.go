package tools

import (
	"context"
	"strconv"
)

// quantExec is a single featureCounts invocation attributing aligned
// reads to genes via an annotation file
type quantExec struct {
	exe string

	// SAM/BAM input
	alignment string

	// GTF annotation
	annotation string

	// annotation rows to count against, eg "exon"
	featureType string

	// attribute reads are grouped by, eg "gene_id"
	groupAttr string

	// raw count table output path
	out string

	// count read pairs as fragments
	paired bool

	threads int
}

// Quantify counts reads overlapping annotation features per gene,
// writing a raw count table (metadata header rows included) to out
func Quantify(ctx context.Context, exe, alignment, annotation, featureType, groupAttr, out string, paired bool, threads int) error {
	q := &quantExec{
		exe:         exe,
		alignment:   alignment,
		annotation:  annotation,
		featureType: featureType,
		groupAttr:   groupAttr,
		out:         out,
		paired:      paired,
		threads:     threads,
	}
	return q.run(ctx)
}

func (q *quantExec) run(ctx context.Context) error {
	args := []string{}
	if q.paired {
		args = append(args, "-p")
	}
	args = append(args,
		"-t", q.featureType,
		"-g", q.groupAttr,
		"-a", q.annotation,
		"-o", q.out,
		"-T", strconv.Itoa(q.threads),
		q.alignment,
	)

	_, err := run(ctx, q.exe, args...)
	return err
}
