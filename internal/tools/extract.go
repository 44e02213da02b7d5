package tools

import (
	"context"
)

// extractExec is a single fasterq-dump invocation converting an SRA
// archive into split paired-end FASTQ files
type extractExec struct {
	// the executable name or path
	exe string

	// path to the .sra archive (or a bare accession resolvable by
	// the tool)
	archive string

	// the directory FASTQ files are written into
	outDir string
}

// Extract converts an SRA archive into two mate FASTQ files inside
// outDir. fasterq-dump names them <accession>_1.fastq and
// <accession>_2.fastq.
func Extract(ctx context.Context, exe, archive, outDir string) error {
	e := &extractExec{
		exe:     exe,
		archive: archive,
		outDir:  outDir,
	}
	return e.run(ctx)
}

func (e *extractExec) run(ctx context.Context) error {
	_, err := run(ctx, e.exe,
		"--split-files",
		"-O", e.outDir,
		e.archive,
	)
	return err
}
