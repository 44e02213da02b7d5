package tools

import (
	"context"
)

// FastQC writes one HTML quality report per passed FASTQ file into
// outDir. The reports are observational: callers treat a failure as
// a warning, never as a pipeline halt.
func FastQC(ctx context.Context, exe, outDir string, fastqs ...string) error {
	args := append([]string{"-o", outDir}, fastqs...)
	_, err := run(ctx, exe, args...)
	return err
}
