// Package tools wraps the external bioinformatics executables the
// pipeline depends on: fasterq-dump, FastQC, Trimmomatic, HISAT2 and
// featureCounts. Each wrapper builds a flag list, executes the tool
// and returns an error carrying the tool's stderr when it exits
// nonzero.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// stderr excerpts longer than this are truncated in error messages
const maxStderrExcerpt = 2048

// run executes an external tool and waits on it to finish. On a
// nonzero exit the returned error includes the trailing stderr
// excerpt because most of the wrapped tools report their failure
// cause there. Cancelling the context kills the process.
func run(ctx context.Context, exe string, args ...string) (stderr string, err error) {
	cmd := exec.CommandContext(ctx, exe, args...)

	errBuf := new(bytes.Buffer)
	cmd.Stderr = errBuf

	err = cmd.Run()
	stderr = errBuf.String()
	if err != nil {
		return stderr, fmt.Errorf("failed to execute %s: %v: %s", exe, err, excerpt(stderr))
	}

	return stderr, nil
}

// excerpt returns the tail of a tool's stderr, enough to carry the
// failure cause without flooding the log
func excerpt(stderr string) string {
	s := strings.TrimSpace(stderr)
	if len(s) > maxStderrExcerpt {
		s = "..." + s[len(s)-maxStderrExcerpt:]
	}
	return s
}

// Available checks that every passed executable can be resolved via
// PATH (or is an existing absolute path). It returns one error per
// missing tool.
func Available(exes ...string) (missing []error) {
	for _, exe := range exes {
		if _, err := exec.LookPath(exe); err != nil {
			missing = append(missing, fmt.Errorf("failed to find %s: %v", exe, err))
		}
	}
	return missing
}
