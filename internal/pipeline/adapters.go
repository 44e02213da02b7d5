package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// length of each synthetic homopolymer adapter written per sample
const syntheticAdapterLength = 30

// syntheticAdapters writes a sample-specific FASTA of low-complexity
// homopolymer sequences for the trimmer's clip step. Poly-A tails
// and poly-G artifacts survive stock adapter lists, so each sample
// gets its own clip file alongside its trimmed outputs.
func syntheticAdapters(dir, accession string) (string, error) {
	var b strings.Builder
	for _, base := range []string{"A", "G"} {
		fmt.Fprintf(&b, ">%s_synthetic_poly%s\n%s\n",
			accession, base, strings.Repeat(base, syntheticAdapterLength))
	}

	path := filepath.Join(dir, accession+"_synthetic_adapters.fa")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write synthetic adapter file: %v", err)
	}

	return path, nil
}
