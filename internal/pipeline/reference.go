package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// fastaSeqnames reads the sequence names out of a reference FASTA.
// Only the first whitespace-delimited token of each header line is
// kept, matching how aligners name references in SAM headers.
func fastaSeqnames(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference %s: %v", path, err)
	}
	defer f.Close()

	names := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}

		name := strings.TrimPrefix(line, ">")
		if fields := strings.Fields(name); len(fields) > 0 {
			names[fields[0]] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference %s: %v", path, err)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("reference %s has no sequences", path)
	}

	return names, nil
}
