// Package gtf reads just enough of a GTF annotation file to answer
// the two questions the pipeline asks before and after a run: which
// genes fall within the reference scope, and whether the annotation
// and reference overlap at all.
package gtf

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Genes returns the unique gene identifiers of all featureType rows
// whose seqname is within scope, in annotation file order. An empty
// scope map means no restriction.
func Genes(path, featureType, groupAttr string, scope map[string]bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation %s: %v", path, err)
	}
	defer f.Close()

	var genes []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for i := 0; scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		row := strings.Split(line, "\t")
		if len(row) < 9 {
			return nil, fmt.Errorf("annotation row %d has %d columns, want 9", i, len(row))
		}

		if row[2] != featureType {
			continue
		}
		if len(scope) > 0 && !scope[row[0]] {
			continue
		}

		id, err := attribute(row[8], groupAttr)
		if err != nil {
			return nil, fmt.Errorf("annotation row %d: %v", i, err)
		}
		if !seen[id] {
			seen[id] = true
			genes = append(genes, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read annotation %s: %v", path, err)
	}

	return genes, nil
}

// Seqnames returns the set of reference sequence names the
// annotation mentions
func Seqnames(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation %s: %v", path, err)
	}
	defer f.Close()

	names := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}
		if tab := strings.IndexByte(line, '\t'); tab > 0 {
			names[line[:tab]] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read annotation %s: %v", path, err)
	}

	return names, nil
}

// attribute pulls one key's value out of a GTF attribute column.
// Attributes look like: gene_id "ENSG00000223972"; gene_version "5";
func attribute(col, key string) (string, error) {
	for _, field := range strings.Split(col, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		space := strings.IndexByte(field, ' ')
		if space < 0 {
			continue
		}
		if field[:space] != key {
			continue
		}

		value := strings.TrimSpace(field[space+1:])
		value = strings.Trim(value, `"`)
		if value == "" {
			return "", fmt.Errorf("empty %s attribute in %q", key, col)
		}
		return value, nil
	}

	return "", fmt.Errorf("failed to find a %s attribute in %q", key, col)
}
