package genome

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

// DefaultAccessionLines is how many leading lines ReadAccessions scans.
const DefaultAccessionLines = 100

// Accessions are the identifiers found in the header of a GenBank file.
// Fields are empty when not found.
type Accessions struct {
	Accession  string `json:"ncbi_accession"`
	Assembly   string `json:"ncbi_assembly"`
	BioProject string `json:"ncbi_bioproject"`
}

var (
	versionPattern    = regexp.MustCompile(`VERSION\s+([\w.-]+)(?:[^\w.-]|$)`)
	assemblyPattern   = regexp.MustCompile(`Assembly:\s*([\w.-]+)(?:[^\w.-]|$)`)
	bioProjectPattern = regexp.MustCompile(`BioProject:\s*([\w.-]+)(?:[^\w.-]|$)`)
)

// ReadAccessions scans the first lineLimit lines of a GenBank flat file for
// the VERSION accession and the Assembly and BioProject cross-references.
// A later match overwrites an earlier one. lineLimit <= 0 uses
// DefaultAccessionLines.
func ReadAccessions(r io.Reader, lineLimit int) (Accessions, error) {
	if lineLimit <= 0 {
		lineLimit = DefaultAccessionLines
	}

	var acc Accessions
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 0; n < lineLimit && scanner.Scan(); n++ {
		line := scanner.Text()
		if m := versionPattern.FindStringSubmatch(line); m != nil {
			acc.Accession = m[1]
		}
		if m := assemblyPattern.FindStringSubmatch(line); m != nil {
			acc.Assembly = m[1]
		}
		if m := bioProjectPattern.FindStringSubmatch(line); m != nil {
			acc.BioProject = m[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return acc, fmt.Errorf("scan accessions: %w", err)
	}
	return acc, nil
}
