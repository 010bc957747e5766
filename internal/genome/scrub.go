package genome

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

var (
	transcriptSuffix = regexp.MustCompile(`^(.*)\.([0-9]{1,2})$`)
	nonWord          = regexp.MustCompile(`\W`)
)

// ScrubGeneID turns a locus tag or gene name into a gene identifier.
// A trailing ".N" transcript number (one or two digits) becomes "_ATN";
// every remaining non-word character becomes "_".
func ScrubGeneID(id string) string {
	id = norm.NFC.String(id)
	id = transcriptSuffix.ReplaceAllString(id, "${1}_AT${2}")
	return nonWord.ReplaceAllString(id, "_")
}

// Identity is the gene identity settled for one feature.
type Identity struct {
	// ID is the scrubbed gene identifier.
	ID string

	// LocusTag is the raw locus_tag qualifier, if any.
	LocusTag string

	// Name is the name stored on a new gene.
	Name string

	// GeneQualifier is the raw gene qualifier, if any.
	GeneQualifier string

	// Fallback is true when ID came from the gene name.
	Fallback bool
}

// ResolveIdentity applies the identifier precedence to a feature:
// locus tag, then gene name. ok is false when the feature has neither.
func ResolveIdentity(f Feature) (id Identity, ok bool) {
	locus := f.FirstQualifier("locus_tag")
	gene := f.FirstQualifier("gene")

	switch {
	case locus != "":
		return Identity{
			ID:            ScrubGeneID(locus),
			LocusTag:      locus,
			Name:          gene,
			GeneQualifier: gene,
		}, true
	case gene != "":
		scrubbed := ScrubGeneID(gene)
		return Identity{
			ID:            scrubbed,
			Name:          scrubbed,
			GeneQualifier: gene,
			Fallback:      true,
		}, true
	default:
		return Identity{}, false
	}
}
