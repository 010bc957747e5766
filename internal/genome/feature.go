package genome

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Feature types the loader acts on.
const (
	FeatureCDS    = "CDS"
	FeatureSource = "source"
)

// Feature is one annotation feature with its qualifiers.
// Strand is 1 (forward), -1 (reverse) or 0 (unknown).
type Feature struct {
	Type       string              `yaml:"type"`
	Start      int                 `yaml:"start"`
	End        int                 `yaml:"end"`
	Strand     int                 `yaml:"strand,omitempty"`
	Qualifiers map[string][]string `yaml:"qualifiers,omitempty"`
}

// Qualifier returns the non-empty values of a qualifier, trimmed and NFC
// normalized. A missing qualifier yields an empty slice, never an error.
func (f Feature) Qualifier(name string) []string {
	values := f.Qualifiers[name]
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := cleanValue(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FirstQualifier returns the first value of a qualifier, or "" when the
// qualifier is missing or its first value is blank.
func (f Feature) FirstQualifier(name string) string {
	values := f.Qualifiers[name]
	if len(values) == 0 {
		return ""
	}
	return cleanValue(values[0])
}

// StrandSymbol renders Strand as "+", "-" or "".
func (f Feature) StrandSymbol() string {
	switch f.Strand {
	case 1:
		return "+"
	case -1:
		return "-"
	default:
		return ""
	}
}

func cleanValue(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// splitTokens splits s on sep, trims each token and drops empty ones.
func splitTokens(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitXref splits a "source:id" cross-reference.
func splitXref(ref string) (source, id string, ok bool) {
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return "", "", false
	}
	source, id = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if source == "" || id == "" {
		return "", "", false
	}
	return source, id, true
}
