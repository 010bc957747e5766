package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Warnings []string // Linker warnings for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Warnings) > 0 {
		fmt.Fprintf(&buf, "\nWarnings:\n")
		for i, w := range e.Warnings {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, w)
		}
	}

	return buf.String()
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertEntityIDs:
		return assertEntityIDs(r, a)
	case AssertAliases:
		return assertAliases(r, a)
	case AssertStoichiometry:
		return assertStoichiometry(r, a)
	case AssertWarningCount:
		return assertWarningCount(r, a)
	case AssertCompartments:
		return assertCompartments(r, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func (r *Result) failure(typ, expected, actual string) *AssertionError {
	warnings := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = w.String()
	}
	return &AssertionError{Type: typ, Expected: expected, Actual: actual, Warnings: warnings}
}

func entityIDs(m *model.Model, kind string) []string {
	switch recon.EntityKind(kind) {
	case recon.KindGene:
		return m.Genes.IDs()
	case recon.KindReaction:
		return m.Reactions.IDs()
	default:
		return m.Metabolites.IDs()
	}
}

func entityAliases(m *model.Model, kind, id string) ([]string, bool) {
	switch recon.EntityKind(kind) {
	case recon.KindGene:
		if g, ok := m.Genes.Get(id); ok {
			return g.Aliases, true
		}
	case recon.KindReaction:
		if rx, ok := m.Reactions.Get(id); ok {
			return rx.Aliases, true
		}
	default:
		if met, ok := m.Metabolites.Get(id); ok {
			return met.Aliases, true
		}
	}
	return nil, false
}

// assertEntityIDs checks the exact identifiers of a collection, in order.
func assertEntityIDs(r *Result, a Assertion) error {
	got := entityIDs(r.Model, a.Kind)
	want := a.IDs
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(got, want) {
		return r.failure(AssertEntityIDs,
			fmt.Sprintf("%s ids %v", a.Kind, want),
			fmt.Sprintf("%s ids %v", a.Kind, got))
	}
	return nil
}

// assertAliases checks the alias list of one entity, in order.
func assertAliases(r *Result, a Assertion) error {
	got, ok := entityAliases(r.Model, a.Kind, a.ID)
	if !ok {
		return r.failure(AssertAliases,
			fmt.Sprintf("%s %s with aliases %v", a.Kind, a.ID, a.Aliases),
			fmt.Sprintf("%s %s not found", a.Kind, a.ID))
	}
	if len(got) == 0 && len(a.Aliases) == 0 {
		return nil
	}
	if !slices.Equal(got, a.Aliases) {
		return r.failure(AssertAliases,
			fmt.Sprintf("%s %s aliases %v", a.Kind, a.ID, a.Aliases),
			fmt.Sprintf("%s %s aliases %v", a.Kind, a.ID, got))
	}
	return nil
}

// assertStoichiometry checks the full coefficient map of one reaction.
func assertStoichiometry(r *Result, a Assertion) error {
	rx, ok := r.Model.Reactions.Get(a.Reaction)
	if !ok {
		return r.failure(AssertStoichiometry,
			fmt.Sprintf("reaction %s", a.Reaction),
			"reaction not found")
	}
	if len(rx.Stoichiometry) == 0 && len(a.Metabolites) == 0 {
		return nil
	}
	if !maps.Equal(rx.Stoichiometry, a.Metabolites) {
		return r.failure(AssertStoichiometry,
			fmt.Sprintf("reaction %s metabolites %s", a.Reaction, formatCoefficients(a.Metabolites)),
			fmt.Sprintf("reaction %s metabolites %s", a.Reaction, formatCoefficients(rx.Stoichiometry)))
	}
	return nil
}

// assertWarningCount checks how many warnings carry a code.
func assertWarningCount(r *Result, a Assertion) error {
	count := 0
	for _, w := range r.Warnings {
		if string(w.Code) == a.Code {
			count++
		}
	}
	if count != a.Count {
		return r.failure(AssertWarningCount,
			fmt.Sprintf("%d %s warnings", a.Count, a.Code),
			fmt.Sprintf("%d %s warnings", count, a.Code))
	}
	return nil
}

// assertCompartments checks the compartment table exactly.
func assertCompartments(r *Result, a Assertion) error {
	want := a.Compartments
	if want == nil {
		want = map[string]string{}
	}
	if !maps.Equal(r.Model.Compartments, want) {
		return r.failure(AssertCompartments,
			fmt.Sprintf("compartments %v", want),
			fmt.Sprintf("compartments %v", r.Model.Compartments))
	}
	return nil
}

// formatCoefficients renders a coefficient map with sorted keys.
func formatCoefficients(m map[string]float64) string {
	keys := slices.Sorted(maps.Keys(m))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%g", k, m[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
