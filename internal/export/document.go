// Package export renders assembled models as deterministic JSON.
//
// The layout follows the COBRA JSON model format: top-level id, genes,
// reactions, metabolites and compartments, with each entity's aliases under
// notes.original_ids. Output is canonical (sorted keys, NFC strings), so a
// model always serializes to the same bytes.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/metnet/internal/model"
)

// Options controls Marshal.
type Options struct {
	// Indent pretty-prints with two spaces. Key order is unchanged.
	Indent bool

	// RunID is recorded under metnet.run_id when set.
	RunID string
}

// Document builds the canonical value tree of m.
// Entity arrays keep the model's insertion order.
func Document(m *model.Model) Object {
	genes := make(Array, 0, m.Genes.Len())
	for _, g := range m.Genes.All() {
		genes = append(genes, Object{
			"id":    g.ID,
			"name":  g.Name,
			"notes": notes(g.Aliases),
		})
	}

	reactions := make(Array, 0, m.Reactions.Len())
	for _, r := range m.Reactions.All() {
		stoich := make(Object, len(r.Stoichiometry))
		for id, coef := range r.Stoichiometry {
			stoich[id] = coef
		}
		reactions = append(reactions, Object{
			"id":                    r.ID,
			"name":                  r.Name,
			"gene_reaction_rule":    r.GeneReactionRule,
			"lower_bound":           r.LowerBound,
			"upper_bound":           r.UpperBound,
			"objective_coefficient": r.ObjectiveCoefficient,
			"subsystem":             r.Subsystem,
			"metabolites":           stoich,
			"notes":                 notes(r.Aliases),
		})
	}

	metabolites := make(Array, 0, m.Metabolites.Len())
	for _, met := range m.Metabolites.All() {
		obj := Object{
			"id":          met.ID,
			"name":        met.Name,
			"compartment": met.CompartmentID,
			"formula":     met.Formula,
			"notes":       notes(met.Aliases),
		}
		if met.Charge != nil {
			obj["charge"] = *met.Charge
		}
		metabolites = append(metabolites, obj)
	}

	compartments := make(Object, len(m.Compartments))
	for id, name := range m.Compartments {
		compartments[id] = name
	}

	return Object{
		"id":           m.ID,
		"genes":        genes,
		"reactions":    reactions,
		"metabolites":  metabolites,
		"compartments": compartments,
	}
}

func notes(aliases []string) Object {
	ids := make(Array, len(aliases))
	for i, a := range aliases {
		ids[i] = a
	}
	return Object{"original_ids": ids}
}

// Marshal renders m as canonical JSON with its content hash under
// metnet.model_hash. Indented output ends with a newline.
func Marshal(m *model.Model, opts Options) ([]byte, error) {
	doc := Document(m)

	hash, err := ModelHash(m)
	if err != nil {
		return nil, err
	}
	meta := Object{"model_hash": hash}
	if opts.RunID != "" {
		meta["run_id"] = opts.RunID
	}
	doc["metnet"] = meta

	out, err := MarshalCanonical(doc)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", m.ID, err)
	}
	if !opts.Indent {
		return out, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return nil, fmt.Errorf("export %s: indent: %w", m.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
