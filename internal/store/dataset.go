package store

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset is a seedable set of universal entities and models.
//
// Universal reactions carry the stoichiometry; model reactions reference
// them by id and add per-instance bounds and copy numbers. Components and
// compartments referenced anywhere are created on demand.
type Dataset struct {
	Compartments []CompartmentSpec `yaml:"compartments,omitempty"`
	Components   []ComponentSpec   `yaml:"components,omitempty"`
	Reactions    []ReactionSpec    `yaml:"reactions,omitempty"`
	Models       []ModelSpec       `yaml:"models"`
}

// CompartmentSpec is a compartment and its display name.
type CompartmentSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// ComponentSpec is a universal metabolite component.
type ComponentSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// ReactionSpec is a universal reaction with its stoichiometry.
type ReactionSpec struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name,omitempty"`
	Stoichiometry []MatrixEntrySpec `yaml:"stoichiometry,omitempty"`
}

// MatrixEntrySpec is one stoichiometric coefficient.
type MatrixEntrySpec struct {
	Component   string  `yaml:"component"`
	Compartment string  `yaml:"compartment"`
	Coefficient float64 `yaml:"coefficient"`
}

// ModelSpec is one model and its members.
type ModelSpec struct {
	ID          string                `yaml:"id"`
	Genes       []ModelGeneSpec       `yaml:"genes,omitempty"`
	Reactions   []ModelReactionSpec   `yaml:"reactions,omitempty"`
	Metabolites []ModelMetaboliteSpec `yaml:"metabolites,omitempty"`
}

// ModelGeneSpec is a gene of a model.
type ModelGeneSpec struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// ModelReactionSpec is one physical instance of a reaction in a model.
// CopyNumber defaults to 1.
type ModelReactionSpec struct {
	Reaction             string   `yaml:"reaction"`
	GeneReactionRule     string   `yaml:"gene_reaction_rule,omitempty"`
	LowerBound           float64  `yaml:"lower_bound"`
	UpperBound           float64  `yaml:"upper_bound"`
	ObjectiveCoefficient float64  `yaml:"objective_coefficient,omitempty"`
	Subsystem            string   `yaml:"subsystem,omitempty"`
	CopyNumber           int      `yaml:"copy_number,omitempty"`
	Aliases              []string `yaml:"aliases,omitempty"`
}

// ModelMetaboliteSpec is a compartmentalized component of a model.
type ModelMetaboliteSpec struct {
	Component   string   `yaml:"component"`
	Compartment string   `yaml:"compartment"`
	Formula     string   `yaml:"formula,omitempty"`
	Charge      *int     `yaml:"charge,omitempty"`
	Aliases     []string `yaml:"aliases,omitempty"`
}

// DecodeDataset parses a YAML dataset. Unknown fields are rejected.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &ds, nil
}

// LoadDataset reads and parses a YAML dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return DecodeDataset(bytes.NewReader(data))
}

func (ds *Dataset) validate() error {
	for i, c := range ds.Compartments {
		if c.ID == "" {
			return fmt.Errorf("compartments[%d]: id is required", i)
		}
	}
	for i, c := range ds.Components {
		if c.ID == "" {
			return fmt.Errorf("components[%d]: id is required", i)
		}
	}
	for i, r := range ds.Reactions {
		if r.ID == "" {
			return fmt.Errorf("reactions[%d]: id is required", i)
		}
		for j, e := range r.Stoichiometry {
			if e.Component == "" || e.Compartment == "" {
				return fmt.Errorf("reactions[%d].stoichiometry[%d]: component and compartment are required", i, j)
			}
		}
	}
	for i, m := range ds.Models {
		if m.ID == "" {
			return fmt.Errorf("models[%d]: id is required", i)
		}
		for j, g := range m.Genes {
			if g.ID == "" {
				return fmt.Errorf("models[%d].genes[%d]: id is required", i, j)
			}
		}
		for j, r := range m.Reactions {
			if r.Reaction == "" {
				return fmt.Errorf("models[%d].reactions[%d]: reaction is required", i, j)
			}
			if r.CopyNumber < 0 {
				return fmt.Errorf("models[%d].reactions[%d]: copy_number must be positive", i, j)
			}
		}
		for j, mm := range m.Metabolites {
			if mm.Component == "" || mm.Compartment == "" {
				return fmt.Errorf("models[%d].metabolites[%d]: component and compartment are required", i, j)
			}
		}
	}
	return nil
}
