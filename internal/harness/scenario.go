package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/metnet/internal/model"
	"github.com/roach88/metnet/internal/recon"
)

// DefaultModelID is used when a scenario leaves model_id empty.
const DefaultModelID = "scenario_model"

// Scenario defines one reconstruction test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// ModelID is the id of the assembled model.
	ModelID string `yaml:"model_id,omitempty"`

	// Options configures the matrix linker.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// Compartments are the names the compartment namer knows.
	Compartments map[string]string `yaml:"compartments,omitempty"`

	// Rows are the input row streams.
	Rows model.Rows `yaml:"rows"`

	// ExpectError names the failure reconstruction must end with:
	// "duplicate_identifier". Assertions are not evaluated then.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the assembled model and warnings.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ScenarioOptions are per-scenario reconstruction options.
type ScenarioOptions struct {
	AttachAllCopies bool `yaml:"attach_all_copies,omitempty"`
}

// Assertion validates one aspect of the result.
type Assertion struct {
	// Type selects the check. See the Assert* constants.
	Type string `yaml:"type"`

	// Kind is the entity kind: gene, reaction or metabolite
	// (used by entity_ids and aliases).
	Kind string `yaml:"kind,omitempty"`

	// ID is the entity identifier (used by aliases).
	ID string `yaml:"id,omitempty"`

	// IDs are the expected identifiers in order (used by entity_ids).
	IDs []string `yaml:"ids,omitempty"`

	// Aliases are the expected aliases in order (used by aliases).
	Aliases []string `yaml:"aliases,omitempty"`

	// Reaction is the reaction identifier (used by stoichiometry).
	Reaction string `yaml:"reaction,omitempty"`

	// Metabolites is the expected coefficient map (used by stoichiometry).
	Metabolites map[string]float64 `yaml:"metabolites,omitempty"`

	// Code is the warning code (used by warning_count).
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of warnings (used by warning_count).
	Count int `yaml:"count,omitempty"`

	// Compartments is the expected compartment table (used by compartments).
	Compartments map[string]string `yaml:"compartments,omitempty"`
}

// Assertion type constants.
const (
	AssertEntityIDs     = "entity_ids"
	AssertAliases       = "aliases"
	AssertStoichiometry = "stoichiometry"
	AssertWarningCount  = "warning_count"
	AssertCompartments  = "compartments"
)

// ExpectDuplicateIdentifier is the only supported expect_error value.
const ExpectDuplicateIdentifier = "duplicate_identifier"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.ExpectError {
	case "":
		if len(s.Assertions) == 0 {
			return fmt.Errorf("assertions list is required unless expect_error is set")
		}
	case ExpectDuplicateIdentifier:
	default:
		return fmt.Errorf("unknown expect_error %q", s.ExpectError)
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEntityIDs:
		if !validKind(a.Kind) {
			return fmt.Errorf("assertions[%d]: kind must be gene, reaction or metabolite for entity_ids", index)
		}
	case AssertAliases:
		if !validKind(a.Kind) {
			return fmt.Errorf("assertions[%d]: kind must be gene, reaction or metabolite for aliases", index)
		}
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for aliases", index)
		}
	case AssertStoichiometry:
		if a.Reaction == "" {
			return fmt.Errorf("assertions[%d]: reaction is required for stoichiometry", index)
		}
	case AssertWarningCount:
		if a.Code != string(recon.MissingMetaboliteWarning) && a.Code != string(recon.MissingReactionWarning) {
			return fmt.Errorf("assertions[%d]: unknown warning code %q", index, a.Code)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for warning_count", index)
		}
	case AssertCompartments:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func validKind(kind string) bool {
	switch recon.EntityKind(kind) {
	case recon.KindGene, recon.KindReaction, recon.KindMetabolite:
		return true
	}
	return false
}
