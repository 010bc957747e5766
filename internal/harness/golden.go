package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/metnet/internal/export"
)

// Snapshot captures the reconstruction output of one scenario.
// It is serialized as canonical JSON for deterministic comparison.
type Snapshot struct {
	ScenarioName string
	Document     export.Object
	Warnings     []string
}

// NewSnapshot builds the snapshot of a passing result.
func NewSnapshot(scenarioName string, result *Result) (*Snapshot, error) {
	if result.Model == nil {
		return nil, fmt.Errorf("scenario %s produced no model", scenarioName)
	}
	warnings := make([]string, len(result.Warnings))
	for i, w := range result.Warnings {
		warnings[i] = w.String()
	}
	return &Snapshot{
		ScenarioName: scenarioName,
		Document:     export.Document(result.Model),
		Warnings:     warnings,
	}, nil
}

// MarshalCanonical renders the snapshot.
func (s *Snapshot) MarshalCanonical() ([]byte, error) {
	warnings := make(export.Array, len(s.Warnings))
	for i, w := range s.Warnings {
		warnings[i] = w
	}
	return export.MarshalCanonical(export.Object{
		"scenario_name": s.ScenarioName,
		"model":         s.Document,
		"warnings":      warnings,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot, err := NewSnapshot(scenarioName, result)
	if err != nil {
		return err
	}
	data, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
