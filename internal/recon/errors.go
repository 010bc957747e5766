package recon

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned by a Source when the requested model does not exist.
var ErrModelNotFound = errors.New("model not found")

// EntityKind names one of the three keyed collections.
type EntityKind string

const (
	KindGene       EntityKind = "gene"
	KindReaction   EntityKind = "reaction"
	KindMetabolite EntityKind = "metabolite"
)

// DuplicateIdentifierError reports two entities of one kind sharing an
// identifier after resolution. It signals a resolver or data defect and
// aborts reconstruction.
type DuplicateIdentifierError struct {
	Kind EntityKind
	ID   string
}

// Error implements the error interface.
func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate %s identifier %q after resolution", e.Kind, e.ID)
}

// IsDuplicateIdentifier returns true if err is a DuplicateIdentifierError.
// Uses errors.As to handle wrapped errors.
func IsDuplicateIdentifier(err error) bool {
	var de *DuplicateIdentifierError
	return errors.As(err, &de)
}

// WarningCode categorizes a non-fatal, row-level anomaly.
type WarningCode string

const (
	// MissingMetaboliteWarning: a stoichiometry row names a metabolite that
	// was not assembled (often one discarded for a NULL key).
	MissingMetaboliteWarning WarningCode = "missing_metabolite"

	// MissingReactionWarning: neither the row's reaction id nor any probed
	// copy id exists.
	MissingReactionWarning WarningCode = "missing_reaction"
)

// Warning describes one dropped stoichiometry row.
type Warning struct {
	Code          WarningCode
	ReactionID    string
	ComponentID   string
	CompartmentID string
}

// String renders the warning for logs and CLI summaries.
func (w Warning) String() string {
	switch w.Code {
	case MissingMetaboliteWarning:
		return fmt.Sprintf("metabolite %s not found in compartment %s for reaction %s",
			w.ComponentID, w.CompartmentID, w.ReactionID)
	case MissingReactionWarning:
		return fmt.Sprintf("reaction %s not found for metabolite %s in compartment %s",
			w.ReactionID, w.ComponentID, w.CompartmentID)
	default:
		return fmt.Sprintf("%s: reaction=%s component=%s compartment=%s",
			w.Code, w.ReactionID, w.ComponentID, w.CompartmentID)
	}
}
