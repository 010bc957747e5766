package model

// Gene is a reconciled gene.
type Gene struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Reaction is a reconciled reaction instance.
//
// BaseID is the public identifier before duplicate resolution. ID equals
// BaseID unless the instance shared its identifier with another instance.
type Reaction struct {
	ID                   string             `json:"id"`
	BaseID               string             `json:"base_id"`
	Name                 string             `json:"name"`
	GeneReactionRule     string             `json:"gene_reaction_rule"`
	LowerBound           float64            `json:"lower_bound"`
	UpperBound           float64            `json:"upper_bound"`
	ObjectiveCoefficient float64            `json:"objective_coefficient"`
	Subsystem            string             `json:"subsystem"`
	CopyNumber           int                `json:"copy_number"`
	Aliases              []string           `json:"aliases"`
	Stoichiometry        map[string]float64 `json:"stoichiometry"`
}

// AddMetabolite records a coefficient for metaboliteID.
// Returns false, leaving the map untouched, if the metabolite is already present.
func (r *Reaction) AddMetabolite(metaboliteID string, coefficient float64) bool {
	if r.Stoichiometry == nil {
		r.Stoichiometry = make(map[string]float64)
	}
	if _, ok := r.Stoichiometry[metaboliteID]; ok {
		return false
	}
	r.Stoichiometry[metaboliteID] = coefficient
	return true
}

// Metabolite is a reconciled compartmentalized metabolite.
type Metabolite struct {
	ID            string   `json:"id"`
	ComponentID   string   `json:"component_id"`
	CompartmentID string   `json:"compartment"`
	Name          string   `json:"name"`
	Formula       string   `json:"formula"`
	Charge        *int     `json:"charge"`
	Aliases       []string `json:"aliases"`
}

// Model is an assembled network. Collections are keyed by final identifier.
// Compartments maps a compartment id to its display name.
type Model struct {
	ID           string
	Genes        *Collection[*Gene]
	Reactions    *Collection[*Reaction]
	Metabolites  *Collection[*Metabolite]
	Compartments map[string]string
}

// NewModel returns an empty model with initialized collections.
func NewModel(id string) *Model {
	return &Model{
		ID:           id,
		Genes:        NewCollection[*Gene](),
		Reactions:    NewCollection[*Reaction](),
		Metabolites:  NewCollection[*Metabolite](),
		Compartments: make(map[string]string),
	}
}
