package model

// GeneRow is one physical gene row joined with at most one historical alias.
type GeneRow struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// ReactionRow is one physical model-reaction row joined with at most one alias.
//
// InstanceID is the physical row identity. Several rows may share ID and
// differ in InstanceID and CopyNumber.
type ReactionRow struct {
	InstanceID           int64   `yaml:"instance_id" json:"instance_id"`
	ID                   string  `yaml:"id" json:"id"`
	Name                 string  `yaml:"name" json:"name"`
	GeneReactionRule     string  `yaml:"gene_reaction_rule" json:"gene_reaction_rule"`
	LowerBound           float64 `yaml:"lower_bound" json:"lower_bound"`
	UpperBound           float64 `yaml:"upper_bound" json:"upper_bound"`
	ObjectiveCoefficient float64 `yaml:"objective_coefficient" json:"objective_coefficient"`
	Subsystem            string  `yaml:"subsystem" json:"subsystem"`
	CopyNumber           int     `yaml:"copy_number" json:"copy_number"`
	Alias                string  `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// MetaboliteRow is one compartmentalized metabolite row of a model.
// An empty ComponentID or CompartmentID means the source value was NULL.
type MetaboliteRow struct {
	ComponentID   string `yaml:"component_id" json:"component_id"`
	CompartmentID string `yaml:"compartment_id" json:"compartment_id"`
	Name          string `yaml:"name" json:"name"`
	Formula       string `yaml:"formula" json:"formula"`
	Charge        *int   `yaml:"charge,omitempty" json:"charge,omitempty"`
	Alias         string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// StoichiometryRow links a reaction to a compartmentalized metabolite.
// ReactionID is always the pre-resolution public identifier.
type StoichiometryRow struct {
	Coefficient   float64 `yaml:"coefficient" json:"coefficient"`
	ReactionID    string  `yaml:"reaction_id" json:"reaction_id"`
	ComponentID   string  `yaml:"component_id" json:"component_id"`
	CompartmentID string  `yaml:"compartment_id" json:"compartment_id"`
}

// Rows bundles the four row streams of one model.
type Rows struct {
	Genes         []GeneRow          `yaml:"genes" json:"genes"`
	Reactions     []ReactionRow      `yaml:"reactions" json:"reactions"`
	Metabolites   []MetaboliteRow    `yaml:"metabolites" json:"metabolites"`
	Stoichiometry []StoichiometryRow `yaml:"stoichiometry" json:"stoichiometry"`
}
