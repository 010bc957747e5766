// Package model provides the row and entity types for metnet.
//
// Rows are the flat records handed over by a record source. Entities are the
// reconciled genes, reactions and metabolites of an assembled model.
//
// This package imports nothing internal. All other internal packages import
// model; model stays the foundational layer with no circular dependencies.
//
// Key constraints:
//   - Each entity kind lives in its own keyed Collection, never a shared namespace
//   - Relationships are keyed references (reaction stoichiometry keyed by metabolite id)
//   - Empty strings stand in for SQL NULL on row identifier fields
package model
