// Package recon rebuilds a network model from flat record-source rows.
//
// The pipeline runs strictly forward, one stage at a time, each stage seeing
// the complete output of its predecessor:
//
//  1. Aggregate: collapse physical rows sharing a grouping key into one
//     logical entity with the union of their aliases (first row names it)
//  2. ResolveDuplicates: rename reaction instances that share a public
//     identifier to <id>_copy<N>, keyed by copy number, never arrival order
//  3. Assemble: build the gene, reaction and metabolite collections and the
//     compartment table; a repeated identifier aborts with
//     DuplicateIdentifierError
//  4. Link: attach stoichiometry rows to reactions, probing copy ids when
//     the row names a pre-resolution identifier
//
// Row-level anomalies are warnings and never abort. Collection-level
// invariant violations always abort. Nothing here performs I/O except the
// calls made on the Source and CompartmentNamer collaborators.
package recon
