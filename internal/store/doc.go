// Package store provides the SQLite record store behind reconstruction and
// genome loading.
//
// The store plays three roles:
//   - Record source: ModelRows streams the gene, reaction, metabolite and
//     stoichiometry rows of one model, in row-id order.
//   - Compartment names: CompartmentNames resolves compartment ids.
//   - Genome persistence: find-or-create genomes, chromosomes, genes and
//     aliases for the genome loader.
//
// Seed loads a YAML dataset of models and universal entities.
//
// # Ordering
//
// Every query orders by integer row id, so equal databases always stream
// rows in the same order. Aliases are LEFT JOINed: an entity without
// aliases still yields one row with an empty alias.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
