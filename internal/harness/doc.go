// Package harness runs reconstruction scenarios described in YAML.
//
// A scenario supplies the four row streams of one model, optional
// compartment names and linker options, then asserts on the assembled model
// and the warnings the linker produced. Scenarios never touch a database:
// rows go straight into recon.Reconstructor.Build.
//
// # Scenario Format
//
//	name: duplicate_reactions
//	description: "Two instances of PGI become PGI_copy1 and PGI_copy2"
//	model_id: e_coli_core
//	compartments: { c: cytosol }
//	rows:
//	  reactions:
//	    - { instance_id: 1, id: PGI, copy_number: 1 }
//	    - { instance_id: 2, id: PGI, copy_number: 2 }
//	assertions:
//	  - type: entity_ids
//	    kind: reaction
//	    ids: [PGI_copy1, PGI_copy2]
//
// # Assertion Types
//
//   - entity_ids: the ordered identifiers of genes, reactions or metabolites
//   - aliases: the alias list of one entity
//   - stoichiometry: the full coefficient map of one reaction
//   - warning_count: how many warnings carry a code
//   - compartments: the compartment table
//
// A scenario with expect_error instead checks that reconstruction fails.
//
// # Golden Files
//
// RunWithGolden compares the canonical model document and warnings against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
