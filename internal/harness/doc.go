// Package harness runs catalog scenarios: scripted sequences of catalog
// operations with expected outcomes, executed against a fresh in-memory
// record store.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	seed: true                  # start from the default products
//	setup:
//	  - op: insert
//	    product: { name: Mochila, colors: [Marrom] }
//	flow:
//	  - op: search_color
//	    term: marrom
//	    expect:
//	      names: [Mochila]
//	  - op: get
//	    id: 99
//	    expect:
//	      error: product not found
//	assertions:
//	  - type: final_count
//	    count: 5
//	  - type: final_state
//	    where: { name: Mochila }
//	    expect: { colors: [Marrom] }
//
// # Operations
//
//   - insert: validates and inserts product; the trace records the new id
//   - update: validates and replaces every field of product id
//   - delete: removes product id
//   - get: reads product id
//   - list: lists every product
//   - search_name, search_color: substring searches for term
//
// # Assertion Types
//
//   - final_count: the table holds exactly count products
//   - final_state: a product matching every where field exists and carries
//     the expected field values (subset match)
//   - trace_count: op was executed exactly count times
//   - trace_order: ops were executed in the given order
//
// # Deterministic Testing
//
// Every run starts from an empty in-memory SQLite database, so ids and traces
// are reproducible and can be compared against golden files with
// RunWithGolden.
package harness
