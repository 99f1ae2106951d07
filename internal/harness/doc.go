// Package harness runs query scenarios: YAML files that pin down what the
// query pipeline produces for a selection, a preset or a literal query.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: weeknight
//	description: "Quick chicken dinner"
//	selection:              # or query: "...", or preset: Weeknight
//	  cuisines: {include: [Italian], exclude: [Thai], operator: OR}
//	  ingredients: {include: [Chicken], operator: AND}
//	  diets: [vegetarian]
//	  diet_operator: AND
//	  quick: true
//	  easy: false
//	recipes:                # optional; enables expect.results
//	  - {id: r1, name: Pad Thai, area: Thai}
//	expect:
//	  query: "..."
//	  terms: [...]
//	  operators: [...]
//	  has_parentheses: false
//	  has_not: true
//	  where: "..."
//	  valid: true
//	  results: [Pad Thai]
//
// Every expectation is optional; only the ones present are checked.
//
// # Golden Files
//
// RunWithGolden and AssertGolden compare a text snapshot of the result
// (query, parse tree structure, WHERE fragment, validation issues, result
// names) against testdata/golden/<name>.golden. To regenerate golden files,
// run:
//
//	go test ./internal/harness -update
//
// # Determinism
//
// Each scenario with recipes runs in a fresh in-memory database. The search
// clock and request IDs are fixed, so snapshots are byte-identical across
// runs.
package harness
