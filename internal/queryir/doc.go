// Package queryir provides the intermediate representation a recipe query is
// classified into before it is compiled for execution.
//
// ARCHITECTURE:
//
// The display path and the execution path share the same query string but
// diverge after tokenizing:
//
//	[query] → [parsetree tokens] → [Query IR] → [parameterized SQL]
//	        → [display translator] → [WHERE fragment shown to users]
//
// The IR keeps the flat shape of the token stream. There is no precedence
// tree: keywords and parentheses stay in place and every term becomes a
// predicate node. Compilers walk the nodes left to right.
//
// SEALED INTERFACES:
//
// Node and Predicate are sealed interfaces using the marker method pattern.
// Only types in this package implement them, so compilers can switch
// exhaustively:
//
//	switch n := node.(type) {
//	case Keyword:
//	case Equals, Like, Fixed, TagMatch:
//	}
//
// VALUES:
//
// Equals, Like and TagMatch carry user text and must be bound as
// parameters. Fixed carries SQL taken from vocabulary configuration and is
// the only node a compiler may emit verbatim.
//
// VALIDATION:
//
// Validate checks the node sequence for structural problems (unbalanced
// parentheses, operators without operands) that would produce invalid SQL,
// and warns about terms no vocabulary table recognized.
package queryir
