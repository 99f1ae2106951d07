// Package selection holds the structured recipe filter a user composes and
// synthesizes it into a canonical Boolean query string.
//
// # State
//
// A State has two include/exclude groups (cuisines and ingredients), an
// ordered list of diets, and the quick/easy flags. Each group keeps two
// disjoint ordered lists: adding a value to one list removes it from the
// other, so a value is never both included and excluded.
//
// # Synthesis
//
// Synthesize projects a State into a query string. Clause parts are emitted
// in a fixed order and joined with " AND ":
//
//	included cuisines, included ingredients, diets, quick, easy,
//	excluded cuisines, excluded ingredients
//
// A group with one value is emitted bare, a group with several values is
// parenthesized and joined with the group's operator. Exclusions are always
// OR-joined inside a single NOT:
//
//	(Italian OR French) AND Chicken AND quick AND NOT (Thai OR Indian)
//
// Values within a group are emitted in insertion order, so two states built
// by the same sequence of edits produce byte-identical queries.
package selection
