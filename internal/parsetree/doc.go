// Package parsetree scans a Boolean recipe query into a flat, displayable
// structure.
//
// The scan is deliberately linear. It does not build nested sub-expressions
// or apply operator precedence; it reports the keywords and parentheses it
// found, in order, and the free-text terms left between them. Malformed input
// (unbalanced parentheses, dangling operators) is reported as found, never
// rejected.
//
// Keywords are AND, OR and NOT, matched case-sensitively as whole words.
// Anything else separated by whitespace or parentheses is a term:
//
//	(Italian OR French) AND NOT quick
//
//	operators: ( OR ) AND NOT
//	terms:     Italian French quick
package parsetree
