package parsetree

import (
	"regexp"
	"strings"
)

// ParseTree is the read-only display view of a query.
type ParseTree struct {
	Type           string   `json:"type"`
	Query          string   `json:"query"`
	Structure      string   `json:"structure"`
	Terms          []string `json:"terms"`
	Operators      []string `json:"operators"`
	HasParentheses bool     `json:"hasParentheses"`
	HasNot         bool     `json:"hasNot"`
}

// TypeBooleanQuery is the only ParseTree type.
const TypeBooleanQuery = "BooleanQuery"

// Analyze scans query. It returns nil when query is blank.
func Analyze(query string) *ParseTree {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	terms := []string{}
	operators := []string{}
	for _, tok := range Tokenize(query) {
		if tok.IsOperator() {
			operators = append(operators, tok.Text)
		} else {
			terms = append(terms, tok.Text)
		}
	}

	return &ParseTree{
		Type:           TypeBooleanQuery,
		Query:          query,
		Structure:      FormatStructure(query),
		Terms:          terms,
		Operators:      operators,
		HasParentheses: strings.ContainsAny(query, "()"),
		HasNot:         strings.Contains(query, "NOT"),
	}
}

const (
	structureHeader = "Query Structure:\n\n"
	structureRoot   = "└── "
)

var (
	andBranch = regexp.MustCompile(`\s+AND\s+`)
	orBranch  = regexp.MustCompile(`\s+OR\s+`)
	notBranch = regexp.MustCompile(`NOT\s+`)
)

// FormatStructure renders query as tree-like text by plain substitution.
// Parenthesis depth is not tracked.
func FormatStructure(query string) string {
	if strings.TrimSpace(query) == "" {
		return structureHeader + "(empty query)"
	}

	lines := andBranch.ReplaceAllLiteralString(query, "\n├── AND\n│   ")
	lines = orBranch.ReplaceAllLiteralString(lines, "\n├── OR\n│   ")
	lines = notBranch.ReplaceAllLiteralString(lines, "├── NOT\n│   ")

	return structureHeader + structureRoot + lines
}
