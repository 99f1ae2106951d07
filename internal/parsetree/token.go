package parsetree

import (
	"regexp"
	"unicode"
)

// Kind classifies a token.
type Kind int

const (
	// Term is free text: a vocabulary value or an unknown word.
	Term Kind = iota
	// Keyword is AND, OR or NOT.
	Keyword
	// Paren is "(" or ")".
	Paren
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Paren:
		return "paren"
	default:
		return "term"
	}
}

// Token is one lexeme of a query. Pos is the byte offset in the query.
type Token struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Pos  int    `json:"pos"`
}

// IsOperator reports whether the token belongs in ParseTree.Operators.
func (t Token) IsOperator() bool {
	return t.Kind != Term
}

var operatorPattern = regexp.MustCompile(`\b(AND|OR|NOT)\b|\(|\)`)

// Tokenize splits query into keywords, parentheses and terms, left to right.
// Text between operators is split on whitespace; each piece is a term.
func Tokenize(query string) []Token {
	var tokens []Token
	last := 0
	for _, loc := range operatorPattern.FindAllStringIndex(query, -1) {
		tokens = appendTerms(tokens, query[last:loc[0]], last)
		text := query[loc[0]:loc[1]]
		kind := Keyword
		if text == "(" || text == ")" {
			kind = Paren
		}
		tokens = append(tokens, Token{Kind: kind, Text: text, Pos: loc[0]})
		last = loc[1]
	}
	return appendTerms(tokens, query[last:], last)
}

func appendTerms(tokens []Token, segment string, offset int) []Token {
	start := -1
	for i, r := range segment {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Kind: Term, Text: segment[start:i], Pos: offset + start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Kind: Term, Text: segment[start:], Pos: offset + start})
	}
	return tokens
}
