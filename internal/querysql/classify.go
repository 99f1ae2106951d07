package querysql

import (
	"github.com/roach88/mealquery/internal/parsetree"
	"github.com/roach88/mealquery/internal/queryir"
	"github.com/roach88/mealquery/internal/vocab"
)

// Classifier turns query tokens into IR nodes for execution.
//
// Unlike Translator, each term is classified exactly once: the first
// vocabulary table, in order, that lists the term claims it. Terms no table
// lists become TagMatch nodes.
type Classifier struct {
	vocab *vocab.Vocabulary
}

// NewClassifier returns a Classifier over v. A nil v uses vocab.Default.
func NewClassifier(v *vocab.Vocabulary) *Classifier {
	if v == nil {
		v = vocab.Default()
	}
	return &Classifier{vocab: v}
}

// Classify tokenizes and classifies query.
func (c *Classifier) Classify(query string) queryir.Expr {
	return c.ClassifyTokens(query, parsetree.Tokenize(query))
}

// ClassifyTokens classifies tokens already produced by parsetree.Tokenize.
func (c *Classifier) ClassifyTokens(query string, tokens []parsetree.Token) queryir.Expr {
	expr := queryir.Expr{Query: query, Nodes: make([]queryir.Node, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.IsOperator() {
			expr.Nodes = append(expr.Nodes, queryir.Keyword{Text: tok.Text, Pos: tok.Pos})
			continue
		}
		expr.Nodes = append(expr.Nodes, c.predicate(tok))
	}
	return expr
}

func (c *Classifier) predicate(tok parsetree.Token) queryir.Predicate {
	term := queryir.Term{Text: tok.Text, Pos: tok.Pos}

	tbl, ok := c.vocab.Classify(tok.Text)
	if !ok {
		return queryir.TagMatch{Term: term, Value: tok.Text}
	}

	scope := queryir.ScopeRecipe
	if tbl.Scope == vocab.ScopeIngredient {
		scope = queryir.ScopeIngredient
	}

	switch tbl.Kind {
	case vocab.KindLike:
		return queryir.Like{Term: term, Table: tbl.Name, Column: tbl.Column, Value: tok.Text, Scope: scope}
	case vocab.KindFixed:
		return queryir.Fixed{Term: term, Table: tbl.Name, Column: tbl.Column, Op: tbl.Op, Value: tbl.Value, Scope: scope}
	default:
		return queryir.Equals{Term: term, Table: tbl.Name, Column: tbl.Column, Value: tok.Text, Scope: scope}
	}
}
