package queryir

// Node is one element of a classified query, in source order.
//
// This is a sealed interface - only types in this package implement it.
type Node interface {
	node() // Marker method - seals interface to this package
}

// Predicate is a Node produced from a term.
//
// Predicate types:
//   - Equals: column equals the term
//   - Like: column contains the term
//   - Fixed: configured comparison, independent of the term's spelling
//   - TagMatch: recipe tags contain the term (unclassified terms)
type Predicate interface {
	Node
	predicateNode()
	// Source returns the term the predicate was built from.
	Source() Term
}

// Scope says where a predicate's column lives. Ingredient-scope predicates
// are evaluated against a recipe's ingredient rows.
type Scope string

const (
	ScopeRecipe     Scope = "recipe"
	ScopeIngredient Scope = "ingredient"
)

// Term is the original text and byte offset of a query term.
type Term struct {
	Text string
	Pos  int
}

// Keyword is AND, OR, NOT, "(" or ")".
type Keyword struct {
	Text string
	Pos  int
}

func (Keyword) node() {}

// Keyword texts.
const (
	KwAnd   = "AND"
	KwOr    = "OR"
	KwNot   = "NOT"
	KwOpen  = "("
	KwClose = ")"
)

// IsBinary reports whether k is AND or OR.
func (k Keyword) IsBinary() bool {
	return k.Text == KwAnd || k.Text == KwOr
}

// Equals matches rows whose column equals Value, ignoring case.
//
// Semantics:
//
//	<column> = <value>
type Equals struct {
	Term   Term
	Table  string // vocabulary table that classified the term
	Column string
	Value  string
	Scope  Scope
}

func (Equals) node() {}
func (Equals) predicateNode() {}
func (e Equals) Source() Term { return e.Term }

// Like matches rows whose column contains Value as a substring.
//
// Semantics:
//
//	<column> LIKE '%<value>%'
type Like struct {
	Term   Term
	Table  string
	Column string
	Value  string
	Scope  Scope
}

func (Like) node() {}
func (Like) predicateNode() {}
func (l Like) Source() Term { return l.Term }

// Fixed is a comparison whose operator and right-hand side come from
// configuration, e.g. "quick" → r.CookTimeMinutes <= 30.
//
// Semantics:
//
//	<column> <op> <value>
type Fixed struct {
	Term   Term
	Table  string
	Column string
	Op     string
	Value  string // SQL literal text
	Scope  Scope
}

func (Fixed) node() {}
func (Fixed) predicateNode() {}
func (f Fixed) Source() Term { return f.Term }

// TagMatch matches recipes tagged with Value. Terms no vocabulary table
// recognizes fall through to it.
type TagMatch struct {
	Term  Term
	Value string
}

func (TagMatch) node() {}
func (TagMatch) predicateNode() {}
func (t TagMatch) Source() Term { return t.Term }

// Expr is a classified query.
type Expr struct {
	Query string
	Nodes []Node
}

// Predicates returns the predicate nodes in order.
func (e Expr) Predicates() []Predicate {
	var preds []Predicate
	for _, n := range e.Nodes {
		if p, ok := n.(Predicate); ok {
			preds = append(preds, p)
		}
	}
	return preds
}
