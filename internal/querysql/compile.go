package querysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/mealquery/internal/queryir"
)

// ErrInvalidExpr is wrapped by Compile when the expression fails
// queryir.Validate.
var ErrInvalidExpr = errors.New("invalid query expression")

// ingredientExists evaluates an ingredient-scope predicate against all of a
// recipe's ingredients, so "Chicken AND Rice" can match one recipe.
const ingredientExists = "EXISTS (SELECT 1 FROM RecipeIngredients ri " +
	"JOIN Ingredients i ON ri.IngredientId = i.Id " +
	"WHERE ri.RecipeId = r.Id AND %s)"

// SQLCompiler compiles a classified query to a parameterized WHERE clause
// for SQLite.
//
// CRITICAL: All user text is parameterized (never interpolated). Only
// queryir.Fixed nodes, whose SQL comes from vocabulary configuration, are
// emitted verbatim.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts expr to a WHERE clause (without the WHERE keyword).
// Returns (sql, params, error) tuple.
//
// Operands that follow each other without an operator are AND-joined.
// Invalid expressions return an error wrapping ErrInvalidExpr.
func (c *SQLCompiler) Compile(expr queryir.Expr) (string, []any, error) {
	if len(expr.Nodes) == 0 {
		return "1 = 1", nil, nil // Always true
	}

	result := queryir.Validate(expr)
	if !result.IsValid {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidExpr, result.Errors[0])
	}

	w := &clauseWriter{}
	var params []any
	prevOperand := false

	for _, n := range expr.Nodes {
		switch node := n.(type) {
		case queryir.Keyword:
			if prevOperand && (node.Text == queryir.KwNot || node.Text == queryir.KwOpen) {
				w.word(queryir.KwAnd)
			}
			switch node.Text {
			case queryir.KwOpen:
				w.open()
			case queryir.KwClose:
				w.close()
			default:
				w.word(node.Text)
			}
			prevOperand = node.Text == queryir.KwClose
		case queryir.Predicate:
			if prevOperand {
				w.word(queryir.KwAnd)
			}
			sql, predParams, err := c.compilePredicate(node)
			if err != nil {
				return "", nil, err
			}
			w.word(sql)
			params = append(params, predParams...)
			prevOperand = true
		default:
			return "", nil, fmt.Errorf("unsupported node type: %T", n)
		}
	}

	return w.String(), params, nil
}

// compilePredicate compiles one predicate to a parenthesized SQL condition.
// CRITICAL: Values NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	var (
		sql    string
		params []any
		scope  queryir.Scope
	)

	switch pred := p.(type) {
	case queryir.Equals:
		// Joined columns are NULL for recipes without a category or area;
		// NOT must still keep those rows.
		sql = fmt.Sprintf("COALESCE(%s, '') = ? COLLATE NOCASE", pred.Column)
		params = []any{pred.Value}
		scope = pred.Scope
	case queryir.Like:
		sql = fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, pred.Column)
		params = []any{"%" + escapeLike(pred.Value) + "%"}
		scope = pred.Scope
	case queryir.Fixed:
		sql = fmt.Sprintf("%s %s %s", pred.Column, pred.Op, pred.Value)
		scope = pred.Scope
	case queryir.TagMatch:
		// Tags are stored as ",tag1,tag2," so one LIKE matches a whole tag.
		sql = `r.Tags LIKE ? ESCAPE '\'`
		params = []any{"%," + escapeLike(pred.Value) + ",%"}
		scope = queryir.ScopeRecipe
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}

	if scope == queryir.ScopeIngredient {
		return fmt.Sprintf(ingredientExists, sql), params, nil
	}
	return "(" + sql + ")", params, nil
}

// escapeLike escapes LIKE wildcards so a term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// clauseWriter joins SQL words with single spaces, without padding inside
// parentheses.
type clauseWriter struct {
	b         strings.Builder
	afterOpen bool
}

func (w *clauseWriter) word(s string) {
	if w.b.Len() > 0 && !w.afterOpen {
		w.b.WriteByte(' ')
	}
	w.b.WriteString(s)
	w.afterOpen = false
}

func (w *clauseWriter) open() {
	w.word("(")
	w.afterOpen = true
}

func (w *clauseWriter) close() {
	w.b.WriteByte(')')
	w.afterOpen = false
}

func (w *clauseWriter) String() string {
	return w.b.String()
}
