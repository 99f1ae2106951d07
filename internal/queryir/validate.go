package queryir

import "fmt"

// Issue codes reported by Validate.
const (
	IssueEmpty            = "empty_query"
	IssueUnbalancedParen  = "unbalanced_paren"
	IssueEmptyGroup       = "empty_group"
	IssueMisplacedOp      = "misplaced_operator"
	IssueMissingOperand   = "missing_operand"
	IssueUnclassifiedTerm = "unclassified_term"
	IssueImplicitAnd      = "implicit_and"
)

// Issue is one finding of Validate. Pos is a byte offset into the query,
// or -1 when the issue concerns the end of the query.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Pos     int    `json:"pos"`
}

func (i Issue) String() string {
	if i.Pos < 0 {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s at %d: %s", i.Code, i.Pos, i.Message)
}

// ValidationResult contains the structural analysis of an expression.
type ValidationResult struct {
	// IsValid is true when the expression compiles to well-formed SQL.
	IsValid bool

	// Errors make the expression uncompilable.
	Errors []Issue

	// Warnings are accepted but worth reporting: unclassified terms are
	// matched against tags, adjacent operands are AND-joined.
	Warnings []Issue
}

// Validate checks that keywords and operands alternate correctly and that
// parentheses balance.
//
// Validate is a pure function with no side effects.
func Validate(expr Expr) ValidationResult {
	v := &validator{}
	v.walk(expr.Nodes)
	return ValidationResult{
		IsValid:  len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

// position is what the previous node allows next.
type position int

const (
	atStart position = iota
	afterOperand
	afterBinary
	afterNot
	afterOpen
)

type validator struct {
	errors   []Issue
	warnings []Issue
}

func (v *validator) fail(code string, pos int, format string, args ...any) {
	v.errors = append(v.errors, Issue{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (v *validator) warn(code string, pos int, format string, args ...any) {
	v.warnings = append(v.warnings, Issue{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (v *validator) walk(nodes []Node) {
	if len(nodes) == 0 {
		v.fail(IssueEmpty, -1, "query has no terms")
		return
	}

	var open []int // positions of unclosed "("
	prev := atStart

	for _, n := range nodes {
		switch node := n.(type) {
		case Keyword:
			switch {
			case node.IsBinary():
				if prev != afterOperand {
					v.fail(IssueMisplacedOp, node.Pos, "%s needs an operand on its left", node.Text)
				}
				prev = afterBinary
			case node.Text == KwNot:
				if prev == afterOperand {
					v.warn(IssueImplicitAnd, node.Pos, "NOT follows an operand; treated as AND NOT")
				}
				prev = afterNot
			case node.Text == KwOpen:
				if prev == afterOperand {
					v.warn(IssueImplicitAnd, node.Pos, "group follows an operand; treated as AND")
				}
				open = append(open, node.Pos)
				prev = afterOpen
			case node.Text == KwClose:
				switch {
				case len(open) == 0:
					v.fail(IssueUnbalancedParen, node.Pos, "unexpected )")
				case prev == afterOpen:
					v.fail(IssueEmptyGroup, node.Pos, "empty parentheses")
				case prev == afterBinary || prev == afterNot:
					v.fail(IssueMissingOperand, node.Pos, "operator before ) has no operand")
				}
				if len(open) > 0 {
					open = open[:len(open)-1]
				}
				prev = afterOperand
			default:
				v.fail(IssueMisplacedOp, node.Pos, "unknown keyword %q", node.Text)
			}
		case Predicate:
			term := node.Source()
			if prev == afterOperand {
				v.warn(IssueImplicitAnd, term.Pos, "%q follows an operand; treated as AND", term.Text)
			}
			if _, ok := node.(TagMatch); ok {
				v.warn(IssueUnclassifiedTerm, term.Pos, "%q is not in any vocabulary table; matched against tags", term.Text)
			}
			prev = afterOperand
		default:
			v.fail(IssueMisplacedOp, -1, "unknown node type %T", n)
		}
	}

	if prev == afterBinary || prev == afterNot {
		v.fail(IssueMissingOperand, -1, "query ends with an operator")
	}
	for _, pos := range open {
		v.fail(IssueUnbalancedParen, pos, "unclosed (")
	}
}
