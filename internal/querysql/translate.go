package querysql

import (
	"regexp"
	"strings"

	"github.com/roach88/mealquery/internal/vocab"
)

// Tautology is the WHERE fragment for a blank query.
const Tautology = "1=1"

// Translator rewrites a Boolean query into a display WHERE fragment by
// running one whole-word, case-insensitive substitution per vocabulary
// table, in table order, over the whole text.
//
// Each pass sees the output of the passes before it, so a later table can
// rewrite text an earlier one emitted. With the default vocabulary
// "vegetarian" first becomes c.CategoryName = 'vegetarian' and the
// vegetarian pass then rewrites the quoted word. The output is for display
// only: nothing is escaped.
//
// A Translator is safe for concurrent use.
type Translator struct {
	passes []pass
}

type pass struct {
	table   vocab.Table
	pattern *regexp.Regexp
}

var (
	notGroup = regexp.MustCompile(`(?i)NOT\s+\(`)
	notTerm  = regexp.MustCompile(`(?i)NOT\s+([^(]\S+)`)
)

// NewTranslator compiles one pass per table of v. A nil v uses
// vocab.Default.
func NewTranslator(v *vocab.Vocabulary) *Translator {
	if v == nil {
		v = vocab.Default()
	}
	t := &Translator{passes: make([]pass, 0, len(v.Tables))}
	for _, tbl := range v.Tables {
		t.passes = append(t.passes, pass{table: tbl, pattern: termPattern(tbl.Terms)})
	}
	return t
}

// termPattern matches any of terms as a whole word, ignoring case.
func termPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Translate returns the WHERE fragment for query. A blank query yields
// Tautology. Keywords and parentheses pass through; unknown terms appear
// verbatim.
func (t *Translator) Translate(query string) string {
	if strings.TrimSpace(query) == "" {
		return Tautology
	}

	where := query
	for _, p := range t.passes {
		where = p.pattern.ReplaceAllStringFunc(where, p.table.Template)
	}

	where = notGroup.ReplaceAllLiteralString(where, "NOT (")
	where = notTerm.ReplaceAllString(where, "NOT ${1}")
	return where
}

// Statement wraps the fragment for query in DisplayStatement. A blank query
// yields the empty string.
func (t *Translator) Statement(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	return DisplayStatement(t.Translate(query))
}
