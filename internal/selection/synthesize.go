package selection

import "strings"

// Synthesize returns the canonical Boolean query for s.
// An empty state yields the empty string.
func Synthesize(s *State) string {
	if s == nil {
		return ""
	}

	var parts []string
	add := func(part string) {
		if part != "" {
			parts = append(parts, part)
		}
	}

	add(group(s.Cuisines.Include, s.Cuisines.Operator))
	add(group(s.Ingredients.Include, s.Ingredients.Operator))
	add(group(s.Diets, s.DietOperator))
	if s.Quick {
		add("quick")
	}
	if s.Easy {
		add("easy")
	}
	add(negated(s.Cuisines.Exclude))
	add(negated(s.Ingredients.Exclude))

	return strings.Join(parts, " AND ")
}

func group(values []string, op Operator) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	if op == "" {
		op = And
	}
	return "(" + strings.Join(values, " "+string(op)+" ") + ")"
}

// Exclusions are OR-joined regardless of the include operator.
func negated(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return "NOT " + values[0]
	}
	return "NOT (" + strings.Join(values, " OR ") + ")"
}
