package rules

import "regexp"

// Rule is a single ordered rewrite over one line of source text.
//
// Exactly one of Template or Expand is set. Template is a static
// replacement (with $1-style group references). Expand receives the
// submatch groups (groups[0] is the whole match) and returns the
// replacement text; it is used where the output depends on matched
// content in a way a template cannot express, such as normalising
// boolean literal casing or fanning one declaration out into several
// statements.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string
	Expand   func(groups []string) string

	// BoolAssign marks the two boolean-assignment normalisation rules.
	// The transformer skips them on conditional header lines so that
	// `== true` / `== false` comparisons survive inside if / else-if
	// headers instead of collapsing into assignments.
	BoolAssign bool
}

// Apply rewrites line according to the rule. A pattern that does not
// match leaves the line unchanged; there is no error signal.
func (r Rule) Apply(line string) string {
	if r.Expand == nil {
		return r.Pattern.ReplaceAllString(line, r.Template)
	}
	return r.Pattern.ReplaceAllStringFunc(line, func(m string) string {
		return r.Expand(r.Pattern.FindStringSubmatch(m))
	})
}

// static builds a template rule.
func static(pattern, template string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Template: template}
}

// computed builds a function rule.
func computed(pattern string, expand func(groups []string) string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Expand: expand}
}
