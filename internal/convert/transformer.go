package convert

import (
	"strings"

	"github.com/secretm224/asp-to-dotnet-converter/internal/rules"
)

// Transform rewrites every line of src through the rule table and
// returns the newline-joined result. Each input line yields exactly one
// output chunk, in input order; a fan-out rule may embed newlines in its
// chunk, so the output line count is a superset of the input's, never a
// subset. Unmatched rules are no-ops, so Transform never fails, whatever
// the input looks like.
func Transform(src string) string {
	if src == "" {
		return ""
	}

	table := rules.Table()
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		header := isConditionHeader(line)

		for _, rule := range table {
			if rule.BoolAssign && header {
				// Conditional headers keep `== true` / `== false`
				// comparisons instead of collapsing into assignments.
				continue
			}
			line = rule.Apply(line)
		}

		if !header {
			for _, rule := range rules.PostAssign() {
				line = rule.Apply(line)
			}
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// isConditionHeader reports whether the trimmed line opens a condition.
// Computed from the original line before any rule has touched it.
func isConditionHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "if ") || strings.HasPrefix(lower, "else if ")
}
