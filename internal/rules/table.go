package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// The two boolean-assignment normalisation rules. They appear in the
// table (so conditional headers can skip them) and are re-applied by the
// transformer after the table for every non-header line. Go's regexp has
// no backreferences, so the identifier is captured once and reused via $1.
var (
	assignTrue = Rule{
		Pattern:    regexp.MustCompile(`(?i)^(\w+)\s*==\s*true\s*$`),
		Template:   "$1 = true;",
		BoolAssign: true,
	}
	assignFalse = Rule{
		Pattern:    regexp.MustCompile(`(?i)^(\w+)\s*==\s*false\s*$`),
		Template:   "$1 = false;",
		BoolAssign: true,
	}
)

// table is built once and never mutated afterwards.
var table = buildTable()

// Table returns the full rewrite table in application order. Callers
// must treat the returned slice as read-only.
func Table() []Rule {
	return table
}

// PostAssign returns the fixed boolean-assignment rules the transformer
// applies after the table on non-conditional lines.
func PostAssign() []Rule {
	return []Rule{assignTrue, assignFalse}
}

func buildTable() []Rule {
	return []Rule{
		// Script-block delimiters. Adjacent whitespace is consumed so a
		// one-line <% ... %> block leaves an anchorable statement behind.
		static(`<%=?\s*`, ""),
		static(`\s*%>`, ""),

		// Date/time idioms. Comparisons against a quoted bound must run
		// before the bare Date() rewrite eats the call.
		static(`(?i)\bdate\(\)\s*(<=|>=|<|>)\s*"([^"]+)"`, `DateTime.Now $1 DateTime.Parse("$2")`),
		static(`(?i)"([^"]+)"\s*(<=|>=|<|>)\s*date\(\)`, `DateTime.Parse("$1") $2 DateTime.Now`),
		static(`(?i)\bnow\(\)`, "DateTime.Now"),
		static(`(?i)\bdate\(\)`, `DateTime.Now.ToString("yyyy-MM-dd")`),

		// Request / Response / Session accessors. Only the query-string
		// lookup gets the empty-string fallback; missing form fields and
		// session keys keep the indexer shape.
		static(`(?i)request\.querystring\("([^"]+)"\)`, `Request.QueryString["$1"] ?? ""`),
		static(`(?i)request\.form\("([^"]+)"\)`, `Request.Form["$1"]`),
		static(`(?i)\bsession\("([^"]+)"\)`, `Session["$1"]`),
		static(`(?i)^response\.write\s+(.+)$`, `Response.Write($1);`),

		// String and array built-ins.
		static(`(?i)\blen\(([^)]+)\)`, `${1}.Length`),
		static(`(?i)\bleft\(([^,]+),\s*([^)]+)\)`, `${1}.Substring(0, $2)`),
		static(`(?i)\bright\(([^,]+),\s*([^)]+)\)`, `${1}.Substring(${1}.Length - $2)`),
		static(`(?i)\bucase\(([^)]+)\)`, `${1}.ToUpper()`),
		static(`(?i)\blcase\(([^)]+)\)`, `${1}.ToLower()`),
		static(`(?i)\btrim\(([^)]+)\)`, `${1}.Trim()`),
		static(`(?i)\breplace\(([^,]+),\s*([^,]+),\s*([^)]+)\)`, `${1}.Replace($2, $3)`),
		static(`(?i)\bisarray\(([^)]+)\)`, `($1 is Array)`),
		static(`(?i)\bubound\(([^)]+)\)`, `(${1}.Length - 1)`),

		// Conditionals. These run before the operator rules so the bare
		// `=` inside a condition is still available to become `==`.
		static(`(?i)^if\s+(.+)\s+then$`, `if ($1) {`),
		static(`(?i)^else\s?if\s+(.+)\s+then$`, `} else if ($1) {`),
		bareElse(),
		static(`(?i)^end\s+if$`, "}"),

		// Literals and operators.
		static(`(?i)\btrue\b`, "true"),
		static(`(?i)\bfalse\b`, "false"),
		static(`<>`, "!="),
		static(` = `, " == "),
		static(`(?i)\band\b`, "&&"),
		static(`(?i)\bor\b`, "||"),
		static(`(?i)\bnot\s+`, "!"),
		static(` & `, " + "),

		// Trailing single-quote comment.
		static(`'(.*)$`, "//$1"),

		// Select Case. "Case Else" must be claimed before the generic
		// case-label rule turns it into a quoted label.
		static(`(?i)^select\s+case\s+(.+)$`, `switch ($1) {`),
		static(`(?i)^end\s+select$`, "}"),
		static(`(?i)^case\s+else$`, "default:"),
		static(`(?i)^case\s+"?([^":]+)"?$`, `case "$1":`),

		// Loops and procedure headers. These sit after the operator
		// rules, so the assignment in a For header has already become
		// `==` and is matched as such.
		static(`(?i)^for\s+each\s+(\w+)\s+in\s+(.+)$`, `foreach (var $1 in $2) {`),
		static(`(?i)^for\s+(\w+)\s*==?\s*(.+)\s+to\s+(.+)$`, `for (int $1 = $2; $1 <= $3; ${1}++) {`),
		static(`(?i)^next$`, "}"),
		static(`(?i)^function\s+(\w+)\s*(?:\((.*)\))?$`, `public string $1($2) {`),
		static(`(?i)^sub\s+(\w+)\s*(?:\((.*)\))?$`, `public void $1($2) {`),
		static(`(?i)^end\s+(?:function|sub)$`, "}"),

		// Declarations, most specific first. The declare-and-assign
		// patterns accept both `=` and `==` because the operator rules
		// above have usually rewritten the assignment already.
		boolDecl(),
		static(`(?i)^dim\s+\w+\s*:\s*(\w+)\s*==?\s*"(.*)"\s*$`, `string $1 = "$2";`),
		static(`(?i)^dim\s+\w+\s*:\s*(\w+)\s*==?\s*(\d+\.\d+)\s*$`, `double $1 = $2;`),
		static(`(?i)^dim\s+\w+\s*:\s*(\w+)\s*==?\s*(\d+)\s*$`, `int $1 = $2;`),
		bareDecl(),

		// Boolean assignments take priority over the generic
		// equality-to-assignment rule below; conditional headers skip
		// them (see Rule.BoolAssign).
		assignTrue,
		assignFalse,

		// A whole line of the shape `name == expr` is an assignment, not
		// a condition: undo the blanket `=` → `==` rewrite and terminate
		// the statement.
		static(`^(\w+)\s*==\s*(.+)$`, `$1 = $2;`),
	}
}

// bareElse rewrites a lone `Else` into `} else {`. RE2 has no negative
// lookahead, so the optional `if` is captured and the match is returned
// untouched when it is present: an `Else If ... Then` line is the
// else-if rule's business, not ours.
func bareElse() Rule {
	return computed(`(?i)^else\b(\s*if\b)?`, func(groups []string) string {
		if groups[1] != "" {
			return groups[0]
		}
		return "} else {"
	})
}

// boolDecl rewrites `Dim x : x = True` into an explicit boolean
// declaration. Computed because the literal casing must be normalised
// regardless of how the source spelled it.
func boolDecl() Rule {
	return computed(`(?i)^dim\s+\w+\s*:\s*(\w+)\s*==?\s*(true|false)\s*$`, func(groups []string) string {
		return fmt.Sprintf("bool %s = %s;", groups[1], strings.ToLower(groups[2]))
	})
}

// bareDecl fans a declaration without assignment out into one
// empty-string declaration per name, each on its own line.
func bareDecl() Rule {
	return computed(`(?i)^dim\s+([a-z_]\w*(?:\s*,\s*[a-z_]\w*)*)\s*$`, func(groups []string) string {
		names := strings.Split(groups[1], ",")
		decls := make([]string, 0, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			decls = append(decls, fmt.Sprintf("string %s = \"\";", name))
		}
		return strings.Join(decls, "\n")
	})
}
