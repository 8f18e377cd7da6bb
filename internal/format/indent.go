// Package format re-indents the transformer's output. It is a purely
// cosmetic pass: leading whitespace is the only thing it touches.
package format

import "strings"

// indentUnit is the whitespace prefixed per nesting level.
const indentUnit = "    "

// Indent tracks a brace/case nesting depth across lines and prefixes
// each line with depth repetitions of the indent unit.
//
// A line that is exactly a closing brace drops one level before it is
// emitted; a line ending in an opening brace or a case-label colon
// raises the level after it is emitted. Depth never goes below zero, so
// excess closing braces flatten to column 0 instead of failing.
func Indent(src string) string {
	var b strings.Builder
	b.Grow(len(src) + len(src)/4)

	depth := 0
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "}" && depth > 0 {
			depth--
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString(line)
		if strings.HasSuffix(line, "{") || strings.HasSuffix(line, ":") {
			depth++
		}
	}
	return b.String()
}
