// Package convert drives the line-oriented ASP → C# rewrite.
//
// Transform walks the input line by line, classifies each line as a
// conditional header or not, and applies the rule table from
// internal/rules in declaration order. Convert composes Transform with
// the indentation pass from internal/format.
//
// Both functions are pure: no IO, no shared state, no failure modes.
// Re-running Convert on its own output is allowed but not guaranteed to
// be a fixed point; the bare `=` rewrite can fire on C#-like text too.
package convert
