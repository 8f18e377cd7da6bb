// Package rules defines the ordered rewrite table that turns Classic
// ASP/VBScript lines into C#-flavoured lines.
//
// The table is a flat, immutable sequence of (pattern, rewrite) pairs.
// Order is load-bearing: later rules run against the output of earlier
// ones, so delimiter stripping precedes keyword rewriting, keyword
// rewriting precedes operator rewriting, and the trailing
// equality-to-assignment rule runs last to undo the blanket `=` → `==`
// substitution on lines that turned out to be assignments.
//
// Package rules performs no IO and holds no mutable state; the compiled
// table is safe to share across concurrent callers. Line iteration and
// context classification live in internal/convert.
package rules
