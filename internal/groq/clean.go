package groq

import (
	"regexp"
	"strings"
)

// fenceRe strips markdown code fences the model likes to wrap its
// answer in, with or without a language tag.
var fenceRe = regexp.MustCompile("```(?:csharp|cs|c#)?\n?")

// prosePrefixes mark explanation lines that are not code and get
// dropped wholesale.
var prosePrefixes = []string{"///", "Here", "Note:", "The converted", "Output:", "This converts"}

// CleanOutput removes documentation fencing and prose from a model
// response, leaving only code lines.
func CleanOutput(output string) string {
	if output == "" {
		return ""
	}
	output = fenceRe.ReplaceAllString(strings.TrimSpace(output), "")

	var kept []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isProse(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isProse(line string) bool {
	for _, prefix := range prosePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// corrections is the post-processing pass applied to cleaned model
// output. The model is good but not exact; these patch the recurring
// slips (stringly-typed booleans, leftover VBScript operators, unwrapped
// web-object accessors, missing terminators).
var corrections = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Boolean declarations that came back as strings.
	{regexp.MustCompile(`(?im)string\s+(\w+)\s*=\s*"?False"?\s*;`), `bool $1 = false;`},
	{regexp.MustCompile(`(?im)string\s+(\w+)\s*=\s*"?True"?\s*;`), `bool $1 = true;`},

	// Leftover VBScript operators.
	{regexp.MustCompile(`[^\S\n]+&[^\S\n]+`), ` + `},
	{regexp.MustCompile(`[^\S\n]+<>[^\S\n]+`), ` != `},
	{regexp.MustCompile(`(?m)\bAnd\b`), `&&`},
	{regexp.MustCompile(`(?m)\bOr\b`), `||`},
	{regexp.MustCompile(`(?m)\bNot\s+`), `!`},

	// Web-object accessors. RE2 has no lookahead, so the unterminated
	// Response.Write form is bounded by line instead.
	{regexp.MustCompile(`(?im)Response\.Write\s+([^;\n]+)$`), `Response.Write($1);`},
	{regexp.MustCompile(`(?i)Request\.QueryString\("([^"]+)"\)`), `Request.QueryString["$1"]`},
	{regexp.MustCompile(`(?i)Request\.Form\("([^"]+)"\)`), `Request.Form["$1"]`},
	{regexp.MustCompile(`(?i)Session\("([^"]+)"\)`), `Session["$1"]`},

	// String functions.
	{regexp.MustCompile(`(?i)\bLen\(([^)]+)\)`), `${1}.Length`},
	{regexp.MustCompile(`(?i)\bUCase\(([^)]+)\)`), `${1}.ToUpper()`},
	{regexp.MustCompile(`(?i)\bLCase\(([^)]+)\)`), `${1}.ToLower()`},
	{regexp.MustCompile(`(?i)\bTrim\(([^)]+)\)`), `${1}.Trim()`},

	// Array functions.
	{regexp.MustCompile(`(?i)\bIsArray\(([^)]+)\)`), `($1 is Array)`},
	{regexp.MustCompile(`(?i)\bUBound\(([^)]+)\)`), `(${1}.Length - 1)`},

	// Terminator cleanup.
	{regexp.MustCompile(`(?m)([^;{}\s])[^\S\n]*\n`), "$1;\n"},
	{regexp.MustCompile(`;;+`), `;`},
	{regexp.MustCompile(`}[^\S\n]*;`), `}`},
}

// Postprocess applies the correction rules to cleaned output.
func Postprocess(code string) string {
	if code == "" {
		return ""
	}
	code = strings.TrimSpace(code)
	for _, c := range corrections {
		code = c.re.ReplaceAllString(code, c.repl)
	}
	return strings.TrimSpace(code)
}
