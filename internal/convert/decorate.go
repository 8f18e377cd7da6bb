package convert

import (
	"fmt"
	"strings"
)

// usingBlock is prepended when the caller asks for using statements.
const usingBlock = "using System;\nusing System.Web;\nusing System.Web.UI;\n\n"

// WithUsings prepends the standard using block to converted code.
func WithUsings(code string) string {
	return usingBlock + code
}

// WrapNamespace nests code inside a namespace declaration, indenting the
// body by one indent unit. An empty name returns the code untouched.
func WrapNamespace(code, name string) string {
	if name == "" {
		return code
	}
	lines := strings.Split(code, "\n")
	indented := make([]string, 0, len(lines))
	for _, line := range lines {
		indented = append(indented, "    "+line)
	}
	return fmt.Sprintf("namespace %s\n{\n%s\n}", name, strings.Join(indented, "\n"))
}
