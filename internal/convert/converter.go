package convert

import (
	"github.com/secretm224/asp-to-dotnet-converter/internal/format"
)

// Convert is the full deterministic pipeline: rule-table rewrite
// followed by the indentation pass.
func Convert(src string) string {
	return format.Indent(Transform(src))
}
