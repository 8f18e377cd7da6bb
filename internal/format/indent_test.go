package format

import (
	"strings"
	"testing"
)

func TestIndentBasicNesting(t *testing.T) {
	src := strings.Join([]string{
		"if (a) {",
		"x = 1;",
		"if (b) {",
		"y = 2;",
		"}",
		"}",
	}, "\n")

	want := strings.Join([]string{
		"if (a) {",
		"    x = 1;",
		"    if (b) {",
		"        y = 2;",
		"    }",
		"}",
	}, "\n")

	if got := Indent(src); got != want {
		t.Fatalf("indent mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

// A bare closing brace sits one level shallower than the line it closes,
// at any depth.
func TestIndentCloserAlignsWithOpener(t *testing.T) {
	var lines []string
	depth := 5
	for i := 0; i < depth; i++ {
		lines = append(lines, "if (x) {")
	}
	for i := 0; i < depth; i++ {
		lines = append(lines, "}")
	}

	out := strings.Split(Indent(strings.Join(lines, "\n")), "\n")
	for i := 0; i < depth; i++ {
		opener := out[i]
		closer := out[len(out)-1-i]
		wantPrefix := strings.Repeat("    ", i)
		if !strings.HasPrefix(opener, wantPrefix+"if") {
			t.Fatalf("opener %d: expected indent %d, got %q", i, i, opener)
		}
		if closer != wantPrefix+"}" {
			t.Fatalf("closer for depth %d: expected %q, got %q", i, wantPrefix+"}", closer)
		}
	}
}

func TestIndentDepthNeverNegative(t *testing.T) {
	src := "}\n}\nx = 1;\n}"
	want := "}\n}\nx = 1;\n}"
	if got := Indent(src); got != want {
		t.Fatalf("excess closers must flatten to column 0:\nwant %q\ngot  %q", want, got)
	}
}

func TestIndentCaseLabelsOpenALevel(t *testing.T) {
	src := strings.Join([]string{
		`switch (x) {`,
		`case "A":`,
		`y = 1;`,
		`default:`,
		`z = 2;`,
	}, "\n")

	out := strings.Split(Indent(src), "\n")
	if out[1] != `    case "A":` {
		t.Fatalf("case label: got %q", out[1])
	}
	if out[2] != `        y = 1;` {
		t.Fatalf("case body: got %q", out[2])
	}
	if out[3] != `        default:` {
		t.Fatalf("default label: got %q", out[3])
	}
	if out[4] != `            z = 2;` {
		t.Fatalf("default body: got %q", out[4])
	}
}

func TestIndentLeavesTokensAlone(t *testing.T) {
	src := "if (a) {\nweird   spacing;\n}"
	out := Indent(src)
	if !strings.Contains(out, "weird   spacing;") {
		t.Fatalf("formatter must not touch token content, got %q", out)
	}
}

func TestIndentEmptyInput(t *testing.T) {
	if got := Indent(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
