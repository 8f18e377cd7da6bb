package groq

import (
	"strings"
	"testing"
)

func TestCleanOutputStripsFencesAndProse(t *testing.T) {
	raw := "Here is the converted code:\n```csharp\nbool x = true;\nstring y = \"a\";\n```\nNote: review before use."
	got := CleanOutput(raw)
	want := "bool x = true;\nstring y = \"a\";"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCleanOutputEmpty(t *testing.T) {
	if got := CleanOutput(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestCleanOutputBareFence(t *testing.T) {
	got := CleanOutput("```\nint x = 1;\n```")
	if got != "int x = 1;" {
		t.Fatalf("expected fence stripped, got %q", got)
	}
}

func TestPostprocessFixesStringlyBooleans(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`string isOpen = "False";`, `bool isOpen = false;`},
		{`string isOpen = False;`, `bool isOpen = false;`},
		{`string isOn = "True";`, `bool isOn = true;`},
	}
	for _, tc := range cases {
		if got := Postprocess(tc.in); got != tc.want {
			t.Fatalf("Postprocess(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestPostprocessOperatorsAndAccessors(t *testing.T) {
	in := strings.Join([]string{
		`string name = Request.QueryString("id");`,
		`if (a <> b And c) {`,
		`Response.Write "x" & name`,
		`}`,
	}, "\n")

	got := Postprocess(in)

	if !strings.Contains(got, `Request.QueryString["id"]`) {
		t.Fatalf("query string accessor not fixed: %q", got)
	}
	if !strings.Contains(got, "!=") || !strings.Contains(got, "&&") {
		t.Fatalf("operators not fixed: %q", got)
	}
	if !strings.Contains(got, `Response.Write("x" + name);`) {
		t.Fatalf("response write not wrapped: %q", got)
	}
}

func TestPostprocessTerminatorCleanup(t *testing.T) {
	got := Postprocess("int x = 1;;\nint y = 2\n}   ;")
	if strings.Contains(got, ";;") {
		t.Fatalf("duplicate terminators survived: %q", got)
	}
	if !strings.Contains(got, "int y = 2;") {
		t.Fatalf("missing terminator not added: %q", got)
	}
	if !strings.HasSuffix(got, "}") {
		t.Fatalf("brace cleanup failed: %q", got)
	}
}
