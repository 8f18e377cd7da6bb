package convert

import (
	"strings"
	"testing"
)

func TestConvertIndentsNestedBlocks(t *testing.T) {
	src := strings.Join([]string{
		`If GLB_DEVICE = "IOS" Then`,
		`Dim arrShowEvent`,
		`If IsArray(arrShowEvent) Then`,
		`strEventShowYN = "N"`,
		`End If`,
		`End If`,
	}, "\n")

	got := Convert(src)
	want := strings.Join([]string{
		`if (GLB_DEVICE == "IOS") {`,
		`    string arrShowEvent = "";`,
		`    if ((arrShowEvent is Array)) {`,
		`        strEventShowYN = "N";`,
		`    }`,
		`}`,
	}, "\n")
	if got != want {
		t.Fatalf("convert mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestConvertSampleDeclarationBlock(t *testing.T) {
	src := strings.Join([]string{
		`Dim isBizEvent : isBizEvent = False`,
		`Dim isPersonEvent : isPersonEvent = False`,
		`Dim arrTarget`,
	}, "\n")

	got := Convert(src)
	want := strings.Join([]string{
		`bool isBizEvent = false;`,
		`bool isPersonEvent = false;`,
		`string arrTarget = "";`,
	}, "\n")
	if got != want {
		t.Fatalf("convert mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

// Re-running Convert on its own output must not fail. Textual stability
// is explicitly not promised; the bare `=` rewrite can fire again.
func TestConvertReapplicationDoesNotPanic(t *testing.T) {
	src := "Dim userName : userName = \"admin\"\nIf userName <> \"\" Then\nResponse.Write \"Hello \" & userName\nEnd If"
	once := Convert(src)
	twice := Convert(once)
	if twice == "" {
		t.Fatalf("second conversion produced empty output from %q", once)
	}
}

func TestConvertLineCountLowerBound(t *testing.T) {
	srcs := []string{
		"",
		"Dim a, b, c",
		"If x Then\nEnd If",
		"totally unknown syntax ((( '",
	}
	for _, src := range srcs {
		out := Convert(src)
		if strings.Count(out, "\n") < strings.Count(src, "\n") {
			t.Fatalf("Convert(%q) dropped lines: %q", src, out)
		}
	}
}

func TestWithUsings(t *testing.T) {
	got := WithUsings("int x = 1;")
	if !strings.HasPrefix(got, "using System;\n") {
		t.Fatalf("expected using block prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "int x = 1;") {
		t.Fatalf("expected original code to survive, got %q", got)
	}
}

func TestWrapNamespace(t *testing.T) {
	got := WrapNamespace("int x = 1;\nint y = 2;", "ConvertedCode")
	want := "namespace ConvertedCode\n{\n    int x = 1;\n    int y = 2;\n}"
	if got != want {
		t.Fatalf("expected namespace wrap:\nwant %q\ngot  %q", want, got)
	}

	if got := WrapNamespace("int x = 1;", ""); got != "int x = 1;" {
		t.Fatalf("empty namespace must be a no-op, got %q", got)
	}
}
