package samples

import (
	"sort"
	"strings"
	"testing"
)

func TestNamesIsSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted names, got %v", names)
	}
	for _, name := range names {
		s, ok := Get(name)
		if !ok {
			t.Fatalf("Names reported %q but Get missed it", name)
		}
		if s.Name != name {
			t.Fatalf("expected sample %q to carry its own name, got %q", name, s.Name)
		}
		if strings.TrimSpace(s.Code) == "" || s.Title == "" {
			t.Fatalf("sample %q is missing code or title", name)
		}
	}
}

func TestGetUnknownName(t *testing.T) {
	if _, ok := Get("missing"); ok {
		t.Fatalf("expected a miss for an unknown sample")
	}
}
