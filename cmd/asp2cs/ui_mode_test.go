package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("readUIMode(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("readUIMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFromStdin(t *testing.T) {
	if !fromStdin(nil) {
		t.Fatalf("expected no args to mean stdin")
	}
	if !fromStdin([]string{"-"}) {
		t.Fatalf("expected a bare dash to mean stdin")
	}
	if fromStdin([]string{"a.asp"}) {
		t.Fatalf("expected a path to mean files")
	}
}

func TestApplyColorModeRejectsUnknown(t *testing.T) {
	if err := applyColorMode("rainbow"); err == nil {
		t.Fatalf("expected an error for an unknown color mode")
	}
	if err := applyColorMode("off"); err != nil {
		t.Fatalf("applyColorMode(off): %v", err)
	}
}
