package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCollectSourceFilesWalksAndFilters(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.asp", "Response.Write \"a\"")
	b := writeSource(t, dir, filepath.Join("sub", "b.inc"), "Dim x")
	c := writeSource(t, dir, filepath.Join("sub", "c.vbs"), "Dim y")
	writeSource(t, dir, "notes.txt", "not a source")

	files, err := CollectSourceFiles(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("CollectSourceFiles: %v", err)
	}
	want := []string{a, b, c}
	sort.Strings(want)
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %q at %d, got %q", want[i], i, files[i])
		}
	}
}

func TestCollectSourceFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.asp", "Dim x")

	files, err := CollectSourceFiles(context.Background(), []string{a, dir, a})
	if err != nil {
		t.Fatalf("CollectSourceFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after dedupe, got %d: %v", len(files), files)
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		path   string
		outDir string
		want   string
	}{
		{filepath.Join("web", "login.asp"), "", filepath.Join("web", "login.cs")},
		{filepath.Join("web", "login.asp"), "out", filepath.Join("out", "login.cs")},
		{"header.inc", "", "header.cs"},
	}
	for _, tc := range cases {
		if got := OutputPath(tc.path, tc.outDir); got != tc.want {
			t.Fatalf("OutputPath(%q, %q): expected %q, got %q", tc.path, tc.outDir, got, tc.want)
		}
	}
}

func TestConvertPathsWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "page.asp", "If isActive = True Then\nResponse.Write \"ok\"\nEnd If")

	results, err := ConvertPaths(context.Background(), []string{dir}, Options{})
	if err != nil {
		t.Fatalf("ConvertPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("unexpected per-file error: %v", res.Err)
	}
	if res.OutPath != filepath.Join(dir, "page.cs") {
		t.Fatalf("expected output beside the input, got %q", res.OutPath)
	}
	data, err := os.ReadFile(res.OutPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "if (isActive == true) {") {
		t.Fatalf("expected converted conditional, got:\n%s", out)
	}
	if !strings.Contains(out, "Response.Write(\"ok\");") {
		t.Fatalf("expected converted write call, got:\n%s", out)
	}
}

func TestConvertPathsStdoutDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "page.asp", "Dim total")

	results, err := ConvertPaths(context.Background(), []string{src}, Options{Stdout: true})
	if err != nil {
		t.Fatalf("ConvertPaths: %v", err)
	}
	if results[0].Output == "" {
		t.Fatalf("expected inline output in stdout mode")
	}
	if _, err := os.Stat(filepath.Join(dir, "page.cs")); !os.IsNotExist(err) {
		t.Fatalf("expected no .cs file in stdout mode")
	}
}

func TestConvertPathsOutDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "generated")
	writeSource(t, dir, "a.asp", "Dim x")

	results, err := ConvertPaths(context.Background(), []string{dir}, Options{OutDir: out})
	if err != nil {
		t.Fatalf("ConvertPaths: %v", err)
	}
	if results[0].OutPath != filepath.Join(out, "a.cs") {
		t.Fatalf("expected output under out dir, got %q", results[0].OutPath)
	}
	if _, err := os.Stat(results[0].OutPath); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
}

func TestConvertPathsNoSources(t *testing.T) {
	if _, err := ConvertPaths(context.Background(), []string{t.TempDir()}, Options{}); err == nil {
		t.Fatalf("expected an error when no source files are found")
	}
}

func TestConvertSourceDecoration(t *testing.T) {
	out := ConvertSource("Dim x", Options{Usings: true, Namespace: "Legacy.Web"})
	if !strings.HasPrefix(out, "using System;") {
		t.Fatalf("expected using block first, got:\n%s", out)
	}
	if !strings.Contains(out, "namespace Legacy.Web") {
		t.Fatalf("expected namespace wrapper, got:\n%s", out)
	}
}
