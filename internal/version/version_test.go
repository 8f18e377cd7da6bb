package version

import "testing"

func TestVersionDefaultValue(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestBuildMetadataCanBeOverridden(t *testing.T) {
	origCommit := GitCommit
	origDate := BuildDate

	// Simulate build-time ldflags.
	GitCommit = "abc123def456"
	BuildDate = "2026-08-30T10:30:00Z"

	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2026-08-30T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2026-08-30T10:30:00Z")
	}

	GitCommit = origCommit
	BuildDate = origDate
}
