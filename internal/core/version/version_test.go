package version

import (
	"testing"

	"braindump/internal/platform/testkit"
)

func TestInfoReflectsBuildVars(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &version, "v1.2.3")
	testkit.Swap(t, &commit, "abc123")
	testkit.Swap(t, &date, "2026-08-01")

	got := Info()
	if got.Service != "braindump-api" {
		t.Fatalf("service = %q", got.Service)
	}
	if got.Version != "v1.2.3" || got.Commit != "abc123" || got.Date != "2026-08-01" {
		t.Fatalf("unexpected build info: %+v", got)
	}
}

func TestInfoDefaults(t *testing.T) {
	testkit.Serial(t)

	got := Info()
	if got.Version == "" || got.Commit == "" || got.Date == "" {
		t.Fatalf("defaults should never be empty: %+v", got)
	}
}
