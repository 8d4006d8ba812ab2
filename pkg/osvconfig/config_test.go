package osvconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), Filename))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.IgnoredVulns) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	if err := os.WriteFile(path, []byte("[[IgnoredVulns]\nid = broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	until := time.Date(2026, 11, 25, 0, 0, 0, 0, time.UTC)

	cfg := &Config{}
	cfg.Add(IgnoredVuln{ID: "GHSA-xvch-5gv4-984h", IgnoreUntil: until, Reason: "dev-only dependency"})
	cfg.Add(IgnoredVuln{ID: "GHSA-35jh-r3h4-6jhm", Reason: "not reachable"})

	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.IgnoredVulns) != 2 {
		t.Fatalf("got %d entries, want 2", len(loaded.IgnoredVulns))
	}
	first := loaded.IgnoredVulns[0]
	if first.ID != "GHSA-xvch-5gv4-984h" || !first.IgnoreUntil.Equal(until) || first.Reason != "dev-only dependency" {
		t.Errorf("first entry mangled: %+v", first)
	}
	if !loaded.IgnoredVulns[1].IgnoreUntil.IsZero() {
		t.Errorf("zero ignoreUntil should survive the round trip, got %v", loaded.IgnoredVulns[1].IgnoreUntil)
	}
}

func TestZeroIgnoreUntilOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	cfg := &Config{}
	cfg.Add(IgnoredVuln{ID: "GHSA-29mw-wpgm-hmr9", Reason: "acceptable"})
	if err := cfg.Write(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "ignoreUntil") {
		t.Errorf("zero ignoreUntil should be omitted:\n%s", data)
	}
}

func TestAddDeduplicatesByID(t *testing.T) {
	cfg := &Config{}
	if !cfg.Add(IgnoredVuln{ID: "GHSA-1", Reason: "first"}) {
		t.Fatal("first Add should succeed")
	}
	if cfg.Add(IgnoredVuln{ID: "GHSA-1", Reason: "second"}) {
		t.Error("duplicate id should not be added")
	}
	if len(cfg.IgnoredVulns) != 1 || cfg.IgnoredVulns[0].Reason != "first" {
		t.Errorf("existing entry must win: %+v", cfg.IgnoredVulns)
	}
	if !cfg.Ignored("GHSA-1") || cfg.Ignored("GHSA-2") {
		t.Error("Ignored lookup wrong")
	}
}
