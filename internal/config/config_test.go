package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingManifestReturnsZeroValue(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load of a missing manifest should not error, got %v", err)
	}
	if m.Output != "" || m.EmitIR || m.LogLevel != "" {
		t.Fatalf("expected a zero-value Manifest, got %+v", m)
	}
}

func TestLoadDecodesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aotc.toml")
	contents := "output = \"prog\"\nemit-ir = true\nlog-level = \"warn\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Output != "prog" || !m.EmitIR || m.LogLevel != "warn" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestLoadRejectsMalformedManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aotc.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected Load to reject malformed TOML")
	}
}
