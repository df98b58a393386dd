package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`samples:
  - directory: kick
    file: bd01
    id: kick/bd01
  - directory: hat
    file: hh02
`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(m.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(m.Samples))
	}
	if m.Samples[0].ID != "kick/bd01" {
		t.Errorf("unexpected id: %s", m.Samples[0].ID)
	}
	if m.Samples[1].ID != "" {
		t.Errorf("expected empty id for probe-only entry, got %s", m.Samples[1].ID)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse([]byte("samples: []")); err == nil {
		t.Error("expected error for empty manifest")
	}
}

func TestParse_MissingFields(t *testing.T) {
	data := []byte(`samples:
  - directory: kick
`)
	if _, err := Parse(data); err == nil {
		t.Error("expected error for entry without file")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yml")
	content := []byte(`samples:
  - directory: vocal
    file: track1
    id: v1
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Samples[0].Directory != "vocal" {
		t.Errorf("unexpected directory: %s", m.Samples[0].Directory)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
