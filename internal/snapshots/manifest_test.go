package snapshots

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifestReturnsDefaultOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, manifestFile)
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := readManifest(path, 5)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if m.Retention.CatalogDays != 5 {
		t.Fatalf("expected retention fallback to provided, got %d", m.Retention.CatalogDays)
	}
}

func TestWriteManifestFailsWhenPathMissing(t *testing.T) {
	if err := writeManifest(filepath.Join("does-not-exist", "missing"), defaultManifest(3)); err == nil {
		t.Fatalf("expected error when base path missing")
	}
}

func TestWriteManifestSuccess(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest(4)
	m.Catalog.Dates = []string{"2024-01-01"}
	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("expected manifest to be written, got %v", err)
	}
	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest readable, got %v", err)
	}
	if len(got.Catalog.Dates) != 1 || got.Retention.CatalogDays != 4 {
		t.Fatalf("unexpected manifest %+v", got)
	}
}
