package testutil

import (
	"testing"

	"github.com/preston-bernstein/f2p-catalog-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a catalog snapshot with n sample games for the date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string, n int) {
	t.Helper()
	if err := w.WriteCatalogSnapshot(date, SampleSnapshot(date, SampleGames(n)...)); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

// SnapshotPath returns the expected file path for a snapshot date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.CatalogSnapshotPath(w.BasePath(), date)
}
