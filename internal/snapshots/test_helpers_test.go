package snapshots

import (
	"os"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestWriter(t *testing.T, retentionDays int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retentionDays)
	w.now = func() time.Time { return fixedNow }
	return w
}

func simpleSnapshot(date string, ids ...int) domaingames.CatalogSnapshot {
	list := make([]domaingames.Game, 0, len(ids))
	for _, id := range ids {
		list = append(list, domaingames.Game{ID: id, Title: date})
	}
	return domaingames.NewCatalogSnapshot(date, fixedNow, list)
}

func writeSnapshot(t *testing.T, w *Writer, date string, snap domaingames.CatalogSnapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteCatalogSnapshot(date, snap); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(CatalogSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
