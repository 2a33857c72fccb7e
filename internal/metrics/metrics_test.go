package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("freetogame", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("freetogame", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("freetogame"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("freetogame"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("freetogame"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("freetogame")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("freetogame", 5*time.Second)
	rec.RecordRateLimit("freetogame", 0)

	if got := rec.RateLimitHits("freetogame"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("freetogame"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksCatalogQueries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCatalogQuery("sailing", false, 3)
	rec.RecordCatalogQuery("sailing", true, 1)
	rec.RecordCatalogQuery("all", false, 40)

	if got := rec.CatalogQueries("sailing"); got != 2 {
		t.Fatalf("expected 2 sailing queries, got %d", got)
	}
	if got := rec.CatalogQueries("pixel"); got != 0 {
		t.Fatalf("expected no pixel queries, got %d", got)
	}
	if got := rec.SearchedQueries("sailing"); got != 1 {
		t.Fatalf("expected 1 searched sailing query, got %d", got)
	}
	if got := rec.SearchedQueries("all"); got != 0 {
		t.Fatalf("expected no searched all queries, got %d", got)
	}
}

func TestRecorderTracksSessions(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSessionDelta(1)
	rec.RecordSessionDelta(1)
	rec.RecordSessionDelta(-1)

	if got := rec.ActiveSessions(); got != 1 {
		t.Fatalf("expected 1 active session, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("freetogame", time.Millisecond, nil)
	rec.RecordCatalogQuery("all", false, 1)
	rec.RecordSessionDelta(1)
	if rec.ActiveSessions() != 0 || rec.CatalogQueries("all") != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}
