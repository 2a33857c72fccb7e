package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/app/games"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/fixture"
	"github.com/preston-bernstein/f2p-catalog-service/internal/sessions"
	"github.com/preston-bernstein/f2p-catalog-service/internal/testutil"
)

type sessionBody struct {
	ID             string `json:"id"`
	CatalogVersion string `json:"catalog_version"`
	Stale          bool   `json:"stale"`
	domaingames.PageResponse
}

func newSessionMux(t *testing.T, max int) (*http.ServeMux, *games.Service, *sessions.Registry) {
	t.Helper()
	svc := testutil.NewServiceWithGames(fixture.Games())
	registry := sessions.NewRegistry(svc, time.Hour, max, nil, metrics.NewRecorder())
	h := NewHandler(svc, registry, nil, metrics.NewRecorder(), nil)
	return newMux(h), svc, registry
}

func createSession(t *testing.T, mux *http.ServeMux) sessionBody {
	t.Helper()
	rr := testutil.Serve(mux, http.MethodPost, "/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var body sessionBody
	testutil.DecodeJSON(t, rr, &body)
	if body.ID == "" {
		t.Fatalf("expected session id")
	}
	if rr.Header().Get("Location") != "/sessions/"+body.ID {
		t.Fatalf("unexpected location %q", rr.Header().Get("Location"))
	}
	return body
}

func TestCreateSessionStartsOnFirstPage(t *testing.T) {
	mux, svc, _ := newSessionMux(t, 10)

	body := createSession(t, mux)
	if body.Filter != "all" || body.Search != "" || len(body.Games) != 9 || !body.HasMore {
		t.Fatalf("unexpected initial view %+v", body.PageResponse)
	}
	if body.CatalogVersion != svc.Version() || body.Stale {
		t.Fatalf("expected current catalog version")
	}

	rr := testutil.Serve(mux, http.MethodGet, "/sessions/"+body.ID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestSessionFilterSearchAndLoadMore(t *testing.T) {
	mux, _, _ := newSessionMux(t, 10)
	id := createSession(t, mux).ID

	rr := testutil.Serve(mux, http.MethodPost, "/sessions/"+id+"/more", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var view sessionBody
	testutil.DecodeJSON(t, rr, &view)
	if view.PageSize != 18 || view.HasMore || len(view.Games) != len(fixture.Games()) {
		t.Fatalf("expected full catalog after load more, got %+v", view.PageResponse)
	}

	rr = testutil.Serve(mux, http.MethodPut, "/sessions/"+id+"/filter", strings.NewReader(`{"category":"MMORPG"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	view = sessionBody{}
	testutil.DecodeJSON(t, rr, &view)
	if view.Filter != "mmorpg" || view.PageSize != 9 || view.Total != 4 {
		t.Fatalf("expected mmorpg filter with reset page, got %+v", view.PageResponse)
	}

	rr = testutil.Serve(mux, http.MethodPut, "/sessions/"+id+"/search", strings.NewReader(`{"term":"pirate"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	view = sessionBody{}
	testutil.DecodeJSON(t, rr, &view)
	if view.Total != 1 || view.Games[0].Title != "Pirate101" {
		t.Fatalf("expected Pirate101, got %+v", view.PageResponse)
	}

	rr = testutil.Serve(mux, http.MethodDelete, "/sessions/"+id+"/search", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	view = sessionBody{}
	testutil.DecodeJSON(t, rr, &view)
	if view.Search != "" || view.Filter != "mmorpg" || view.Total != 4 {
		t.Fatalf("expected search cleared with filter kept, got %+v", view.PageResponse)
	}
}

func TestSessionFilterRejectsBadInput(t *testing.T) {
	mux, _, _ := newSessionMux(t, 10)
	id := createSession(t, mux).ID

	tests := []struct {
		name string
		body string
	}{
		{"unknown category", `{"category":"racing"}`},
		{"unknown field", `{"cat":"mmorpg"}`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Serve(mux, http.MethodPut, "/sessions/"+id+"/filter", strings.NewReader(tt.body))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
		})
	}
}

func TestSessionGameIgnoresFilter(t *testing.T) {
	mux, _, _ := newSessionMux(t, 10)
	id := createSession(t, mux).ID

	rr := testutil.Serve(mux, http.MethodPut, "/sessions/"+id+"/filter", strings.NewReader(`{"category":"pixel"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(mux, http.MethodGet, "/sessions/"+id+"/games/517", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var game domaingames.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.Title != "Lost Ark" {
		t.Fatalf("unexpected game %+v", game)
	}

	rr = testutil.Serve(mux, http.MethodGet, "/sessions/"+id+"/games/999999", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(mux, http.MethodGet, "/sessions/"+id+"/games/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestSessionReloadPicksUpNewCatalog(t *testing.T) {
	mux, svc, _ := newSessionMux(t, 10)
	id := createSession(t, mux).ID

	svc.ReplaceGames(testutil.SampleGames(3))

	rr := testutil.Serve(mux, http.MethodGet, "/sessions/"+id, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var view sessionBody
	testutil.DecodeJSON(t, rr, &view)
	if !view.Stale {
		t.Fatalf("expected session to be stale after catalog swap")
	}

	rr = testutil.Serve(mux, http.MethodPost, "/sessions/"+id+"/reload", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	view = sessionBody{}
	testutil.DecodeJSON(t, rr, &view)
	if view.Stale || view.Total != 3 || view.CatalogVersion != svc.Version() {
		t.Fatalf("expected reloaded view, got %+v", view)
	}
}

func TestDeleteSession(t *testing.T) {
	mux, _, registry := newSessionMux(t, 10)
	id := createSession(t, mux).ID

	rr := testutil.Serve(mux, http.MethodDelete, "/sessions/"+id, nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	if registry.Len() != 0 {
		t.Fatalf("expected registry empty")
	}

	rr = testutil.Serve(mux, http.MethodDelete, "/sessions/"+id, nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	mux, _, _ := newSessionMux(t, 10)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/sessions/missing"},
		{http.MethodPost, "/sessions/missing/more"},
		{http.MethodPost, "/sessions/missing/reload"},
		{http.MethodDelete, "/sessions/missing/search"},
		{http.MethodGet, "/sessions/missing/games/1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := testutil.Serve(mux, tc.method, tc.path, nil)
			testutil.AssertStatus(t, rr, http.StatusNotFound)
		})
	}
}

func TestCreateSessionLimit(t *testing.T) {
	mux, _, _ := newSessionMux(t, 1)
	createSession(t, mux)

	rr := testutil.Serve(mux, http.MethodPost, "/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
}

func TestSessionSearchMetricsIgnoreBlankTerms(t *testing.T) {
	svc := testutil.NewServiceWithGames(fixture.Games())
	rec := metrics.NewRecorder()
	registry := sessions.NewRegistry(svc, time.Hour, 10, nil, rec)
	mux := newMux(NewHandler(svc, registry, nil, rec, nil))
	body := createSession(t, mux)

	rr := testutil.Serve(mux, http.MethodPut, "/sessions/"+body.ID+"/search", strings.NewReader(`{"term":"   "}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = testutil.Serve(mux, http.MethodPut, "/sessions/"+body.ID+"/filter", strings.NewReader(`{"category":"all"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rec.CatalogQueries("all"); got != 2 {
		t.Fatalf("expected 2 recorded queries, got %d", got)
	}
	if got := rec.SearchedQueries("all"); got != 0 {
		t.Fatalf("expected blank term not counted as a search, got %d", got)
	}

	rr = testutil.Serve(mux, http.MethodPut, "/sessions/"+body.ID+"/search", strings.NewReader(`{"term":"pirate"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rec.SearchedQueries("all"); got != 1 {
		t.Fatalf("expected one searched query, got %d", got)
	}
}
