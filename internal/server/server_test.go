package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/config"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/poller"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/fixture"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/freetogame"
	"github.com/preston-bernstein/f2p-catalog-service/internal/snapshots"
	"github.com/preston-bernstein/f2p-catalog-service/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:         "0",
		PollInterval: time.Hour,
		Snapshots:    config.SnapshotConfig{Enabled: true, Dir: t.TempDir(), RetentionDays: 3},
	}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Serve(h, method, path, nil)
}

func waitReady(t *testing.T, h http.Handler) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if serve(t, h, http.MethodGet, "/ready").Code == http.StatusOK {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for catalog to load")
}

func TestServerServesHealthAndGames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &testutil.NotifyingProvider{
		Games:  fixture.Games(),
		Notify: make(chan struct{}),
	}

	srv := newServerWithProvider(testConfig(t), nil, provider)
	router := srv.Handler()
	testutil.AssertStatus(t, serve(t, router, http.MethodGet, "/ready"), http.StatusServiceUnavailable)

	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for poller to fetch")
	}
	waitReady(t, router)

	testutil.AssertStatus(t, serve(t, router, http.MethodGet, "/health"), http.StatusOK)

	rr := serve(t, router, http.MethodGet, "/games?category=shooter")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var page domaingames.PageResponse
	testutil.DecodeJSON(t, rr, &page)
	if page.Total != 5 || page.Filter != "shooter" {
		t.Fatalf("unexpected page %+v", page)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected middleware to set request id")
	}

	testutil.AssertStatus(t, serve(t, router, http.MethodPost, "/sessions"), http.StatusCreated)
	if srv.sessions.Len() != 1 {
		t.Fatalf("expected one open session, got %d", srv.sessions.Len())
	}
}

func TestServerRefreshWritesSnapshot(t *testing.T) {
	cfg := testConfig(t)
	srv := newServerWithProvider(cfg, nil, testutil.GoodProvider{Games: testutil.SampleGames(4)})

	plr, ok := srv.poller.(*poller.Poller)
	if !ok {
		t.Fatalf("expected concrete poller, got %T", srv.poller)
	}
	if err := plr.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	snap, err := snapshots.NewFSStore(cfg.Snapshots.Dir).LoadLatest()
	if err != nil {
		t.Fatalf("expected snapshot on disk: %v", err)
	}
	if len(snap.Games) != 4 {
		t.Fatalf("expected 4 games in snapshot, got %d", len(snap.Games))
	}
	if plr.Status().CatalogVersion != srv.catalog.Version() {
		t.Fatalf("expected poller status to track catalog version")
	}
}

func TestServerSeedsFromSnapshotBeforeFirstFetch(t *testing.T) {
	cfg := testConfig(t)
	w := snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays)
	testutil.WriteSnapshot(t, w, time.Now().UTC().Format(time.DateOnly), 3)

	srv := newServerWithProvider(cfg, nil, testutil.ErrProvider{Err: errors.New("upstream down")})
	router := srv.Handler()

	testutil.AssertStatus(t, serve(t, router, http.MethodGet, "/ready"), http.StatusOK)
	rr := serve(t, router, http.MethodGet, "/games")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var page domaingames.PageResponse
	testutil.DecodeJSON(t, rr, &page)
	if page.Total != 3 {
		t.Fatalf("expected seeded catalog of 3, got %d", page.Total)
	}
}

func TestServerHandlesProviderErrorGracefully(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	srv := newServerWithProvider(cfg, nil, testutil.ErrProvider{Err: context.DeadlineExceeded})
	plr := srv.poller.(*poller.Poller)
	if err := plr.Refresh(ctx); err == nil {
		t.Fatalf("expected refresh error")
	}

	router := srv.Handler()
	rr := serve(t, router, http.MethodGet, "/ready")
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	testutil.AssertStatus(t, serve(t, router, http.MethodGet, "/games"), http.StatusServiceUnavailable)
	testutil.AssertStatus(t, serve(t, router, http.MethodPost, "/sessions"), http.StatusServiceUnavailable)
	if srv.sessions.Len() != 0 {
		t.Fatalf("expected no session opened before the catalog loads")
	}
}

func TestServerMountsAdminWithToken(t *testing.T) {
	cfg := testConfig(t)
	router := newServerWithProvider(cfg, nil, testutil.GoodProvider{Games: testutil.SampleGames(2)}).Handler()
	testutil.AssertStatus(t, serve(t, router, http.MethodPost, "/admin/catalog/refresh"), http.StatusNotFound)

	cfg.AdminToken = "secret"
	router = newServerWithProvider(cfg, nil, testutil.GoodProvider{Games: testutil.SampleGames(2)}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/admin/catalog/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusOK)
	testutil.AssertStatus(t, serve(t, router, http.MethodGet, "/ready"), http.StatusOK)
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	provider := selectProvider(config.Config{Provider: "unknown"}, nil)
	if _, ok := provider.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", provider)
	}
}

func TestSelectProviderChoosesFreeToGame(t *testing.T) {
	provider := selectProvider(config.Config{
		Provider: "FreeToGame",
		FreeToGame: config.FreeToGameConfig{
			BaseURL: "http://example.com/api",
			APIKey:  "key",
		},
	}, nil)
	if _, ok := provider.(*freetogame.Client); !ok {
		t.Fatalf("expected freetogame provider, got %T", provider)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider = "fixture"
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil || srv.sessions == nil {
		t.Fatalf("expected server with handler and sessions")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	svc := testutil.NewServiceWithGames(nil)
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	svc := testutil.NewServiceWithGames(nil)
	p := &testutil.StubPoller{}

	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, svc, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	svc := testutil.NewServiceWithGames(nil)
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}
	logger, buf := testutil.NewBufferLogger()

	srv := newServerWithDeps(config.Config{}, logger, svc, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected shutdown to log the poller error")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	svc := testutil.NewServiceWithGames(nil)
	srv := newServerWithDeps(config.Config{}, nil, svc, &testutil.ErrHTTPServer{}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := testutil.NewServiceWithGames(testutil.SampleGames(2))
	plr := &testutil.StubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, svc, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.StartCalls)
	}
	if plr.StopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
