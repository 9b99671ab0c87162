package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
	"github.com/odyssey-erp/odyssey-console/jobs"
	_ "github.com/odyssey-erp/odyssey-console/testing"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(context.Context) error {
	s.calls++
	return s.err
}

func newTestRouter(t *testing.T, ping func(context.Context) error) (http.Handler, *string) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var upstreamPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	proxy, err := backend.NewProxy(upstream.URL, logger)
	require.NoError(t, err)
	templates, err := view.NewEngine()
	require.NoError(t, err)

	cfg := &Config{AppEnv: "test", RateLimitPerMinute: 1000, AppRequestTimeout: 5 * time.Second}
	router := NewRouter(RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: shared.NewSessionManager(rdb, "console_session", "secret", time.Hour, false),
		CSRFManager:    shared.NewCSRFManager("csrf"),
		Metrics:        observability.NewMetrics(),
		Proxy:          proxy,
		Nav:            Navigation(),
		Lookups:        &stubRefresher{},
		JobHandler:     jobs.NewHandler(nil, logger),
		Ping:           ping,
	})
	return router, &upstreamPath
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthzDegraded(t *testing.T) {
	router, _ := newTestRouter(t, func(context.Context) error { return errors.New("redis down") })
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPIProxyBypassesSession(t *testing.T) {
	router, upstreamPath := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/masterdata/suppliers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/masterdata/suppliers", *upstreamPath)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestHomeListsNavigation(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Purchase Orders")
}

func TestLookupRefreshRequiresCSRF(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lookups/refresh", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobsAndMetricsMounted(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	for _, path := range []string{"/jobs/health", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func refreshRequest(referer string) (*http.Request, *shared.Session) {
	req := httptest.NewRequest(http.MethodPost, "http://console.local/lookups/refresh", nil)
	req.Header.Set("Referer", referer)
	sess := &shared.Session{}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func TestRefreshLookupsRedirectsBack(t *testing.T) {
	refresher := &stubRefresher{}
	req, sess := refreshRequest("http://console.local/masterdata/suppliers?offset=5")
	rec := httptest.NewRecorder()
	refreshLookups(refresher, slog.Default())(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/masterdata/suppliers?offset=5", rec.Header().Get("Location"))
	assert.Equal(t, 1, refresher.calls)
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashSuccess, flash.Kind)
}

func TestRefreshLookupsFailureAlerts(t *testing.T) {
	req, sess := refreshRequest("https://elsewhere.example/phish")
	rec := httptest.NewRecorder()
	refreshLookups(&stubRefresher{err: errors.New("backend down")}, slog.New(slog.NewTextHandler(io.Discard, nil)))(rec, req)

	assert.Equal(t, "/", rec.Header().Get("Location"))
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashAlert, flash.Kind)
}
