package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/logging"
	"github.com/signalregistry/api/internal/server/auth"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/registry"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

func TestCORS_KnownOriginGetsCredentials(t *testing.T) {
	srv, _, cfg := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Origin", cfg.AllowedOrigins[0])
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, cfg.AllowedOrigins[0], w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOriginGetsWildcard(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://somewhere.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestStoreGate_RejectsWhileStoreDown(t *testing.T) {
	srv, repos, _ := newTestServer(t)
	repos.SetPingError(common.ErrorStoreUnavailable)

	w := doRequest(t, srv, http.MethodGet, "/user", requestOpts{cookie: "tok"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestStoreGate_MetricsStaysReachable(t *testing.T) {
	srv, repos, _ := newTestServer(t)
	repos.SetPingError(common.ErrorStoreUnavailable)

	w := doRequest(t, srv, http.MethodGet, "/metrics", requestOpts{})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSession_LegacyQueryParam(t *testing.T) {
	srv, repos, _ := newTestServer(t)
	seedSession(t, repos, "query-tok", "alice", "user")

	w := doRequest(t, srv, http.MethodGet, "/user?sessionId=query-tok", requestOpts{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeJSON(t, w)["username"])
	assert.Empty(t, w.Result().Cookies())
}

func TestRequestLogger_EmitsOneLinePerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	repos := repomanager.NewInMemoryRepositoryManager()
	authSvc := auth.NewService(repos.Users(), repos.Sessions(), cfg)
	regSvc := registry.NewService(repos.Signals())

	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	srv := NewServer(cfg, log, repos, authSvc, regSvc)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: "sr", Value: "tok"})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/user", line["url"])
	assert.EqualValues(t, http.StatusOK, line["status"])
	assert.Equal(t, "tok", line["session"])
	assert.Equal(t, "anonymous", line["username"])
	assert.NotEmpty(t, line["request_id"])
}

func TestPrincipalFrom_ZeroValueWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	p := PrincipalFrom(c)

	assert.Empty(t, p.SessionToken)
	assert.Empty(t, p.Username)
}
