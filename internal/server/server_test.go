package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"strokedash/internal/artifact"
	"strokedash/internal/config"
	"strokedash/internal/fetcher"
	"strokedash/internal/pipeline"
	"strokedash/internal/store"
)

func newTestServer(t *testing.T, cronSpec string) (*Server, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "strokedash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Schedule.Cron = cronSpec

	logger := zaptest.NewLogger(t)
	artifacts := artifact.New(dir)
	p := pipeline.New(fetcher.NewDirFetcher(dir), artifacts, st, logger, pipeline.Options{})
	return NewServer(cfg, p, artifacts, st, logger)
}

func TestServer_Routes(t *testing.T) {
	s, err := newTestServer(t, "")
	require.NoError(t, err)
	assert.Nil(t, s.cron)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":false`)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/process", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Schedule(t *testing.T) {
	s, err := newTestServer(t, "0 3 * * 1")
	require.NoError(t, err)
	require.NotNil(t, s.cron)
	assert.Len(t, s.cron.Entries(), 1)

	_, err = newTestServer(t, "every monday")
	assert.Error(t, err)
}
