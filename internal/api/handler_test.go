package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetime-dev/codetime/internal/cache"
	"github.com/codetime-dev/codetime/internal/models"
)

type stubProvider struct {
	lastRef  string
	lastOpts models.StatsOptions
	result   *models.RepoStats
	err      error
}

func (s *stubProvider) RepoStats(ctx context.Context, ref string, opts models.StatsOptions) (*models.RepoStats, error) {
	s.lastRef = ref
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupRouter(t *testing.T, provider *stubProvider, resultCache cache.Cache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	h := NewHandler(provider, resultCache, models.StatsOptions{}, logger)
	return SetupRouter(h)
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetRepoStats(t *testing.T) {
	t.Run("returns stats envelope", func(t *testing.T) {
		provider := &stubProvider{result: &models.RepoStats{
			Owner: "test-owner",
			Repo:  "test-repo",
			Totals: models.AggregateStats{
				TotalHours:    1.65,
				SessionsCount: 3,
			},
		}}
		router := setupRouter(t, provider, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/repos/test-owner/test-repo/stats")
		require.Equal(t, http.StatusOK, w.Code)

		var result models.RepoStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "test-owner", result.Owner)
		assert.Equal(t, 1.65, result.Totals.TotalHours)
		assert.Equal(t, "test-owner/test-repo", provider.lastRef)
	})

	t.Run("passes query options through", func(t *testing.T) {
		provider := &stubProvider{result: &models.RepoStats{}}
		router := setupRouter(t, provider, nil)

		path := "/api/v1/repos/o/r/stats?timeout=60&bonus=20&tz=Europe/Berlin" +
			"&include_merges=true&max_commits=500&since=2024-01-01T00:00:00Z"
		w := doRequest(router, http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, 60, provider.lastOpts.SessionTimeoutMinutes)
		assert.Equal(t, 20, provider.lastOpts.FirstCommitBonusMinutes)
		assert.Equal(t, "Europe/Berlin", provider.lastOpts.Timezone)
		assert.True(t, provider.lastOpts.IncludeMerges)
		assert.False(t, provider.lastOpts.IncludeBots)
		assert.Equal(t, 500, provider.lastOpts.MaxCommits)
		require.NotNil(t, provider.lastOpts.Since)
		assert.Equal(t, 2024, provider.lastOpts.Since.Year())
	})

	t.Run("applies defaults when no query params", func(t *testing.T) {
		provider := &stubProvider{result: &models.RepoStats{}}
		router := setupRouter(t, provider, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/repos/o/r/stats")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 45, provider.lastOpts.SessionTimeoutMinutes)
		assert.Equal(t, 15, provider.lastOpts.FirstCommitBonusMinutes)
		assert.Equal(t, "UTC", provider.lastOpts.Timezone)
	})

	t.Run("rejects malformed parameters", func(t *testing.T) {
		provider := &stubProvider{result: &models.RepoStats{}}
		router := setupRouter(t, provider, nil)

		for _, path := range []string{
			"/api/v1/repos/o/r/stats?timeout=soon",
			"/api/v1/repos/o/r/stats?include_bots=perhaps",
			"/api/v1/repos/o/r/stats?since=yesterday",
		} {
			w := doRequest(router, http.MethodGet, path)
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("maps classified errors to status codes", func(t *testing.T) {
		provider := &stubProvider{err: fmt.Errorf("invalid timezone %q: unknown", "Nope/Nope")}
		router := setupRouter(t, provider, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/repos/o/r/stats")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Type)
	})
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, &stubProvider{}, nil)
	w := doRequest(router, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCacheEndpoints(t *testing.T) {
	resultCache := cache.NewMemoryCache(time.Minute)
	resultCache.Set("k", &models.RepoStats{})
	router := setupRouter(t, &stubProvider{}, resultCache)

	w := doRequest(router, http.MethodGet, "/api/v1/cache/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats CacheStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Entries)

	w = doRequest(router, http.MethodDelete, "/api/v1/cache")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resultCache.Size())
}
