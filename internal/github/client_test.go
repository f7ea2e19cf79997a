package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetime-dev/codetime/internal/models"
)

func setupTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(
		"test-token",
		logger,
		WithBaseURL(server.URL),
		WithRetryConfig(2, time.Millisecond, 10*time.Millisecond),
	)
}

func commitPayload(sha, login, authorType string, date time.Time, parents int) map[string]interface{} {
	parentList := make([]map[string]string, parents)
	for i := range parentList {
		parentList[i] = map[string]string{"sha": fmt.Sprintf("parent-%d", i)}
	}
	payload := map[string]interface{}{
		"sha": sha,
		"commit": map[string]interface{}{
			"message": "work on " + sha,
			"author": map[string]interface{}{
				"name": "Test Author",
				"date": date.Format(time.RFC3339),
			},
		},
		"parents":  parentList,
		"html_url": "https://github.com/test-owner/test-repo/commit/" + sha,
	}
	if login != "" {
		payload["author"] = map[string]string{"login": login, "type": authorType}
	}
	return payload
}

func TestClient_ListCommits(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)

	t.Run("single page with raw fields mapped", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/test-owner/test-repo/commits", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))

			payload := []map[string]interface{}{
				commitPayload("abc", "alice", "User", when, 1),
				commitPayload("def", "", "", when.Add(time.Hour), 2),
			}
			require.NoError(t, json.NewEncoder(w).Encode(payload))
		})

		commits, err := client.ListCommits(ctx, "test-owner", "test-repo", models.StatsOptions{})
		require.NoError(t, err)
		require.Len(t, commits, 2)

		assert.Equal(t, "abc", commits[0].SHA)
		assert.Equal(t, "alice", commits[0].AuthorLogin)
		assert.Equal(t, "Test Author", commits[0].AuthorName)
		assert.Equal(t, 1, commits[0].ParentCount)
		assert.True(t, when.Equal(commits[0].AuthorDate))

		assert.Empty(t, commits[1].AuthorLogin, "commits without a linked account keep only the raw name")
		assert.Equal(t, 2, commits[1].ParentCount)
	})

	t.Run("paginates until a short page", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			count := 100
			if page == 2 {
				count = 3
			}
			payload := make([]map[string]interface{}, count)
			for i := range payload {
				payload[i] = commitPayload(fmt.Sprintf("sha-%d-%d", page, i), "alice", "User", when, 1)
			}
			require.NoError(t, json.NewEncoder(w).Encode(payload))
		})

		commits, err := client.ListCommits(ctx, "test-owner", "test-repo", models.StatsOptions{})
		require.NoError(t, err)
		assert.Len(t, commits, 103)
	})

	t.Run("honors the commit cap", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			payload := make([]map[string]interface{}, 100)
			for i := range payload {
				payload[i] = commitPayload(fmt.Sprintf("sha-%d", i), "alice", "User", when, 1)
			}
			require.NoError(t, json.NewEncoder(w).Encode(payload))
		})

		commits, err := client.ListCommits(ctx, "test-owner", "test-repo", models.StatsOptions{MaxCommits: 42})
		require.NoError(t, err)
		assert.Len(t, commits, 42)
	})

	t.Run("passes the time window through", func(t *testing.T) {
		since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		until := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("since"))
			assert.Equal(t, "2024-02-01T00:00:00Z", r.URL.Query().Get("until"))
			require.NoError(t, json.NewEncoder(w).Encode([]map[string]interface{}{}))
		})

		commits, err := client.ListCommits(ctx, "test-owner", "test-repo",
			models.StatsOptions{Since: &since, Until: &until})
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("maps 404 to repository not found", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		})

		_, err := client.ListCommits(ctx, "test-owner", "missing", models.StatsOptions{})
		require.Error(t, err)
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("surfaces rate limit exhaustion", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", "5000")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", "1234567890")
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.ListCommits(ctx, "test-owner", "test-repo", models.StatsOptions{})
		require.Error(t, err)
		assert.True(t, IsRateLimitError(err))
	})

	t.Run("validates arguments", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := client.ListCommits(ctx, "", "repo", models.StatsOptions{})
		require.Error(t, err)
		_, err = client.ListCommits(ctx, "owner", "", models.StatsOptions{})
		require.Error(t, err)
	})
}
