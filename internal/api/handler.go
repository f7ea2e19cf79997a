package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetime-dev/codetime/internal/cache"
	apperrors "github.com/codetime-dev/codetime/internal/errors"
	"github.com/codetime-dev/codetime/internal/models"
)

// StatsProvider computes the stats envelope for a repository reference.
type StatsProvider interface {
	RepoStats(ctx context.Context, ref string, opts models.StatsOptions) (*models.RepoStats, error)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// CacheStatsResponse reports the state of the result cache.
type CacheStatsResponse struct {
	Entries int `json:"entries"`
}

type Handler struct {
	stats    StatsProvider
	cache    cache.Cache
	defaults models.StatsOptions
	logger   *logrus.Logger
}

func NewHandler(stats StatsProvider, resultCache cache.Cache, defaults models.StatsOptions, logger *logrus.Logger) *Handler {
	return &Handler{
		stats:    stats,
		cache:    resultCache,
		defaults: defaults.Normalize(),
		logger:   logger,
	}
}

// GetRepoStats godoc
// @Summary Get coding-session stats for a repository
// @Description Groups the repository's commit history into coding sessions and returns totals, per-author and per-day rollups
// @Tags stats
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param timeout query int false "Session timeout in minutes" default(45)
// @Param bonus query int false "First-commit bonus in minutes" default(15)
// @Param tz query string false "IANA timezone for day bucketing" default(UTC)
// @Param include_merges query bool false "Count merge commits" default(false)
// @Param include_bots query bool false "Count bot commits" default(false)
// @Param max_commits query int false "Cap on fetched commits (0 = no cap)"
// @Param since query string false "Only commits after this instant (RFC3339)"
// @Param until query string false "Only commits before this instant (RFC3339)"
// @Success 200 {object} models.RepoStats
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /repos/{owner}/{repo}/stats [get]
func (h *Handler) GetRepoStats(c *gin.Context) {
	opts, err := h.parseOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Type: string(apperrors.ErrInvalidInput)})
		return
	}

	ref := fmt.Sprintf("%s/%s", c.Param("owner"), c.Param("repo"))
	result, err := h.stats.RepoStats(c.Request.Context(), ref, opts)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health godoc
// @Summary Liveness check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCacheStats godoc
// @Summary Report result cache size
// @Tags ops
// @Produce json
// @Success 200 {object} CacheStatsResponse
// @Router /cache/stats [get]
func (h *Handler) GetCacheStats(c *gin.Context) {
	entries := 0
	if h.cache != nil {
		entries = h.cache.Size()
	}
	c.JSON(http.StatusOK, CacheStatsResponse{Entries: entries})
}

// ClearCache godoc
// @Summary Clear the result cache
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /cache [delete]
func (h *Handler) ClearCache(c *gin.Context) {
	if h.cache != nil {
		h.cache.Clear()
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *Handler) parseOptions(c *gin.Context) (models.StatsOptions, error) {
	opts := h.defaults

	var err error
	if opts.SessionTimeoutMinutes, err = intQuery(c, "timeout", opts.SessionTimeoutMinutes); err != nil {
		return opts, err
	}
	if opts.FirstCommitBonusMinutes, err = intQuery(c, "bonus", opts.FirstCommitBonusMinutes); err != nil {
		return opts, err
	}
	if opts.MaxCommits, err = intQuery(c, "max_commits", opts.MaxCommits); err != nil {
		return opts, err
	}
	if tz := c.Query("tz"); tz != "" {
		opts.Timezone = tz
	}
	if opts.IncludeMerges, err = boolQuery(c, "include_merges", opts.IncludeMerges); err != nil {
		return opts, err
	}
	if opts.IncludeBots, err = boolQuery(c, "include_bots", opts.IncludeBots); err != nil {
		return opts, err
	}
	if opts.Since, err = timeQuery(c, "since"); err != nil {
		return opts, err
	}
	if opts.Until, err = timeQuery(c, "until"); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *Handler) respondWithError(c *gin.Context, err error) {
	errType := apperrors.Classify(err)
	status := http.StatusInternalServerError
	switch errType {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrInvalidInput:
		status = http.StatusBadRequest
	case apperrors.ErrRateLimit:
		status = http.StatusServiceUnavailable
	case apperrors.ErrUpstream:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		h.logger.WithError(err).Error("Stats request failed")
	} else {
		h.logger.WithError(err).Warn("Stats request rejected")
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Type: string(errType)})
}

func intQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func boolQuery(c *gin.Context, name string, defaultValue bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter (use RFC3339 format): %q", name, raw)
	}
	return &v, nil
}
