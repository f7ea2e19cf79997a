// Package service wires the stats pipeline together: fetch, filter,
// normalize, build sessions, aggregate, cache.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codetime-dev/codetime/internal/cache"
	"github.com/codetime-dev/codetime/internal/models"
	"github.com/codetime-dev/codetime/internal/stats"
	"github.com/codetime-dev/codetime/internal/timeutil"
	"github.com/codetime-dev/codetime/internal/utils"
)

// CommitSource supplies raw commit history for a repository. The GitHub
// client and the local clone walker both satisfy it.
type CommitSource interface {
	ListCommits(ctx context.Context, owner, name string, opts models.StatsOptions) ([]*models.RawCommit, error)
}

// StatsService orchestrates one stats computation per call. The core
// pipeline stages it calls are pure; the cache is the only shared state.
type StatsService struct {
	source CommitSource
	cache  cache.Cache
	logger *logrus.Logger
	now    func() time.Time
}

// New creates a StatsService. A nil cache disables result caching.
func New(source CommitSource, resultCache cache.Cache, logger *logrus.Logger) *StatsService {
	return &StatsService{
		source: source,
		cache:  resultCache,
		logger: logger,
		now:    time.Now,
	}
}

// RepoStats computes the full stats envelope for a repository reference.
// Options are normalized to the documented defaults (timeout 45, bonus 15,
// timezone UTC) before anything else, so the cache key always reflects the
// effective values.
func (s *StatsService) RepoStats(ctx context.Context, ref string, opts models.StatsOptions) (*models.RepoStats, error) {
	owner, name, err := utils.ParseRepoRef(ref)
	if err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	// Reject bad timezones before spending network calls on them.
	if _, err := timeutil.LoadLocation(opts.Timezone); err != nil {
		return nil, err
	}

	key := opts.CacheKey(owner, name)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.WithField("key", key).Debug("Stats cache hit")
			return cached, nil
		}
	}

	raw, err := s.source.ListCommits(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits for %s/%s: %w", owner, name, err)
	}

	filtered := stats.Filter(raw, opts)
	commits := stats.Normalize(filtered)

	sessions, err := stats.BuildSessions(commits, stats.SessionConfig{
		SessionTimeoutMinutes:   opts.SessionTimeoutMinutes,
		FirstCommitBonusMinutes: opts.FirstCommitBonusMinutes,
		Timezone:                opts.Timezone,
	})
	if err != nil {
		return nil, err
	}

	result := &models.RepoStats{
		Owner:       owner,
		Repo:        name,
		Options:     opts,
		Totals:      stats.CalculateTotals(sessions),
		Authors:     stats.AggregateByAuthor(sessions),
		Days:        stats.AggregateByDay(sessions),
		GeneratedAt: s.now().UTC(),
	}

	s.logger.WithFields(logrus.Fields{
		"owner":    owner,
		"repo":     name,
		"commits":  len(commits),
		"sessions": result.Totals.SessionsCount,
		"hours":    result.Totals.TotalHours,
	}).Info("Computed repository stats")

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}
