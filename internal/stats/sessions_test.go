package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetime-dev/codetime/internal/models"
)

var defaultConfig = SessionConfig{
	SessionTimeoutMinutes:   45,
	FirstCommitBonusMinutes: 15,
	Timezone:                "UTC",
}

var baseTime = time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)

func commitAt(author string, t time.Time) *models.Commit {
	return &models.Commit{
		SHA:       fmt.Sprintf("%s-%d", author, t.Unix()),
		Author:    author,
		Timestamp: t,
		Message:   "work",
	}
}

func TestBuildSessions_EmptyInput(t *testing.T) {
	sessions, err := BuildSessions(nil, defaultConfig)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NotNil(t, sessions)
}

func TestBuildSessions_InvalidTimezone(t *testing.T) {
	cfg := defaultConfig
	cfg.Timezone = "Not/AZone"
	_, err := BuildSessions([]*models.Commit{commitAt("alice", baseTime)}, cfg)
	require.Error(t, err)
}

func TestBuildSessions_SingleCommit(t *testing.T) {
	sessions, err := BuildSessions([]*models.Commit{commitAt("alice", baseTime)}, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, "alice", s.Author)
	assert.Equal(t, 15.0, s.DurationMinutes)
	assert.Equal(t, baseTime, s.StartTime)
	assert.Equal(t, baseTime, s.EndTime)
	assert.Equal(t, "2024-03-18", s.Date)
	assert.Nil(t, s.AvgMinutesBetweenCommits, "single-commit session has no gap concept")
	assert.Nil(t, s.MaxMinutesBetweenCommits)
}

func TestBuildSessions_TwoCommitsWithinTimeout(t *testing.T) {
	commits := []*models.Commit{
		commitAt("alice", baseTime),
		commitAt("alice", baseTime.Add(30*time.Minute)),
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, 45.0, s.DurationMinutes, "30 min span + 15 min bonus")
	require.NotNil(t, s.AvgMinutesBetweenCommits)
	require.NotNil(t, s.MaxMinutesBetweenCommits)
	assert.Equal(t, 30.0, *s.AvgMinutesBetweenCommits)
	assert.Equal(t, 30.0, *s.MaxMinutesBetweenCommits)
}

func TestBuildSessions_TimeoutBoundary(t *testing.T) {
	t.Run("gap equal to timeout stays in one session", func(t *testing.T) {
		commits := []*models.Commit{
			commitAt("alice", baseTime),
			commitAt("alice", baseTime.Add(45*time.Minute)),
		}
		sessions, err := BuildSessions(commits, defaultConfig)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 2, sessions[0].CommitCount())
	})

	t.Run("gap one minute over the timeout splits", func(t *testing.T) {
		commits := []*models.Commit{
			commitAt("alice", baseTime),
			commitAt("alice", baseTime.Add(46*time.Minute)),
		}
		sessions, err := BuildSessions(commits, defaultConfig)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, 1, sessions[0].CommitCount())
		assert.Equal(t, 1, sessions[1].CommitCount())
	})
}

func TestBuildSessions_OutOfOrderInput(t *testing.T) {
	commits := []*models.Commit{
		commitAt("alice", baseTime.Add(40*time.Minute)),
		commitAt("alice", baseTime),
		commitAt("alice", baseTime.Add(20*time.Minute)),
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, baseTime, s.StartTime)
	assert.Equal(t, baseTime.Add(40*time.Minute), s.EndTime)
	for i := 1; i < len(s.Commits); i++ {
		assert.True(t, !s.Commits[i].Timestamp.Before(s.Commits[i-1].Timestamp),
			"commits inside a session must be sorted ascending")
	}
}

func TestBuildSessions_IdenticalTimestampsMerge(t *testing.T) {
	commits := []*models.Commit{
		commitAt("alice", baseTime),
		commitAt("alice", baseTime),
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 2, sessions[0].CommitCount())
	require.NotNil(t, sessions[0].AvgMinutesBetweenCommits)
	assert.Equal(t, 0.0, *sessions[0].AvgMinutesBetweenCommits)
}

func TestBuildSessions_NeverMixesAuthors(t *testing.T) {
	commits := []*models.Commit{
		commitAt("alice", baseTime),
		commitAt("bob", baseTime.Add(5*time.Minute)),
		commitAt("alice", baseTime.Add(10*time.Minute)),
		commitAt("bob", baseTime.Add(15*time.Minute)),
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		for _, c := range s.Commits {
			assert.Equal(t, s.Author, c.Author)
		}
		assert.Equal(t, 2, s.CommitCount())
	}
}

func TestBuildSessions_PartitionMaximality(t *testing.T) {
	// Three bursts separated by gaps over the timeout.
	var commits []*models.Commit
	for burst := 0; burst < 3; burst++ {
		start := baseTime.Add(time.Duration(burst) * 3 * time.Hour)
		for i := 0; i < 4; i++ {
			commits = append(commits, commitAt("alice", start.Add(time.Duration(i*10)*time.Minute)))
		}
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	for i := 1; i < len(sessions); i++ {
		gap := sessions[i].StartTime.Sub(sessions[i-1].EndTime).Minutes()
		assert.Greater(t, gap, float64(defaultConfig.SessionTimeoutMinutes),
			"adjacent sessions must not be mergeable")
	}
}

func TestBuildSessions_CarriesFirstNonEmptyLogin(t *testing.T) {
	commits := []*models.Commit{
		{SHA: "a", Author: "alice", Timestamp: baseTime},
		{SHA: "b", Author: "alice", AuthorLogin: "alice-gh", Timestamp: baseTime.Add(time.Minute)},
	}
	sessions, err := BuildSessions(commits, defaultConfig)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "alice-gh", sessions[0].AuthorLogin)
}

func TestBuildSessions_MidnightCrossingKeepsLocalStartDay(t *testing.T) {
	cfg := defaultConfig
	cfg.Timezone = "America/New_York"

	// 23:50 and 00:10 local time across midnight; both instants are already
	// past midnight in UTC.
	start := time.Date(2024, 3, 16, 3, 50, 0, 0, time.UTC) // 23:50 on Mar 15 in NY
	end := time.Date(2024, 3, 16, 4, 10, 0, 0, time.UTC)   // 00:10 on Mar 16 in NY
	sessions, err := BuildSessions([]*models.Commit{
		commitAt("alice", start),
		commitAt("alice", end),
	}, cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "20 minute gap stays one session")
	assert.Equal(t, "2024-03-15", sessions[0].Date,
		"session buckets to the local start day, not the UTC day")
}

func TestBuildSessions_CustomTimeoutAndBonus(t *testing.T) {
	cfg := SessionConfig{SessionTimeoutMinutes: 10, FirstCommitBonusMinutes: 5, Timezone: "UTC"}
	commits := []*models.Commit{
		commitAt("alice", baseTime),
		commitAt("alice", baseTime.Add(10*time.Minute)),
		commitAt("alice", baseTime.Add(21*time.Minute)),
	}
	sessions, err := BuildSessions(commits, cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 15.0, sessions[0].DurationMinutes, "10 min span + 5 bonus")
	assert.Equal(t, 5.0, sessions[1].DurationMinutes, "bonus only")
}
