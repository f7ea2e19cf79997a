// Package stats implements the session-construction and aggregation
// pipeline: commits are grouped into per-author coding sessions under a
// time-gap heuristic, and sessions are rolled up into totals, per-author and
// per-day views.
package stats

import (
	"sort"
	"time"

	"github.com/codetime-dev/codetime/internal/models"
	"github.com/codetime-dev/codetime/internal/timeutil"
)

// SessionConfig holds the session construction parameters.
type SessionConfig struct {
	// SessionTimeoutMinutes is the largest gap between consecutive commits
	// that still belongs to one session. The boundary is inclusive: a gap
	// exactly equal to the timeout stays in the same session.
	SessionTimeoutMinutes int
	// FirstCommitBonusMinutes is added once to every session's duration to
	// approximate ramp-up time before the first recorded commit.
	FirstCommitBonusMinutes int
	// Timezone is the IANA zone name used for day bucketing.
	Timezone string
}

// BuildSessions groups commits into per-author sessions. Input order is not
// assumed; each author's commits are sorted by timestamp before the sweep.
// The only error condition is an unresolvable timezone name. An empty input
// yields an empty, non-nil result.
//
// No cross-author output ordering is guaranteed; within one author sessions
// come out chronologically.
func BuildSessions(commits []*models.Commit, cfg SessionConfig) ([]*models.Session, error) {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	// Partition by display author, preserving encounter order so repeated
	// runs over the same input produce identical output.
	byAuthor := make(map[string][]*models.Commit)
	var authors []string
	logins := make(map[string]string)
	for _, c := range commits {
		if _, seen := byAuthor[c.Author]; !seen {
			authors = append(authors, c.Author)
		}
		byAuthor[c.Author] = append(byAuthor[c.Author], c)
		if logins[c.Author] == "" && c.AuthorLogin != "" {
			logins[c.Author] = c.AuthorLogin
		}
	}

	sessions := make([]*models.Session, 0)
	timeout := float64(cfg.SessionTimeoutMinutes)
	for _, author := range authors {
		list := append([]*models.Commit(nil), byAuthor[author]...)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp.Before(list[j].Timestamp)
		})

		open := []*models.Commit{list[0]}
		for _, c := range list[1:] {
			gap := timeutil.MinutesBetween(open[len(open)-1].Timestamp, c.Timestamp)
			if gap <= timeout {
				open = append(open, c)
				continue
			}
			sessions = append(sessions, closeSession(open, author, logins[author], cfg, loc))
			open = []*models.Commit{c}
		}
		sessions = append(sessions, closeSession(open, author, logins[author], cfg, loc))
	}
	return sessions, nil
}

func closeSession(commits []*models.Commit, author, login string, cfg SessionConfig, loc *time.Location) *models.Session {
	start := commits[0].Timestamp
	end := commits[len(commits)-1].Timestamp

	duration := float64(cfg.FirstCommitBonusMinutes)
	if len(commits) > 1 {
		duration += end.Sub(start).Minutes()
	}

	s := &models.Session{
		Author:          author,
		AuthorLogin:     login,
		Commits:         commits,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		Date:            timeutil.DayOf(start, loc),
	}

	if len(commits) > 1 {
		var sum, max float64
		for i := 1; i < len(commits); i++ {
			gap := timeutil.MinutesBetween(commits[i-1].Timestamp, commits[i].Timestamp)
			sum += gap
			if gap > max {
				max = gap
			}
		}
		avg := timeutil.Round2(sum / float64(len(commits)-1))
		maxR := timeutil.Round2(max)
		s.AvgMinutesBetweenCommits = &avg
		s.MaxMinutesBetweenCommits = &maxR
	}
	return s
}
