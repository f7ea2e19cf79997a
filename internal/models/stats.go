package models

import "time"

// Session is a maximal run of same-author commits where no two adjacent
// commits are separated by more than the configured timeout. Sessions are
// built by the stats package and never mix authors.
type Session struct {
	Author          string    `json:"author"`
	AuthorLogin     string    `json:"authorLogin,omitempty"`
	Commits         []*Commit `json:"commits"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	// Date is the calendar day (YYYY-MM-DD) that StartTime falls on in the
	// configured timezone. A session is always bucketed under its start day,
	// even when EndTime crosses midnight.
	Date string `json:"date"`
	// Gap metrics exist only for sessions with two or more commits. A
	// single-commit session has no gap concept, which is distinct from a
	// zero-length gap.
	AvgMinutesBetweenCommits *float64 `json:"avgMinutesBetweenCommits,omitempty"`
	MaxMinutesBetweenCommits *float64 `json:"maxMinutesBetweenCommits,omitempty"`
}

// CommitCount returns the number of commits in the session.
func (s *Session) CommitCount() int {
	return len(s.Commits)
}

// AggregateStats is the shared rollup shape computed over a session subset.
// Optional fields are nil when the metric is undefined for the subset.
type AggregateStats struct {
	TotalHours                float64  `json:"totalHours"`
	SessionsCount             int      `json:"sessionsCount"`
	TotalCommits              int      `json:"totalCommits"`
	DevDays                   int      `json:"devDays"`
	LongestSessionHours       float64  `json:"longestSessionHours"`
	AvgCommitsPerSession      float64  `json:"avgCommitsPerSession"`
	AvgSessionsPerDay         float64  `json:"avgSessionsPerDay"`
	AvgSessionHours           float64  `json:"avgSessionHours"`
	MostProductiveDayOfWeek   *string  `json:"mostProductiveDayOfWeek,omitempty"`
	LongestStreakDays         int      `json:"longestStreakDays"`
	MinTimeBetweenSessionsMin *float64 `json:"minTimeBetweenSessionsMin,omitempty"`
	AvgMinutesBetweenCommits  *float64 `json:"avgMinutesBetweenCommits,omitempty"`
	MaxMinutesBetweenCommits  *float64 `json:"maxMinutesBetweenCommits,omitempty"`
}

// AuthorStats extends AggregateStats with the author identity it was
// computed for.
type AuthorStats struct {
	Author      string `json:"author"`
	AuthorLogin string `json:"authorLogin,omitempty"`
	AggregateStats
}

// DayStats summarizes all sessions bucketed under one calendar day.
type DayStats struct {
	Date          string   `json:"date"`
	TotalHours    float64  `json:"totalHours"`
	TotalCommits  int      `json:"totalCommits"`
	SessionsCount int      `json:"sessionsCount"`
	Authors       []string `json:"authors"`
}

// RepoStats is the full result envelope returned by the stats service.
type RepoStats struct {
	Owner       string         `json:"owner"`
	Repo        string         `json:"repo"`
	Options     StatsOptions   `json:"options"`
	Totals      AggregateStats `json:"totals"`
	Authors     []*AuthorStats `json:"authors"`
	Days        []*DayStats    `json:"days"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
