package stats

import (
	"sort"

	"github.com/codetime-dev/codetime/internal/models"
	"github.com/codetime-dev/codetime/internal/timeutil"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// CalculateTotals computes the grand-total rollup over the full session set.
func CalculateTotals(sessions []*models.Session) models.AggregateStats {
	return calculateAggregateStats(sessions)
}

// AggregateByAuthor partitions sessions by author, runs the shared rollup on
// each partition and returns one record per author sorted descending by
// total hours. Equal totals keep their original encounter order.
func AggregateByAuthor(sessions []*models.Session) []*models.AuthorStats {
	byAuthor := make(map[string][]*models.Session)
	var authors []string
	logins := make(map[string]string)
	for _, s := range sessions {
		if _, seen := byAuthor[s.Author]; !seen {
			authors = append(authors, s.Author)
		}
		byAuthor[s.Author] = append(byAuthor[s.Author], s)
		if logins[s.Author] == "" && s.AuthorLogin != "" {
			logins[s.Author] = s.AuthorLogin
		}
	}

	out := make([]*models.AuthorStats, 0, len(authors))
	for _, author := range authors {
		out = append(out, &models.AuthorStats{
			Author:         author,
			AuthorLogin:    logins[author],
			AggregateStats: calculateAggregateStats(byAuthor[author]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalHours > out[j].TotalHours
	})
	return out
}

// AggregateByDay partitions sessions by their date key (as bucketed by the
// session builder, not re-derived) and returns per-day summaries sorted
// ascending by date. The fixed-width ISO format makes the lexicographic sort
// chronological.
func AggregateByDay(sessions []*models.Session) []*models.DayStats {
	byDay := make(map[string]*models.DayStats)
	minutes := make(map[string]float64)
	seenAuthor := make(map[string]map[string]bool)
	var days []string
	for _, s := range sessions {
		d, ok := byDay[s.Date]
		if !ok {
			d = &models.DayStats{Date: s.Date, Authors: []string{}}
			byDay[s.Date] = d
			seenAuthor[s.Date] = make(map[string]bool)
			days = append(days, s.Date)
		}
		minutes[s.Date] += s.DurationMinutes
		d.TotalCommits += s.CommitCount()
		d.SessionsCount++
		if !seenAuthor[s.Date][s.Author] {
			seenAuthor[s.Date][s.Author] = true
			d.Authors = append(d.Authors, s.Author)
		}
	}

	sort.Strings(days)
	out := make([]*models.DayStats, 0, len(days))
	for _, day := range days {
		d := byDay[day]
		d.TotalHours = timeutil.Round2(minutes[day] / 60)
		out = append(out, d)
	}
	return out
}

// calculateAggregateStats is the single shared rollup used at every
// aggregation level so that global and per-author views apply identical
// formulas. Every published metric is rounded half away from zero at two
// decimals as its own last step.
func calculateAggregateStats(sessions []*models.Session) models.AggregateStats {
	stats := models.AggregateStats{SessionsCount: len(sessions)}
	if len(sessions) == 0 {
		return stats
	}

	var totalMinutes, longestMinutes float64
	dates := make(map[string]bool)
	for _, s := range sessions {
		totalMinutes += s.DurationMinutes
		if s.DurationMinutes > longestMinutes {
			longestMinutes = s.DurationMinutes
		}
		stats.TotalCommits += s.CommitCount()
		dates[s.Date] = true
	}
	stats.DevDays = len(dates)
	stats.TotalHours = timeutil.Round2(totalMinutes / 60)
	stats.LongestSessionHours = timeutil.Round2(longestMinutes / 60)
	stats.AvgCommitsPerSession = timeutil.Round2(float64(stats.TotalCommits) / float64(len(sessions)))
	stats.AvgSessionHours = timeutil.Round2(totalMinutes / 60 / float64(len(sessions)))
	if stats.DevDays > 0 {
		stats.AvgSessionsPerDay = timeutil.Round2(float64(len(sessions)) / float64(stats.DevDays))
	}

	stats.MostProductiveDayOfWeek = mostProductiveWeekday(sessions)
	stats.LongestStreakDays = longestStreak(dates)
	stats.MinTimeBetweenSessionsMin = minTimeBetweenSessions(sessions)
	stats.AvgMinutesBetweenCommits, stats.MaxMinutesBetweenCommits = commitGapStats(sessions)
	return stats
}

// mostProductiveWeekday sums session hours into seven weekday buckets keyed
// by the UTC weekday of the stored start instant. The instant is not
// re-localized into the session's configured zone; near day boundaries this
// can disagree with the session's own date bucketing, and that behavior is
// part of the published output. Ties keep the first weekday reached in a
// single Sunday-to-Saturday scan.
func mostProductiveWeekday(sessions []*models.Session) *string {
	var hours [7]float64
	for _, s := range sessions {
		hours[int(s.StartTime.UTC().Weekday())] += s.DurationMinutes / 60
	}
	best := -1
	bestHours := 0.0
	for i, h := range hours {
		if h > bestHours {
			bestHours = h
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &weekdayNames[best]
}

// longestStreak returns the length of the longest run of calendar-consecutive
// dates among the session days. Any non-empty set yields at least 1.
func longestStreak(dateSet map[string]bool) int {
	if len(dateSet) == 0 {
		return 0
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if timeutil.ConsecutiveDays(dates[i-1], dates[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// minTimeBetweenSessions finds the smallest positive gap between one
// author's session end and their next session start, across all authors.
// Overlapping or touching sessions are not candidates. Nil when no author
// has two sessions or no positive gap exists.
func minTimeBetweenSessions(sessions []*models.Session) *float64 {
	byAuthor := make(map[string][]*models.Session)
	for _, s := range sessions {
		byAuthor[s.Author] = append(byAuthor[s.Author], s)
	}

	var min float64
	found := false
	for _, list := range byAuthor {
		if len(list) < 2 {
			continue
		}
		sorted := append([]*models.Session(nil), list...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EndTime.Before(sorted[j].EndTime)
		})
		for i := 1; i < len(sorted); i++ {
			gap := sorted[i].StartTime.Sub(sorted[i-1].EndTime).Minutes()
			if gap <= 0 {
				continue
			}
			if !found || gap < min {
				min = gap
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	r := timeutil.Round2(min)
	return &r
}

// commitGapStats recombines the per-session commit-gap metrics into
// aggregate ones. The average replicates each session's mean gap once per
// gap it represents (commit count minus one) rather than reprocessing raw
// timestamps; existing callers depend on exactly this weighting. Both
// metrics are nil when no multi-commit session exists.
func commitGapStats(sessions []*models.Session) (avg, max *float64) {
	var sum, maxGap float64
	weight := 0
	for _, s := range sessions {
		if s.AvgMinutesBetweenCommits == nil {
			continue
		}
		n := s.CommitCount() - 1
		sum += *s.AvgMinutesBetweenCommits * float64(n)
		weight += n
		if s.MaxMinutesBetweenCommits != nil && *s.MaxMinutesBetweenCommits > maxGap {
			maxGap = *s.MaxMinutesBetweenCommits
		}
	}
	if weight == 0 {
		return nil, nil
	}
	a := timeutil.Round2(sum / float64(weight))
	m := timeutil.Round2(maxGap)
	return &a, &m
}
