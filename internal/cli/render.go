package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/codetime-dev/codetime/internal/models"
)

var (
	headline = color.New(color.FgCyan, color.Bold)
	dimmed   = color.New(color.Faint)
)

func renderRepoStats(w io.Writer, result *models.RepoStats) error {
	if _, err := headline.Fprintf(w, "%s/%s\n", result.Owner, result.Repo); err != nil {
		return err
	}
	if _, err := dimmed.Fprintf(w, "timeout %dm, bonus %dm, timezone %s\n\n",
		result.Options.SessionTimeoutMinutes,
		result.Options.FirstCommitBonusMinutes,
		result.Options.Timezone); err != nil {
		return err
	}

	if err := renderTotals(w, result.Totals); err != nil {
		return err
	}
	if len(result.Authors) > 0 {
		if err := renderAuthors(w, result.Authors); err != nil {
			return err
		}
	}
	if len(result.Days) > 0 {
		if err := renderDays(w, result.Days); err != nil {
			return err
		}
	}
	return nil
}

func renderTotals(w io.Writer, totals models.AggregateStats) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})

	data := [][]string{
		{"Total hours", fmtFloat(totals.TotalHours)},
		{"Sessions", strconv.Itoa(totals.SessionsCount)},
		{"Commits", strconv.Itoa(totals.TotalCommits)},
		{"Dev days", strconv.Itoa(totals.DevDays)},
		{"Longest session (h)", fmtFloat(totals.LongestSessionHours)},
		{"Avg commits/session", fmtFloat(totals.AvgCommitsPerSession)},
		{"Avg sessions/day", fmtFloat(totals.AvgSessionsPerDay)},
		{"Avg session hours", fmtFloat(totals.AvgSessionHours)},
		{"Longest streak (days)", strconv.Itoa(totals.LongestStreakDays)},
		{"Most productive weekday", fmtString(totals.MostProductiveDayOfWeek)},
		{"Min gap between sessions (m)", fmtOptional(totals.MinTimeBetweenSessionsMin)},
		{"Avg gap between commits (m)", fmtOptional(totals.AvgMinutesBetweenCommits)},
		{"Max gap between commits (m)", fmtOptional(totals.MaxMinutesBetweenCommits)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func renderAuthors(w io.Writer, authors []*models.AuthorStats) error {
	if _, err := headline.Fprintln(w, "\nBy author"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Author", "Hours", "Sessions", "Commits", "Dev Days", "Streak", "Avg h/Session"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range authors {
		data = append(data, []string{
			a.Author,
			fmtFloat(a.TotalHours),
			strconv.Itoa(a.SessionsCount),
			strconv.Itoa(a.TotalCommits),
			strconv.Itoa(a.DevDays),
			strconv.Itoa(a.LongestStreakDays),
			fmtFloat(a.AvgSessionHours),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func renderDays(w io.Writer, days []*models.DayStats) error {
	if _, err := headline.Fprintln(w, "\nBy day"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Hours", "Sessions", "Commits", "Authors"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range days {
		data = append(data, []string{
			d.Date,
			fmtFloat(d.TotalHours),
			strconv.Itoa(d.SessionsCount),
			strconv.Itoa(d.TotalCommits),
			strings.Join(d.Authors, ", "),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

func fmtString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
