package stats

import (
	"strings"

	"github.com/codetime-dev/codetime/internal/models"
)

// Accounts that commit automatically and should not count toward coding
// time unless the caller opts in.
var knownBotLogins = map[string]bool{
	"dependabot":           true,
	"dependabot[bot]":      true,
	"renovate":             true,
	"renovate[bot]":        true,
	"github-actions":       true,
	"greenkeeper[bot]":     true,
	"codecov[bot]":         true,
	"snyk-bot":             true,
	"imgbot[bot]":          true,
	"allcontributors[bot]": true,
	"web-flow":             false, // GitHub's merge committer, not a bot
}

// IsBotAuthor classifies a raw commit as bot-authored. GitHub marks app
// accounts with a "Bot" author type; older integrations are only
// recognizable by login or name convention.
func IsBotAuthor(c *models.RawCommit) bool {
	if c.AuthorType == "Bot" {
		return true
	}
	login := strings.ToLower(c.AuthorLogin)
	if strings.HasSuffix(login, "[bot]") {
		return true
	}
	if ok, found := knownBotLogins[login]; found {
		return ok
	}
	name := strings.ToLower(c.AuthorName)
	return strings.HasSuffix(name, "[bot]") || strings.HasSuffix(name, "-bot")
}

// IsMergeCommit classifies a raw commit as a merge. Parent count is
// authoritative when the source supplies it; the message prefix is the
// fallback for sources that do not.
func IsMergeCommit(c *models.RawCommit) bool {
	if c.ParentCount > 1 {
		return true
	}
	return c.ParentCount == 0 && strings.HasPrefix(c.Message, "Merge ")
}

// Filter drops merge and bot commits according to the options. The input
// slice is not modified.
func Filter(commits []*models.RawCommit, opts models.StatsOptions) []*models.RawCommit {
	out := make([]*models.RawCommit, 0, len(commits))
	for _, c := range commits {
		if !opts.IncludeMerges && IsMergeCommit(c) {
			continue
		}
		if !opts.IncludeBots && IsBotAuthor(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
