package stats

import "github.com/codetime-dev/codetime/internal/models"

// Normalize maps raw transport commits into the internal commit entity.
// The display author prefers the stable GitHub login when known, falling
// back to the raw author name; classification flags are computed once here
// so downstream stages never re-inspect transport fields.
func Normalize(raw []*models.RawCommit) []*models.Commit {
	commits := make([]*models.Commit, 0, len(raw))
	for _, r := range raw {
		author := r.AuthorLogin
		if author == "" {
			author = r.AuthorName
		}
		commits = append(commits, &models.Commit{
			SHA:         r.SHA,
			Author:      author,
			AuthorLogin: r.AuthorLogin,
			Timestamp:   r.AuthorDate,
			Message:     r.Message,
			IsMerge:     IsMergeCommit(r),
			IsBot:       IsBotAuthor(r),
		})
	}
	return commits
}
