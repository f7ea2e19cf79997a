// Package gitlocal reads commit history from a local clone, so stats can be
// computed without touching the GitHub API. It produces the same raw record
// shape as the API client; author logins are unknown for local history.
package gitlocal

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/sirupsen/logrus"

	"github.com/codetime-dev/codetime/internal/models"
)

// Source walks the history of a repository on disk.
type Source struct {
	path   string
	logger *logrus.Logger
}

// NewSource creates a Source for the clone at path.
func NewSource(path string, logger *logrus.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// ListCommits walks the log from HEAD. The owner and name arguments are
// only used for logging; the repository identity is the path the source was
// constructed with.
func (s *Source) ListCommits(ctx context.Context, owner, name string, opts models.StatsOptions) ([]*models.RawCommit, error) {
	repo, err := git.PlainOpen(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not open repository at %s: %w", s.path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("could not resolve HEAD of %s: %w", s.path, err)
	}

	logOpts := &git.LogOptions{From: head.Hash()}
	if opts.Since != nil {
		logOpts.Since = opts.Since
	}
	if opts.Until != nil {
		logOpts.Until = opts.Until
	}

	iter, err := repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("could not read log of %s: %w", s.path, err)
	}
	defer iter.Close()

	s.logger.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  name,
		"path":  s.path,
	}).Info("Walking local commit history")

	var commits []*models.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, &models.RawCommit{
			SHA:         c.Hash.String(),
			Message:     c.Message,
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			AuthorDate:  c.Author.When,
			ParentCount: c.NumParents(),
		})
		if opts.MaxCommits > 0 && len(commits) >= opts.MaxCommits {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk log of %s: %w", s.path, err)
	}

	s.logger.WithField("total_commits", len(commits)).Info("Completed local history walk")
	return commits, nil
}
