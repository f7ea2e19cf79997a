package models

import "time"

// RawCommit is the transport-level commit record as fetched from a commit
// source (GitHub API or a local clone), before filtering and normalization.
type RawCommit struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name"`
	AuthorLogin string    `json:"author_login,omitempty"`
	AuthorType  string    `json:"author_type,omitempty"`
	AuthorEmail string    `json:"author_email,omitempty"`
	AuthorDate  time.Time `json:"author_date"`
	ParentCount int       `json:"parent_count"`
	CommitURL   string    `json:"html_url,omitempty"`
}

// Commit is the normalized commit entity consumed by the session builder.
// It is created once per fetched record and never mutated.
type Commit struct {
	SHA         string    `json:"sha"`
	Author      string    `json:"author"`
	AuthorLogin string    `json:"authorLogin,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
	IsMerge     bool      `json:"isMerge"`
	IsBot       bool      `json:"isBot"`
}
