package models

import (
	"fmt"
	"time"
)

// Default session construction parameters. These are part of the published
// contract and must not drift between front-ends.
const (
	DefaultSessionTimeoutMinutes   = 45
	DefaultFirstCommitBonusMinutes = 15
	DefaultTimezone                = "UTC"
)

// StatsOptions carries the caller-supplied knobs for one stats computation.
// The zero value is not usable directly; call Normalize to apply defaults.
type StatsOptions struct {
	SessionTimeoutMinutes   int    `json:"sessionTimeoutMinutes"`
	FirstCommitBonusMinutes int    `json:"firstCommitBonusMinutes"`
	Timezone                string `json:"timezone"`
	IncludeMerges           bool   `json:"includeMerges"`
	IncludeBots             bool   `json:"includeBots"`
	// MaxCommits caps how many commits are fetched from the source.
	// Zero means no cap.
	MaxCommits int        `json:"maxCommits,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
}

// Normalize returns a copy with defaults applied to unset fields.
func (o StatsOptions) Normalize() StatsOptions {
	if o.SessionTimeoutMinutes <= 0 {
		o.SessionTimeoutMinutes = DefaultSessionTimeoutMinutes
	}
	if o.FirstCommitBonusMinutes <= 0 {
		o.FirstCommitBonusMinutes = DefaultFirstCommitBonusMinutes
	}
	if o.Timezone == "" {
		o.Timezone = DefaultTimezone
	}
	return o
}

// CacheKey builds the composite cache key for a repository and option set.
// Every option that changes observable output must be part of the key.
func (o StatsOptions) CacheKey(owner, repo string) string {
	since, until := "", ""
	if o.Since != nil {
		since = o.Since.UTC().Format(time.RFC3339)
	}
	if o.Until != nil {
		until = o.Until.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s/%s|t=%d|b=%d|tz=%s|m=%t|bot=%t|max=%d|since=%s|until=%s",
		owner, repo,
		o.SessionTimeoutMinutes, o.FirstCommitBonusMinutes, o.Timezone,
		o.IncludeMerges, o.IncludeBots, o.MaxCommits, since, until)
}
