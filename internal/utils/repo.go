package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoRef parses a repository reference into owner and name. Accepted
// forms: "owner/name" shorthand, any github.com URL (with or without a
// trailing .git or extra path segments), and scp-like SSH remotes
// ("git@github.com:owner/name.git").
func ParseRepoRef(ref string) (owner, name string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", fmt.Errorf("empty repository reference")
	}

	if strings.HasPrefix(ref, "git@") {
		if _, after, found := strings.Cut(ref, ":"); found {
			ref = after
		}
	} else if strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", "", fmt.Errorf("invalid repository URL: %w", err)
		}
		ref = u.Path
	}

	parts := strings.Split(strings.Trim(ref, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q (want owner/name or a GitHub URL)", ref)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// IsValidRepoRef reports whether ref parses as a repository reference.
func IsValidRepoRef(ref string) bool {
	_, _, err := ParseRepoRef(ref)
	return err == nil
}
