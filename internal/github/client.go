// Package github implements the commit fetch layer against the GitHub REST
// API: token auth, page-based pagination, rate-limit tracking and retry
// with exponential backoff.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/codetime-dev/codetime/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// commitsPerPage is the GitHub API maximum.
const commitsPerPage = 100

// RateLimitInfo tracks the API quota as reported by response headers.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
	// Secondary limits arrive via Retry-After on abuse detection.
	SecondaryLimitReset time.Time
}

// Client is a GitHub REST API client scoped to what the stats pipeline
// needs: repository lookups and commit listing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger

	rateLimit      RateLimitInfo
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetryConfig configures retry behavior.
func WithRetryConfig(maxRetries int, initialBackoff, maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
		c.maxBackoff = maxBackoff
	}
}

// WithBaseURL overrides the API base URL. Used for GitHub Enterprise hosts
// and tests.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// NewClient creates a GitHub client. An empty token produces an
// unauthenticated client subject to the anonymous rate limit.
func NewClient(token string, logger *logrus.Logger, opts ...ClientOption) *Client {
	httpClient := &http.Client{Timeout: 120 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = 120 * time.Second
	}

	c := &Client{
		httpClient:     httpClient,
		baseURL:        defaultBaseURL,
		logger:         logger,
		maxRetries:     3,
		initialBackoff: time.Second,
		maxBackoff:     time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) updateRateLimitInfo(resp *http.Response) {
	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		c.rateLimit.Limit, _ = strconv.Atoi(limit)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.rateLimit.Remaining, _ = strconv.Atoi(remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetTime, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimit.ResetTime = time.Unix(resetTime, 0)
		}
	}
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if retrySeconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
			c.rateLimit.SecondaryLimitReset = time.Now().Add(time.Duration(retrySeconds) * time.Second)
		}
	}
}

// doRequestWithBackoff performs a request, decodes a JSON body into result
// and retries transient failures with exponential backoff.
func (c *Client) doRequestWithBackoff(req *http.Request, result interface{}) error {
	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = NewAPIError(0, "request failed", err)
			c.logger.Warnf("Request attempt %d failed: %v", attempt+1, err)
			time.Sleep(backoff)
			backoff = time.Duration(math.Min(float64(backoff*2), float64(c.maxBackoff)))
			continue
		}

		c.updateRateLimitInfo(resp)

		if resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode == http.StatusForbidden && c.rateLimit.Remaining == 0) {
			resp.Body.Close()
			lastErr = &RateLimitError{
				ResetTime: c.rateLimit.ResetTime,
				Limit:     c.rateLimit.Limit,
				Remaining: c.rateLimit.Remaining,
			}
			c.logger.WithField("reset", c.rateLimit.ResetTime).Warn("Rate limited by GitHub API")
			time.Sleep(backoff)
			backoff = time.Duration(math.Min(float64(backoff*2), float64(c.maxBackoff)))
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = NewAPIError(resp.StatusCode, "failed to read response body", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = NewAPIError(resp.StatusCode, string(body), nil)
			if resp.StatusCode >= 500 {
				time.Sleep(backoff)
				backoff = time.Duration(math.Min(float64(backoff*2), float64(c.maxBackoff)))
				continue
			}
			return lastErr
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return NewAPIError(resp.StatusCode, "failed to decode response", err)
			}
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiCommit mirrors the fields of the list-commits response the pipeline
// consumes.
type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
		Type  string `json:"type"`
	} `json:"author"`
	Parents []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
	HTMLURL string `json:"html_url"`
}

func (a *apiCommit) toRaw() *models.RawCommit {
	raw := &models.RawCommit{
		SHA:         a.SHA,
		Message:     a.Commit.Message,
		AuthorName:  a.Commit.Author.Name,
		AuthorEmail: a.Commit.Author.Email,
		AuthorDate:  a.Commit.Author.Date,
		ParentCount: len(a.Parents),
		CommitURL:   a.HTMLURL,
	}
	if a.Author != nil {
		raw.AuthorLogin = a.Author.Login
		raw.AuthorType = a.Author.Type
	}
	return raw
}

// ListCommits fetches the repository's commit history page by page until it
// is exhausted, the options' time window ends or the max-commit cap is
// reached.
func (c *Client) ListCommits(ctx context.Context, owner, name string, opts models.StatsOptions) ([]*models.RawCommit, error) {
	if owner == "" {
		return nil, NewValidationError("owner", "cannot be empty")
	}
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}

	logger := c.logger.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  name,
	})
	logger.Info("Fetching commits from GitHub API")

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(commitsPerPage))
	if opts.Since != nil {
		query.Set("since", opts.Since.UTC().Format(time.RFC3339))
	}
	if opts.Until != nil {
		query.Set("until", opts.Until.UTC().Format(time.RFC3339))
	}

	var all []*models.RawCommit
	for page := 1; ; page++ {
		query.Set("page", strconv.Itoa(page))
		reqURL := fmt.Sprintf("%s/repos/%s/%s/commits?%s", c.baseURL, owner, name, query.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		var pageCommits []apiCommit
		if err := c.doRequestWithBackoff(req, &pageCommits); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, &RepositoryNotFoundError{Owner: owner, Name: name}
			}
			logger.WithError(err).Error("Failed to fetch commits page")
			return nil, err
		}

		if len(pageCommits) == 0 {
			break
		}

		for i := range pageCommits {
			all = append(all, pageCommits[i].toRaw())
			if opts.MaxCommits > 0 && len(all) >= opts.MaxCommits {
				logger.WithField("max_commits", opts.MaxCommits).Info("Reached commit cap")
				return all, nil
			}
		}

		logger.WithFields(logrus.Fields{
			"page":          page,
			"page_commits":  len(pageCommits),
			"total_commits": len(all),
		}).Debug("Fetched commits page")

		if len(pageCommits) < commitsPerPage {
			break
		}
	}

	logger.WithField("total_commits", len(all)).Info("Completed commit fetch")
	return all, nil
}
