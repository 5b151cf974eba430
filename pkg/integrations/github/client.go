package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

// PullRequest is the subset of the GitHub pull-request payload the friction
// pipeline needs.
type PullRequest struct {
	User      User       `json:"user"`
	CreatedAt *time.Time `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	MergedAt  *time.Time `json:"merged_at"`
}

// User is a pull-request author.
type User struct {
	Login string `json:"login"`
}

// Client provides access to the GitHub REST API with caching, retries and
// bearer-token authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client. The token is required by the
// pipelines that use this client; callers validate it before any work
// begins.
func NewClient(token string, cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": "pluginhub",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(cache.Namespace("github:"), headers),
		baseURL: "https://api.github.com",
	}, nil
}

// FetchFile retrieves the decoded content of a file via the repository
// contents endpoint. A missing file yields ok=false with a nil error.
func (c *Client) FetchFile(ctx context.Context, owner, repo, path string) (string, bool, error) {
	var data contentResponse
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)
	key := fmt.Sprintf("contents:%s/%s/%s", owner, repo, path)

	err := c.Cached(ctx, key, false, &data, func() error {
		return c.Get(ctx, u, &data)
	})
	if errors.Is(err, integrations.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if data.Content == "" {
		return "", false, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(data.Content))
	if err != nil {
		return "", false, fmt.Errorf("decode %s/%s/%s: %w", owner, repo, path, err)
	}
	return string(decoded), true, nil
}

// ListClosedPulls returns one page of closed pull requests, most recently
// created first, 100 per page. An empty slice signals the end of the listing.
func (c *Client) ListClosedPulls(ctx context.Context, owner, repo string, page int) ([]PullRequest, error) {
	q := url.Values{
		"state":     {"closed"},
		"sort":      {"created"},
		"direction": {"desc"},
		"per_page":  {"100"},
		"page":      {strconv.Itoa(page)},
	}
	u := fmt.Sprintf("%s/repos/%s/%s/pulls?%s", c.baseURL, owner, repo, q.Encode())

	// Pages go stale too fast to cache, but transient failures still get
	// the default retry policy before the repository is marked failed.
	var pulls []PullRequest
	err := httputil.RetryWithBackoff(ctx, func() error {
		pulls = nil
		return c.Get(ctx, u, &pulls)
	})
	if err != nil {
		return nil, err
	}
	return pulls, nil
}

func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

type contentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
