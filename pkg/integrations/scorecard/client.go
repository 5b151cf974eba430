package scorecard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

// Result is the OpenSSF Scorecard composite score for a repository.
type Result struct {
	Score float64 `json:"score"`
	Date  string  `json:"date"`
}

// Client queries the OpenSSF Scorecard API for GitHub repositories.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Scorecard client with the given response-cache TTL.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  integrations.NewClient(cache.Namespace("scorecard:"), map[string]string{"User-Agent": "pluginhub"}),
		baseURL: "https://api.securityscorecards.dev",
	}, nil
}

// Fetch retrieves the scorecard for owner/repo. Repositories the scorecard
// project has never scanned yield ok=false with a nil error.
func (c *Client) Fetch(ctx context.Context, owner, repo string) (*Result, bool, error) {
	key := "projects:" + owner + "/" + repo

	var res Result
	err := c.Cached(ctx, key, false, &res, func() error {
		u := fmt.Sprintf("%s/projects/github.com/%s/%s", c.baseURL, owner, repo)
		return c.Get(ctx, u, &res)
	})
	if errors.Is(err, integrations.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &res, true, nil
}
