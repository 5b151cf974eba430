package osv

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

// Vulnerability is one OSV record with its severity entries.
type Vulnerability struct {
	ID       string     `json:"id"`
	Summary  string     `json:"summary"`
	Severity []Severity `json:"severity"`
}

// Severity is a single CVSS-like severity entry on a vulnerability.
type Severity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

// Client queries the OSV vulnerability database.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an OSV client with the given response-cache TTL.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  integrations.NewClient(cache.Namespace("osv:"), map[string]string{"User-Agent": "pluginhub"}),
		baseURL: "https://api.osv.dev",
	}, nil
}

// Query returns the known vulnerabilities for name@version in the given
// ecosystem ("npm" for the current pipelines). No vulnerabilities is an
// empty slice, not an error.
func (c *Client) Query(ctx context.Context, ecosystem, name, version string) ([]Vulnerability, error) {
	key := "query:" + ecosystem + ":" + name + "@" + version

	payload := queryRequest{Version: version}
	payload.Package.Name = name
	payload.Package.Ecosystem = ecosystem

	var resp queryResponse
	err := c.Cached(ctx, key, false, &resp, func() error {
		return c.PostJSON(ctx, c.baseURL+"/v1/query", payload, &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Vulns, nil
}

// MaxScore returns the highest numeric CVSS score carried by v, or 0 when no
// severity entry parses. Vector-only scores without a leading number are
// skipped; this mirrors how the severity data is actually populated.
func (v Vulnerability) MaxScore() float64 {
	best := 0.0
	for _, s := range v.Severity {
		if !strings.HasPrefix(strings.ToUpper(s.Type), "CVSS") || s.Score == "" {
			continue
		}
		head, _, _ := strings.Cut(s.Score, "/")
		score, err := strconv.ParseFloat(head, 64)
		if err != nil {
			continue
		}
		if score > best {
			best = score
		}
	}
	return best
}

type queryRequest struct {
	Package struct {
		Name      string `json:"name"`
		Ecosystem string `json:"ecosystem"`
	} `json:"package"`
	Version string `json:"version"`
}

type queryResponse struct {
	Vulns []Vulnerability `json:"vulns"`
}
