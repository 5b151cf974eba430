package npm

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

// VersionMetadata holds what the registry knows about one published version
// of a package, plus the publish timeline around it. Optional fields are
// empty strings or nil pointers when the registry has no value.
type VersionMetadata struct {
	Name              string
	Version           string
	PublishedAt       string // ISO 8601, from the time map
	LatestVersion     string
	LatestPublishedAt string
	License           string
	Deprecated        bool
	Repository        string
	Description       string
}

// Client provides access to the npm registry JSON API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm registry client with the given response-cache TTL.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  integrations.NewClient(cache.Namespace("npm:"), map[string]string{"User-Agent": "pluginhub"}),
		baseURL: "https://registry.npmjs.org",
	}, nil
}

// FetchVersion retrieves publish timestamps and metadata for name@version.
// The full package document is fetched once and cached; per-version answers
// are carved out of it.
func (c *Client) FetchVersion(ctx context.Context, name, version string) (*VersionMetadata, error) {
	name = strings.TrimSpace(name)
	key := "package:" + name

	var data registryResponse
	err := c.Cached(ctx, key, false, &data, func() error {
		return c.Get(ctx, c.baseURL+"/"+escapeName(name), &data)
	})
	if err != nil {
		return nil, err
	}

	meta := &VersionMetadata{
		Name:          name,
		Version:       version,
		LatestVersion: data.DistTags.Latest,
		Description:   data.Description,
	}
	if meta.LatestVersion != "" {
		meta.LatestPublishedAt = data.Time[meta.LatestVersion]
	}
	meta.PublishedAt = data.Time[version]
	if meta.PublishedAt == "" {
		// registry documents always carry these two entries
		meta.PublishedAt = data.Time["modified"]
	}
	if meta.PublishedAt == "" {
		meta.PublishedAt = data.Time["created"]
	}

	if v, ok := data.Versions[version]; ok {
		meta.License = extractField(v.License, "type")
		meta.Deprecated = v.Deprecated != nil && v.Deprecated != false && v.Deprecated != ""
		meta.Repository = integrations.NormalizeRepoURL(extractField(v.Repository, "url"))
		if v.Description != "" {
			meta.Description = v.Description
		}
	}
	return meta, nil
}

// escapeName percent-encodes a package name while keeping the scope
// separator, e.g. "@babel/core" -> "@babel%2Fcore".
func escapeName(name string) string {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			return name[:i] + "%2F" + url.PathEscape(name[i+1:])
		}
	}
	return url.PathEscape(name)
}

// extractField copes with registry fields that are either a bare string or
// an object ({"type": ...}, {"url": ...}).
func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	DistTags    distTags                  `json:"dist-tags"`
	Time        map[string]string         `json:"time"`
	Versions    map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Description string `json:"description"`
	License     any    `json:"license"`
	Repository  any    `json:"repository"`
	Deprecated  any    `json:"deprecated"`
}
