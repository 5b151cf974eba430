package enrich

import (
	"strings"
	"time"
)

// StaleAfter is the freshness threshold: a dependency version published
// more than this long ago counts as stale. Exactly at the threshold is
// still fresh.
const StaleAfter = 365 * 24 * time.Hour

// IsStale reports whether a version published at publishedAt is stale as of
// now.
func IsStale(publishedAt, now time.Time) bool {
	return now.Sub(publishedAt) > StaleAfter
}

// StaleCounter aggregates the stale ratio for one platform. Only
// dependencies with a known publish timestamp enter the total.
type StaleCounter struct {
	Stale int `json:"stale"`
	Total int `json:"total"`
}

// Observe records one dependency with a known publish timestamp.
func (c *StaleCounter) Observe(publishedAt, now time.Time) {
	c.Total++
	if IsStale(publishedAt, now) {
		c.Stale++
	}
}

// Ratio returns stale/total rounded to three decimals, or 0 when nothing
// was observed.
func (c *StaleCounter) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return round(float64(c.Stale)/float64(c.Total), 3)
}

// CleanVersion strips the range operators npm manifests put in front of a
// version so the exact version can be looked up in the registry.
func CleanVersion(version string) string {
	return strings.TrimLeft(version, "^~")
}

// IsNPMPackage filters out dependency specs that are not registry package
// names (git URLs, github: shorthands).
func IsNPMPackage(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "github:") || strings.Contains(name, "://") {
		return false
	}
	return true
}
