// Package enrich holds the pure calculation layer of the pipelines: pull
// request friction, dependency staleness and vulnerability summaries.
// Everything here operates on already-fetched data so it stays trivially
// testable without HTTP fixtures.
package enrich

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/github"
)

// Friction is the median turnaround of externally authored closed pull
// requests, a proxy for how responsive maintainers are to outside
// contributions.
type Friction struct {
	MedianDays float64 `json:"medianDays"`
	Count      int     `json:"count"`
}

// ExternalDurations computes the close-or-merge turnaround in days for
// every pull request not authored by the repository owner. Pull requests
// without both timestamps are skipped.
func ExternalDurations(prs []github.PullRequest, owner string) []float64 {
	var durations []float64
	for _, pr := range prs {
		if strings.EqualFold(pr.User.Login, owner) {
			continue
		}
		closed := pr.ClosedAt
		if closed == nil {
			closed = pr.MergedAt
		}
		if pr.CreatedAt == nil || closed == nil {
			continue
		}
		durations = append(durations, closed.Sub(*pr.CreatedAt).Hours()/24)
	}
	return durations
}

// MedianFriction reduces a set of turnaround durations to the median, in
// days rounded to two decimals, plus the sample count. ok is false when no
// duration was observed.
func MedianFriction(durations []float64) (Friction, bool) {
	if len(durations) == 0 {
		return Friction{}, false
	}
	median, err := stats.Median(durations)
	if err != nil {
		return Friction{}, false
	}
	return Friction{MedianDays: round(median, 2), Count: len(durations)}, true
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
