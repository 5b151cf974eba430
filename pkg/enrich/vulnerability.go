package enrich

import "github.com/oss-plugin-hub/pluginhub/pkg/integrations/osv"

// Severity buckets, from worst to best.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityNone     = "none"
)

// VulnerabilitySummary condenses a vulnerability list into a count and the
// single worst severity bucket.
type VulnerabilitySummary struct {
	Count           int    `json:"count"`
	HighestSeverity string `json:"highestSeverity"`
}

// SeverityBucket maps a CVSS base score to its bucket.
func SeverityBucket(score float64) string {
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// SummarizeVulnerabilities reduces the OSV records for one package version.
// The bucket comes from the highest parseable score across all records;
// records without a numeric score still count but contribute score 0.
func SummarizeVulnerabilities(vulns []osv.Vulnerability) VulnerabilitySummary {
	best := 0.0
	for _, v := range vulns {
		if score := v.MaxScore(); score > best {
			best = score
		}
	}
	summary := VulnerabilitySummary{Count: len(vulns), HighestSeverity: SeverityNone}
	if len(vulns) > 0 {
		summary.HighestSeverity = SeverityBucket(best)
	}
	return summary
}
