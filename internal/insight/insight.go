// internal/insight/insight.go

// Package insight derives statistical insights from a raw repository
// snapshot. Every function here is pure: same input, same output, no I/O.
// Empty input never fails; metrics degrade to explicit sentinel values.
package insight

import (
	"sort"

	"github.com/dsablic/repolens/internal/model"
)

// Aggregate runs every analysis stage over the snapshot and composes the
// result. Running it twice on the same snapshot yields identical output.
func Aggregate(raw *model.RawMetrics) *model.Insights {
	return &model.Insights{
		Summary:             Summarize(raw),
		CommitInsights:      AnalyzeCommitPatterns(raw),
		ContributorInsights: AnalyzeContributorPatterns(raw),
		CodeInsights:        AnalyzeCodePatterns(raw),
		Recommendations:     Recommendations(raw),
		HostingStats:        raw.HostingStats,
	}
}

// Summarize produces the high-level overview. It never fails: counts default
// to zero and the language to "unknown".
func Summarize(raw *model.RawMetrics) model.Summary {
	return model.Summary{
		TotalCommits:       raw.CommitStats.TotalCommits,
		TotalContributors:  raw.ContributorStats.TotalContributors,
		TotalFiles:         raw.CodeStats.TotalFiles,
		ActiveContributors: countActiveContributors(raw.ContributorStats.ContributorDetails),
		PrimaryLanguage:    PrimaryLanguage(raw.CodeStats.LanguageDistribution),
		CommitFrequency:    raw.CommitStats.CommitFrequency,
		License:            raw.License,
	}
}

// countActiveContributors counts authors with at least one commit, so
// zero-commit placeholder authors are excluded.
func countActiveContributors(details map[string]model.ContributorDetail) int {
	active := 0
	for _, d := range details {
		if d.Commits > 0 {
			active++
		}
	}
	return active
}

// PrimaryLanguage returns the extension with the highest file count.
// Ties break to the lexicographically smallest extension; an empty
// distribution yields "unknown".
func PrimaryLanguage(distribution map[string]int) string {
	if len(distribution) == 0 {
		return "unknown"
	}

	exts := make([]string, 0, len(distribution))
	for ext := range distribution {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if distribution[exts[i]] != distribution[exts[j]] {
			return distribution[exts[i]] > distribution[exts[j]]
		}
		return exts[i] < exts[j]
	})
	return exts[0]
}
