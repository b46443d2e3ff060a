// internal/insight/contributors.go
package insight

import (
	"sort"

	"github.com/dsablic/repolens/internal/graph"
	"github.com/dsablic/repolens/internal/model"
)

// coreShare is the fraction of total commits an author must strictly exceed
// to count as a core contributor.
const coreShare = 0.1

// AnalyzeContributorPatterns derives core-contributor, distribution,
// expertise and collaboration metrics from the contributor section.
func AnalyzeContributorPatterns(raw *model.RawMetrics) model.ContributorInsights {
	details := raw.ContributorStats.ContributorDetails

	total := 0
	for _, d := range details {
		total += d.Commits
	}

	return model.ContributorInsights{
		CoreContributors:         coreContributors(details, total),
		ContributionDistribution: contributionDistribution(details, total),
		ExpertiseAreas:           expertiseAreas(details),
		Collaboration:            collaborationPatterns(details),
	}
}

// coreContributors returns the authors whose commit count strictly exceeds
// 10% of all commits, sorted by name. With an all-zero commit map the
// threshold is 0 and the strict comparison excludes everyone.
func coreContributors(details map[string]model.ContributorDetail, total int) []string {
	threshold := float64(total) * coreShare

	core := []string{}
	for author, d := range details {
		if float64(d.Commits) > threshold {
			core = append(core, author)
		}
	}
	sort.Strings(core)
	return core
}

// contributionDistribution returns each author's fraction of total commits.
// The fractions sum to 1 within floating-point tolerance; the map is empty
// when there are no commits.
func contributionDistribution(details map[string]model.ContributorDetail, total int) map[string]float64 {
	dist := map[string]float64{}
	if total == 0 {
		return dist
	}
	for author, d := range details {
		dist[author] = float64(d.Commits) / float64(total)
	}
	return dist
}

// expertiseAreas reports each author's touched file paths verbatim.
func expertiseAreas(details map[string]model.ContributorDetail) map[string][]string {
	areas := make(map[string][]string, len(details))
	for author, d := range details {
		files := make([]string, len(d.FilesTouched))
		copy(files, d.FilesTouched)
		areas[author] = files
	}
	return areas
}

// collaborationPatterns builds the co-modification graph (edge weight =
// count of distinct files two authors both touched) and derives its metrics.
func collaborationPatterns(details map[string]model.ContributorDetail) model.CollaborationPatterns {
	touched := make(map[string][]string, len(details))
	for author, d := range details {
		touched[author] = d.FilesTouched
	}
	g := graph.FromMemberships(touched)

	if g.Order() == 0 {
		return model.CollaborationPatterns{
			Status:      model.InsufficientData,
			Isolated:    []string{},
			Components:  [][]string{},
			Betweenness: map[string]float64{},
		}
	}

	isolated := g.IsolatedNodes()
	if isolated == nil {
		isolated = []string{}
	}

	return model.CollaborationPatterns{
		Status:        model.StatusOK,
		Edges:         g.EdgeCount(),
		AverageDegree: g.AverageDegree(),
		MostConnected: g.MostConnected(),
		Isolated:      isolated,
		Components:    g.ConnectedComponents(),
		Betweenness:   g.Betweenness(),
	}
}
