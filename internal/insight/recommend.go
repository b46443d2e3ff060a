// internal/insight/recommend.go
package insight

import (
	"fmt"

	"github.com/dsablic/repolens/internal/model"
)

// minDailyFrequency is one commit every two days.
const minDailyFrequency = 0.5

// minContributors is the smallest contributor base that doesn't trigger a
// collaboration recommendation.
const minContributors = 3

// Recommendations evaluates each rule independently in a fixed order and
// appends every one that triggers. Rules never suppress each other.
func Recommendations(raw *model.RawMetrics) []model.Recommendation {
	recs := []model.Recommendation{}

	if raw.CommitStats.CommitFrequency.Daily < minDailyFrequency {
		recs = append(recs, model.Recommendation{
			Type:        "workflow",
			Priority:    model.PriorityHigh,
			Description: "Consider increasing commit frequency for better version control",
			Rationale:   "Regular commits help track changes and reduce merge conflicts",
		})
	}

	if raw.ContributorStats.TotalContributors < minContributors {
		recs = append(recs, model.Recommendation{
			Type:        "collaboration",
			Priority:    model.PriorityMedium,
			Description: "Consider expanding the contributor base",
			Rationale:   "More contributors can bring diverse perspectives and skills",
		})
	}

	largeFiles := 0
	for _, f := range raw.CodeStats.FileStats {
		if f.Lines > largeFileLines {
			largeFiles++
		}
	}
	if largeFiles > 0 {
		recs = append(recs, model.Recommendation{
			Type:        "code_quality",
			Priority:    model.PriorityMedium,
			Description: fmt.Sprintf("Consider refactoring %d large files", largeFiles),
			Rationale:   "Smaller files are easier to maintain and understand",
		})
	}

	return recs
}
