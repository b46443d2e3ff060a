// internal/insight/commits.go
package insight

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/dsablic/repolens/internal/model"
)

// AnalyzeCommitPatterns derives trend, concentration, peak and commit-size
// metrics from the commit section of the snapshot.
func AnalyzeCommitPatterns(raw *model.RawMetrics) model.CommitInsights {
	cs := raw.CommitStats
	periods, counts := activitySeries(cs.CommitActivity)

	return model.CommitInsights{
		FrequencyTrends:      frequencyTrends(counts),
		ContributionPatterns: contributionPatterns(cs.TopContributors, cs.TotalCommits),
		PeakActivityTimes:    peakActivity(periods, counts),
		CommitSizes:          commitSizes(cs.Commits),
		CommitActivity:       copyActivity(cs.CommitActivity),
	}
}

// activitySeries returns the per-period commit counts in chronological order.
// Period keys are "YYYY-MM", so lexicographic order is chronological.
func activitySeries(activity map[string]int) ([]string, []float64) {
	periods := make([]string, 0, len(activity))
	for p := range activity {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	counts := make([]float64, len(periods))
	for i, p := range periods {
		counts[i] = float64(activity[p])
	}
	return periods, counts
}

func copyActivity(activity map[string]int) map[string]int {
	out := make(map[string]int, len(activity))
	for k, v := range activity {
		out[k] = v
	}
	return out
}

// frequencyTrends classifies the series as increasing when it never
// decreases, decreasing when it never increases, and fluctuating otherwise.
// The stability score is 1 - stddev/mean (population stddev) and can be
// negative for a highly volatile series; it is reported unclamped.
func frequencyTrends(counts []float64) model.FrequencyTrend {
	if len(counts) == 0 {
		return model.FrequencyTrend{Trend: model.InsufficientData}
	}

	nonDecreasing, nonIncreasing := true, true
	for i := 1; i < len(counts); i++ {
		if counts[i] < counts[i-1] {
			nonDecreasing = false
		}
		if counts[i] > counts[i-1] {
			nonIncreasing = false
		}
	}

	trend := model.TrendFluctuating
	switch {
	case nonDecreasing:
		trend = model.TrendIncreasing
	case nonIncreasing:
		trend = model.TrendDecreasing
	}

	mean, _ := stats.Mean(counts)
	sd, _ := stats.StdDevP(counts)

	stability := 1.0
	if mean != 0 {
		stability = 1 - sd/mean
	}

	return model.FrequencyTrend{
		Trend:            trend,
		AveragePerPeriod: mean,
		StabilityScore:   stability,
	}
}

// concentrationThreshold separates a concentrated contributor base from a
// distributed one, measured as the top contributors' share of all commits.
const concentrationThreshold = 0.8

func contributionPatterns(topContributors map[string]int, totalCommits int) model.ContributionPattern {
	if len(topContributors) == 0 || totalCommits == 0 {
		return model.ContributionPattern{DistributionType: model.InsufficientData}
	}

	topTotal := 0
	for _, count := range topContributors {
		topTotal += count
	}
	share := float64(topTotal) / float64(totalCommits)

	distribution := model.DistributionDistributed
	if share > concentrationThreshold {
		distribution = model.DistributionConcentrated
	}

	return model.ContributionPattern{
		DistributionType: distribution,
		Concentration:    share,
	}
}

// peakActivity finds the periods whose count exceeds mean + stddev. The peak
// intensity is the mean of peak counts relative to the overall mean; it is 0
// when no period qualifies.
func peakActivity(periods []string, counts []float64) model.PeakActivity {
	if len(counts) == 0 {
		return model.PeakActivity{
			Status:      model.InsufficientData,
			PeakPeriods: map[string]int{},
		}
	}

	mean, _ := stats.Mean(counts)
	sd, _ := stats.StdDevP(counts)
	threshold := mean + sd

	peaks := map[string]int{}
	peakSum := 0.0
	for i, p := range periods {
		if counts[i] > threshold {
			peaks[p] = int(counts[i])
			peakSum += counts[i]
		}
	}

	intensity := 0.0
	if len(peaks) > 0 && mean != 0 {
		intensity = peakSum / float64(len(peaks)) / mean
	}

	return model.PeakActivity{
		Status:        model.StatusOK,
		PeakPeriods:   peaks,
		PeakIntensity: intensity,
	}
}

// Commit size bucket boundaries, in changed lines per commit.
const (
	sizeMediumMin    = 50
	sizeLargeMin     = 200
	sizeVeryLargeMin = 1000
)

func commitSizes(commits []model.Commit) model.CommitSizeDistribution {
	if len(commits) == 0 {
		return model.CommitSizeDistribution{
			Status: model.InsufficientData,
			Buckets: map[string]int{
				model.SizeSmall:     0,
				model.SizeMedium:    0,
				model.SizeLarge:     0,
				model.SizeVeryLarge: 0,
			},
		}
	}

	buckets := map[string]int{
		model.SizeSmall:     0,
		model.SizeMedium:    0,
		model.SizeLarge:     0,
		model.SizeVeryLarge: 0,
	}
	sizes := make([]float64, len(commits))
	for i, c := range commits {
		size := c.Insertions + c.Deletions
		sizes[i] = float64(size)
		switch {
		case size < sizeMediumMin:
			buckets[model.SizeSmall]++
		case size < sizeLargeMin:
			buckets[model.SizeMedium]++
		case size < sizeVeryLargeMin:
			buckets[model.SizeLarge]++
		default:
			buckets[model.SizeVeryLarge]++
		}
	}

	mean, _ := stats.Mean(sizes)
	median, _ := stats.Median(sizes)
	sd, _ := stats.StdDevP(sizes)
	min, _ := stats.Min(sizes)
	max, _ := stats.Max(sizes)

	return model.CommitSizeDistribution{
		Status:  model.StatusOK,
		Buckets: buckets,
		Mean:    mean,
		Median:  median,
		StdDev:  sd,
		Min:     int(min),
		Max:     int(max),
	}
}
