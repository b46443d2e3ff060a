// internal/insight/commits_test.go
package insight_test

import (
	"math"
	"testing"

	"github.com/dsablic/repolens/internal/insight"
	"github.com/dsablic/repolens/internal/model"
)

func TestFrequencyTrendClassification(t *testing.T) {
	tests := []struct {
		name     string
		activity map[string]int
		expected string
	}{
		{"increasing", map[string]int{"2026-01": 1, "2026-02": 3, "2026-03": 7}, model.TrendIncreasing},
		{"decreasing", map[string]int{"2026-01": 9, "2026-02": 4, "2026-03": 1}, model.TrendDecreasing},
		{"fluctuating", map[string]int{"2026-01": 2, "2026-02": 8, "2026-03": 3}, model.TrendFluctuating},
		{"flat counts as increasing", map[string]int{"2026-01": 5, "2026-02": 5, "2026-03": 5}, model.TrendIncreasing},
		{"single period", map[string]int{"2026-01": 5}, model.TrendIncreasing},
		{"empty", map[string]int{}, model.InsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &model.RawMetrics{CommitStats: model.CommitStats{CommitActivity: tt.activity}}
			out := insight.AnalyzeCommitPatterns(raw)
			if out.FrequencyTrends.Trend != tt.expected {
				t.Errorf("expected trend %s, got %s", tt.expected, out.FrequencyTrends.Trend)
			}
		})
	}
}

func TestStabilityScore(t *testing.T) {
	// Flat series has zero deviation so stability is exactly 1.
	raw := &model.RawMetrics{CommitStats: model.CommitStats{
		CommitActivity: map[string]int{"2026-01": 4, "2026-02": 4, "2026-03": 4},
	}}
	out := insight.AnalyzeCommitPatterns(raw)
	if out.FrequencyTrends.StabilityScore != 1.0 {
		t.Errorf("expected stability 1.0 for flat series, got %f", out.FrequencyTrends.StabilityScore)
	}
	if out.FrequencyTrends.AveragePerPeriod != 4.0 {
		t.Errorf("expected average 4.0, got %f", out.FrequencyTrends.AveragePerPeriod)
	}

	// A volatile series can push stddev above the mean; the score goes
	// negative rather than clamping.
	raw = &model.RawMetrics{CommitStats: model.CommitStats{
		CommitActivity: map[string]int{"2026-01": 1, "2026-02": 1, "2026-03": 100},
	}}
	out = insight.AnalyzeCommitPatterns(raw)
	if out.FrequencyTrends.StabilityScore >= 0 {
		t.Errorf("expected negative stability for volatile series, got %f", out.FrequencyTrends.StabilityScore)
	}
}

func TestContributionPatterns(t *testing.T) {
	tests := []struct {
		name          string
		top           map[string]int
		total         int
		expectedType  string
		expectedShare float64
	}{
		{"concentrated", map[string]int{"alice": 85, "bob": 5}, 100, model.DistributionConcentrated, 0.9},
		{"distributed", map[string]int{"alice": 40, "bob": 30}, 100, model.DistributionDistributed, 0.7},
		{"exactly at threshold stays distributed", map[string]int{"alice": 80}, 100, model.DistributionDistributed, 0.8},
		{"no contributors", map[string]int{}, 100, model.InsufficientData, 0},
		{"no commits", map[string]int{"alice": 1}, 0, model.InsufficientData, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &model.RawMetrics{CommitStats: model.CommitStats{
				TopContributors: tt.top,
				TotalCommits:    tt.total,
			}}
			out := insight.AnalyzeCommitPatterns(raw)
			if out.ContributionPatterns.DistributionType != tt.expectedType {
				t.Errorf("expected %s, got %s", tt.expectedType, out.ContributionPatterns.DistributionType)
			}
			if math.Abs(out.ContributionPatterns.Concentration-tt.expectedShare) > 1e-9 {
				t.Errorf("expected concentration %f, got %f", tt.expectedShare, out.ContributionPatterns.Concentration)
			}
		})
	}
}

func TestPeakActivity(t *testing.T) {
	raw := &model.RawMetrics{CommitStats: model.CommitStats{
		CommitActivity: map[string]int{
			"2026-01": 2,
			"2026-02": 3,
			"2026-03": 2,
			"2026-04": 40,
		},
	}}
	out := insight.AnalyzeCommitPatterns(raw)

	peaks := out.PeakActivityTimes
	if peaks.Status != model.StatusOK {
		t.Fatalf("expected ok status, got %s", peaks.Status)
	}
	if len(peaks.PeakPeriods) != 1 {
		t.Fatalf("expected exactly one peak period, got %v", peaks.PeakPeriods)
	}
	if peaks.PeakPeriods["2026-04"] != 40 {
		t.Errorf("expected 2026-04 to peak with 40 commits, got %v", peaks.PeakPeriods)
	}
	if peaks.PeakIntensity <= 1 {
		t.Errorf("expected intensity above 1, got %f", peaks.PeakIntensity)
	}
}

func TestPeakActivityNoPeaks(t *testing.T) {
	// A flat series has threshold == mean, which no period exceeds.
	raw := &model.RawMetrics{CommitStats: model.CommitStats{
		CommitActivity: map[string]int{"2026-01": 5, "2026-02": 5},
	}}
	out := insight.AnalyzeCommitPatterns(raw)

	if len(out.PeakActivityTimes.PeakPeriods) != 0 {
		t.Errorf("expected no peaks for flat activity, got %v", out.PeakActivityTimes.PeakPeriods)
	}
	if out.PeakActivityTimes.PeakIntensity != 0 {
		t.Errorf("expected zero intensity without peaks, got %f", out.PeakActivityTimes.PeakIntensity)
	}
}

func TestCommitSizeBuckets(t *testing.T) {
	commits := []model.Commit{
		{Hash: "a", Insertions: 10},
		{Hash: "b", Insertions: 40, Deletions: 20},
		{Hash: "c", Insertions: 250},
		{Hash: "d", Insertions: 1000, Deletions: 200},
	}
	raw := &model.RawMetrics{CommitStats: model.CommitStats{Commits: commits}}
	out := insight.AnalyzeCommitPatterns(raw)

	sizes := out.CommitSizes
	if sizes.Status != model.StatusOK {
		t.Fatalf("expected ok status, got %s", sizes.Status)
	}
	expected := map[string]int{
		model.SizeSmall:     1,
		model.SizeMedium:    1,
		model.SizeLarge:     1,
		model.SizeVeryLarge: 1,
	}
	for bucket, want := range expected {
		if sizes.Buckets[bucket] != want {
			t.Errorf("bucket %s: expected %d, got %d", bucket, want, sizes.Buckets[bucket])
		}
	}
	if sizes.Min != 10 {
		t.Errorf("expected min 10, got %d", sizes.Min)
	}
	if sizes.Max != 1200 {
		t.Errorf("expected max 1200, got %d", sizes.Max)
	}
	if sizes.Mean != 380 {
		t.Errorf("expected mean 380, got %f", sizes.Mean)
	}
}

func TestCommitSizeBoundaries(t *testing.T) {
	// 49/50 and 199/200 and 999/1000 sit on either side of the bucket edges.
	commits := []model.Commit{
		{Insertions: 49},
		{Insertions: 50},
		{Insertions: 199},
		{Insertions: 200},
		{Insertions: 999},
		{Insertions: 1000},
	}
	raw := &model.RawMetrics{CommitStats: model.CommitStats{Commits: commits}}
	out := insight.AnalyzeCommitPatterns(raw)

	buckets := out.CommitSizes.Buckets
	if buckets[model.SizeSmall] != 1 || buckets[model.SizeMedium] != 2 ||
		buckets[model.SizeLarge] != 2 || buckets[model.SizeVeryLarge] != 1 {
		t.Errorf("unexpected bucket split: %v", buckets)
	}
}

func TestCommitSizesEmpty(t *testing.T) {
	out := insight.AnalyzeCommitPatterns(&model.RawMetrics{})
	sizes := out.CommitSizes
	if sizes.Status != model.InsufficientData {
		t.Errorf("expected insufficient_data, got %s", sizes.Status)
	}
	for bucket, count := range sizes.Buckets {
		if count != 0 {
			t.Errorf("expected empty bucket %s, got %d", bucket, count)
		}
	}
}
