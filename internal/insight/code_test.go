// internal/insight/code_test.go
package insight_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/dsablic/repolens/internal/insight"
	"github.com/dsablic/repolens/internal/model"
)

func TestLanguageTrends(t *testing.T) {
	raw := &model.RawMetrics{CodeStats: model.CodeStats{
		LanguageDistribution: map[string]int{".go": 6, ".md": 2, ".yaml": 2},
	}}
	out := insight.AnalyzeCodePatterns(raw)

	trends := out.LanguageTrends
	if trends.Status != model.StatusOK {
		t.Fatalf("expected ok status, got %s", trends.Status)
	}
	if math.Abs(trends.Shares[".go"]-0.6) > 1e-9 {
		t.Errorf("expected .go share 0.6, got %f", trends.Shares[".go"])
	}
	sum := 0.0
	for _, share := range trends.Shares {
		sum += share
	}
	if math.Abs(sum-1.0) > 0.01 {
		t.Errorf("expected shares to sum to 1, got %f", sum)
	}
}

func TestLanguageTrendsEmpty(t *testing.T) {
	out := insight.AnalyzeCodePatterns(&model.RawMetrics{})
	if out.LanguageTrends.Status != model.InsufficientData {
		t.Errorf("expected insufficient_data, got %s", out.LanguageTrends.Status)
	}
}

func TestFileSizeBuckets(t *testing.T) {
	raw := &model.RawMetrics{CodeStats: model.CodeStats{
		FileStats: map[string]model.FileStat{
			"tiny.go":   {Lines: 99},
			"medium.go": {Lines: 100},
			"mid2.go":   {Lines: 499},
			"large.go":  {Lines: 500},
		},
	}}
	out := insight.AnalyzeCodePatterns(raw)

	sizes := out.FileSizes
	if sizes.Status != model.StatusOK {
		t.Fatalf("expected ok status, got %s", sizes.Status)
	}
	if sizes.Buckets[model.FileSmall] != 1 || sizes.Buckets[model.FileMedium] != 2 || sizes.Buckets[model.FileLarge] != 1 {
		t.Errorf("unexpected bucket split: %v", sizes.Buckets)
	}
	if math.Abs(sizes.AverageLines-299.5) > 1e-9 {
		t.Errorf("expected average 299.5, got %f", sizes.AverageLines)
	}
}

func TestCodeOrganizationDepth(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		depth       int
		wantsAdvice bool
	}{
		{"root file", "main.go", 0, false},
		{"depth 5 is healthy", "a/b/c/d/e/f.go", 5, false},
		{"depth 6 triggers advice", "a/b/c/d/e/f/g.go", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &model.RawMetrics{CodeStats: model.CodeStats{
				FileStats: map[string]model.FileStat{tt.path: {Lines: 10, Extension: ".go"}},
			}}
			org := insight.AnalyzeCodePatterns(raw).Organization

			if org.MaxDepth != tt.depth {
				t.Errorf("expected depth %d, got %d", tt.depth, org.MaxDepth)
			}
			found := false
			for _, rec := range org.Recommendations {
				if strings.Contains(rec.Description, "flattening") {
					found = true
				}
			}
			if found != tt.wantsAdvice {
				t.Errorf("expected flattening advice %v, recommendations: %v", tt.wantsAdvice, org.Recommendations)
			}
		})
	}
}

func TestCodeOrganizationCrowdedDirectory(t *testing.T) {
	files := map[string]model.FileStat{}
	for i := 0; i < 21; i++ {
		files[fmt.Sprintf("pkg/file%02d.go", i)] = model.FileStat{Lines: 10, Extension: ".go"}
	}
	raw := &model.RawMetrics{CodeStats: model.CodeStats{FileStats: files}}
	org := insight.AnalyzeCodePatterns(raw).Organization

	if org.FilesPerDirectory["pkg"] != 21 {
		t.Errorf("expected 21 files in pkg, got %d", org.FilesPerDirectory["pkg"])
	}
	found := false
	for _, rec := range org.Recommendations {
		if strings.Contains(rec.Description, "splitting directory pkg (21 files)") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a splitting recommendation naming pkg, got %v", org.Recommendations)
	}
}

func TestCodeOrganizationLargeFiles(t *testing.T) {
	files := map[string]model.FileStat{
		"ok.go": {Lines: 1000, Extension: ".go"},
	}
	for i := 0; i < 12; i++ {
		files[fmt.Sprintf("big%02d.go", i)] = model.FileStat{Lines: 1001 + i, Extension: ".go"}
	}
	raw := &model.RawMetrics{CodeStats: model.CodeStats{FileStats: files}}
	org := insight.AnalyzeCodePatterns(raw).Organization

	// Exactly 1000 lines is not over the threshold.
	if len(org.LargeFiles) != 10 {
		t.Fatalf("expected the list truncated to 10, got %d", len(org.LargeFiles))
	}
	if org.LargeFiles[0].Path != "big11.go" || org.LargeFiles[0].Lines != 1012 {
		t.Errorf("expected big11.go first, got %+v", org.LargeFiles[0])
	}

	// The recommendation counts all 12, not the truncated 10.
	found := false
	for _, rec := range org.Recommendations {
		if strings.Contains(rec.Description, "refactoring 12 files over 1000 lines") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a refactoring recommendation counting 12 files, got %v", org.Recommendations)
	}
}

func TestComplexityIndicatorsEcho(t *testing.T) {
	raw := &model.RawMetrics{CodeStats: model.CodeStats{
		Complexity: &model.ComplexityStats{
			Distribution: map[string]int{
				model.ComplexitySimple:   3,
				model.ComplexityModerate: 1,
			},
		},
	}}
	out := insight.AnalyzeCodePatterns(raw)

	if out.ComplexityIndicators[model.ComplexitySimple] != 3 {
		t.Errorf("expected 3 simple files, got %v", out.ComplexityIndicators)
	}

	// Without complexity data the indicators stay nil.
	out = insight.AnalyzeCodePatterns(&model.RawMetrics{})
	if out.ComplexityIndicators != nil {
		t.Errorf("expected nil indicators without complexity data, got %v", out.ComplexityIndicators)
	}
}

func TestRecommendationRules(t *testing.T) {
	// A healthy repo triggers nothing.
	healthy := &model.RawMetrics{
		CommitStats:      model.CommitStats{CommitFrequency: model.Frequency{Daily: 1.2}},
		ContributorStats: model.ContributorStats{TotalContributors: 5},
		CodeStats: model.CodeStats{
			FileStats: map[string]model.FileStat{"a.go": {Lines: 200}},
		},
	}
	if recs := insight.Recommendations(healthy); len(recs) != 0 {
		t.Errorf("expected no recommendations for a healthy repo, got %v", recs)
	}

	// Each rule fires independently.
	needy := &model.RawMetrics{
		CommitStats:      model.CommitStats{CommitFrequency: model.Frequency{Daily: 0.1}},
		ContributorStats: model.ContributorStats{TotalContributors: 2},
		CodeStats: model.CodeStats{
			FileStats: map[string]model.FileStat{
				"huge1.go": {Lines: 2500},
				"huge2.go": {Lines: 1500},
			},
		},
	}
	recs := insight.Recommendations(needy)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0].Type != "workflow" || recs[0].Priority != model.PriorityHigh {
		t.Errorf("unexpected first recommendation: %+v", recs[0])
	}
	if recs[1].Type != "collaboration" || recs[1].Priority != model.PriorityMedium {
		t.Errorf("unexpected second recommendation: %+v", recs[1])
	}
	if recs[2].Description != "Consider refactoring 2 large files" {
		t.Errorf("unexpected third recommendation: %+v", recs[2])
	}
}
