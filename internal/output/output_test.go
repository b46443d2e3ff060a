// internal/output/output_test.go
package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsablic/repolens/internal/model"
	"github.com/dsablic/repolens/internal/output"
)

func sampleReport() model.Report {
	return model.Report{
		GeneratedAt: "2026-08-29T12:00:00Z",
		Repository:  "/src/widget",
		Since:       "2026-01-01",
		Until:       "2026-07-01",
		Insights: model.Insights{
			Summary: model.Summary{
				TotalCommits:       120,
				TotalContributors:  3,
				TotalFiles:         40,
				ActiveContributors: 3,
				PrimaryLanguage:    ".go",
				CommitFrequency:    model.Frequency{Daily: 0.8, Weekly: 5.6, Monthly: 24},
				License:            "MIT",
			},
			CommitInsights: model.CommitInsights{
				FrequencyTrends: model.FrequencyTrend{
					Trend:            model.TrendIncreasing,
					AveragePerPeriod: 20,
					StabilityScore:   0.85,
				},
				ContributionPatterns: model.ContributionPattern{
					DistributionType: model.DistributionDistributed,
					Concentration:    0.7,
				},
				PeakActivityTimes: model.PeakActivity{
					Status:        model.StatusOK,
					PeakPeriods:   map[string]int{"2026-05": 40},
					PeakIntensity: 2.0,
				},
				CommitSizes: model.CommitSizeDistribution{
					Status:  model.StatusOK,
					Buckets: map[string]int{model.SizeSmall: 80, model.SizeMedium: 30, model.SizeLarge: 9, model.SizeVeryLarge: 1},
					Mean:    62, Median: 30, StdDev: 110, Min: 1, Max: 1500,
				},
				CommitActivity: map[string]int{"2026-01": 10, "2026-02": 20, "2026-03": 30, "2026-04": 20, "2026-05": 40},
			},
			ContributorInsights: model.ContributorInsights{
				CoreContributors:         []string{"alice", "bob"},
				ContributionDistribution: map[string]float64{"alice": 0.5, "bob": 0.4, "carol": 0.1},
				ExpertiseAreas:           map[string][]string{"alice": {"cmd/main.go"}},
				Collaboration: model.CollaborationPatterns{
					Status: model.StatusOK, Edges: 2, AverageDegree: 1.33,
					MostConnected: "alice", Isolated: []string{}, Components: [][]string{{"alice", "bob", "carol"}},
					Betweenness: map[string]float64{"alice": 1, "bob": 0, "carol": 0},
				},
			},
			CodeInsights: model.CodeInsights{
				LanguageTrends: model.LanguageTrends{
					Status: model.StatusOK,
					Shares: map[string]float64{".go": 0.75, ".md": 0.25},
				},
				FileSizes: model.FileSizeDistribution{
					Status: model.StatusOK, AverageLines: 150,
					Buckets: map[string]int{model.FileSmall: 20, model.FileMedium: 15, model.FileLarge: 5},
				},
				Organization: model.CodeOrganization{
					MaxDepth:          3,
					FilesPerDirectory: map[string]int{"cmd": 2, "internal": 38},
					FileTypes:         map[string]int{".go": 30, ".md": 10},
					LargeFiles:        []model.LargeFile{{Path: "internal/big.go", Lines: 1400}},
					Recommendations:   []model.Recommendation{},
				},
			},
			Recommendations: []model.Recommendation{
				{Type: "code_quality", Priority: model.PriorityMedium, Description: "Consider refactoring 1 large files", Rationale: "Smaller files are easier to maintain and understand"},
			},
			HostingStats: &model.HostingStats{Stars: 1200, Forks: 80, OpenIssues: 12, OpenPRs: 4, Releases: 9},
		},
	}
}

func emptyReport() model.Report {
	return model.Report{
		GeneratedAt: "2026-08-29T12:00:00Z",
		Repository:  "/src/empty",
		Insights: model.Insights{
			Summary: model.Summary{PrimaryLanguage: "unknown"},
			CommitInsights: model.CommitInsights{
				FrequencyTrends:      model.FrequencyTrend{Trend: model.InsufficientData},
				ContributionPatterns: model.ContributionPattern{DistributionType: model.InsufficientData},
				PeakActivityTimes:    model.PeakActivity{Status: model.InsufficientData, PeakPeriods: map[string]int{}},
				CommitSizes:          model.CommitSizeDistribution{Status: model.InsufficientData, Buckets: map[string]int{}},
				CommitActivity:       map[string]int{},
			},
			ContributorInsights: model.ContributorInsights{
				CoreContributors:         []string{},
				ContributionDistribution: map[string]float64{},
				ExpertiseAreas:           map[string][]string{},
				Collaboration: model.CollaborationPatterns{
					Status: model.InsufficientData, Isolated: []string{}, Components: [][]string{}, Betweenness: map[string]float64{},
				},
			},
			CodeInsights: model.CodeInsights{
				LanguageTrends: model.LanguageTrends{Status: model.InsufficientData, Shares: map[string]float64{}},
				FileSizes:      model.FileSizeDistribution{Status: model.InsufficientData, Buckets: map[string]int{}},
				Organization: model.CodeOrganization{
					FilesPerDirectory: map[string]int{}, FileTypes: map[string]int{},
					LargeFiles: []model.LargeFile{}, Recommendations: []model.Recommendation{},
				},
			},
			Recommendations: []model.Recommendation{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"text", output.FormatText},
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{"html", output.FormatHTML},
		{" html ", output.FormatHTML},
		{"yaml", output.FormatText},
		{"", output.FormatText},
	}

	for _, tt := range tests {
		if got := output.ParseFormat(tt.input); got != tt.expected {
			t.Errorf("ParseFormat(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Insights.Summary.TotalCommits != 120 {
		t.Errorf("expected 120 commits after round trip, got %d", decoded.Insights.Summary.TotalCommits)
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("expected two-space indentation")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteText(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"/src/widget",
		"increasing",
		"alice",
		".go",
		"Consider refactoring 1 large files",
		"stars: 1,200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q", want)
		}
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteText(&buf, emptyReport()); err != nil {
		t.Fatalf("WriteText failed on empty insights: %v", err)
	}
	if !strings.Contains(buf.String(), "no commit activity to analyze") {
		t.Error("expected the empty-activity notice")
	}
	if !strings.Contains(buf.String(), "nothing to flag") {
		t.Error("expected the empty recommendation notice")
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteHTML(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Commit activity",
		"Contribution distribution",
		"Language distribution",
		"priority-medium",
		"echarts.min.js",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected HTML output to contain %q", want)
		}
	}
	if strings.Contains(out, "no data available") {
		t.Error("expected no placeholders in a fully populated report")
	}
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteHTML(&buf, emptyReport()); err != nil {
		t.Fatalf("WriteHTML failed on empty insights: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, "no data available"); got != 3 {
		t.Errorf("expected 3 chart placeholders, got %d", got)
	}
	if !strings.Contains(out, "nothing to flag") {
		t.Error("expected the empty recommendation notice")
	}
}

func TestSaveCharts(t *testing.T) {
	dir := t.TempDir()

	written, err := output.SaveCharts(sampleReport(), dir)
	if err != nil {
		t.Fatalf("SaveCharts failed: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 chart files, got %v", written)
	}

	for _, name := range []string{output.CommitTrendPNG, output.ContributorDistributionPNG, output.LanguageDistributionPNG} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing chart file %s: %v", name, err)
		}
		if len(data) < 8 || data[1] != 'P' || data[2] != 'N' || data[3] != 'G' {
			t.Errorf("%s does not look like a PNG", name)
		}
	}
}

func TestSaveChartsEmpty(t *testing.T) {
	dir := t.TempDir()

	written, err := output.SaveCharts(emptyReport(), dir)
	if err != nil {
		t.Fatalf("SaveCharts failed on empty insights: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("expected no chart files for empty insights, got %v", written)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read chart dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an empty chart dir, got %d entries", len(entries))
	}
}
