// internal/insight/code.go
package insight

import (
	"fmt"
	"path"
	"sort"

	"github.com/dsablic/repolens/internal/model"
)

// Code organization thresholds.
const (
	maxHealthyDepth    = 5
	maxFilesPerDir     = 20
	largeFileLines     = 1000
	maxReportedLargest = 10
)

// File size bucket boundaries, in lines.
const (
	fileMediumMin = 100
	fileLargeMin  = 500
)

// AnalyzeCodePatterns derives language, file-size and organization metrics
// from the code section of the snapshot.
func AnalyzeCodePatterns(raw *model.RawMetrics) model.CodeInsights {
	cs := raw.CodeStats

	insights := model.CodeInsights{
		LanguageTrends: languageTrends(cs.LanguageDistribution),
		FileSizes:      fileSizes(cs.FileStats),
		Organization:   codeOrganization(cs.FileStats),
	}
	if cs.Complexity != nil {
		insights.ComplexityIndicators = copyActivity(cs.Complexity.Distribution)
	}
	return insights
}

// languageTrends returns each extension's share of the file population.
// Shares sum to 1 within floating-point tolerance.
func languageTrends(distribution map[string]int) model.LanguageTrends {
	total := 0
	for _, count := range distribution {
		total += count
	}
	if total == 0 {
		return model.LanguageTrends{
			Status: model.InsufficientData,
			Shares: map[string]float64{},
		}
	}

	shares := make(map[string]float64, len(distribution))
	for ext, count := range distribution {
		shares[ext] = float64(count) / float64(total)
	}
	return model.LanguageTrends{Status: model.StatusOK, Shares: shares}
}

func fileSizes(files map[string]model.FileStat) model.FileSizeDistribution {
	buckets := map[string]int{
		model.FileSmall:  0,
		model.FileMedium: 0,
		model.FileLarge:  0,
	}
	if len(files) == 0 {
		return model.FileSizeDistribution{
			Status:  model.InsufficientData,
			Buckets: buckets,
		}
	}

	totalLines := 0
	for _, f := range files {
		totalLines += f.Lines
		switch {
		case f.Lines < fileMediumMin:
			buckets[model.FileSmall]++
		case f.Lines < fileLargeMin:
			buckets[model.FileMedium]++
		default:
			buckets[model.FileLarge]++
		}
	}

	return model.FileSizeDistribution{
		Status:       model.StatusOK,
		AverageLines: float64(totalLines) / float64(len(files)),
		Buckets:      buckets,
	}
}

// codeOrganization analyzes the directory shape of the tree: depth, files
// per directory, file-type histogram and oversized files, plus the
// structural recommendations those trigger.
func codeOrganization(files map[string]model.FileStat) model.CodeOrganization {
	org := model.CodeOrganization{
		FilesPerDirectory: map[string]int{},
		FileTypes:         map[string]int{},
		LargeFiles:        []model.LargeFile{},
		Recommendations:   []model.Recommendation{},
	}

	for p, f := range files {
		if depth := pathDepth(p); depth > org.MaxDepth {
			org.MaxDepth = depth
		}
		org.FilesPerDirectory[path.Dir(p)]++
		org.FileTypes[f.Extension]++
		if f.Lines > largeFileLines {
			org.LargeFiles = append(org.LargeFiles, model.LargeFile{Path: p, Lines: f.Lines})
		}
	}

	sort.Slice(org.LargeFiles, func(i, j int) bool {
		if org.LargeFiles[i].Lines != org.LargeFiles[j].Lines {
			return org.LargeFiles[i].Lines > org.LargeFiles[j].Lines
		}
		return org.LargeFiles[i].Path < org.LargeFiles[j].Path
	})
	totalLarge := len(org.LargeFiles)
	if totalLarge > maxReportedLargest {
		org.LargeFiles = org.LargeFiles[:maxReportedLargest]
	}

	if org.MaxDepth > maxHealthyDepth {
		org.Recommendations = append(org.Recommendations, model.Recommendation{
			Type:        "structure",
			Priority:    model.PriorityMedium,
			Description: fmt.Sprintf("Consider flattening deep directories (max depth %d)", org.MaxDepth),
			Rationale:   "Deeply nested directories make code harder to navigate",
		})
	}

	crowded := []string{}
	for dir, count := range org.FilesPerDirectory {
		if count > maxFilesPerDir {
			crowded = append(crowded, dir)
		}
	}
	sort.Strings(crowded)
	for _, dir := range crowded {
		org.Recommendations = append(org.Recommendations, model.Recommendation{
			Type:        "structure",
			Priority:    model.PriorityMedium,
			Description: fmt.Sprintf("Consider splitting directory %s (%d files)", dir, org.FilesPerDirectory[dir]),
			Rationale:   "Directories with many files are hard to scan and review",
		})
	}

	if totalLarge > 0 {
		org.Recommendations = append(org.Recommendations, model.Recommendation{
			Type:        "code_quality",
			Priority:    model.PriorityMedium,
			Description: fmt.Sprintf("Consider refactoring %d files over %d lines", totalLarge, largeFileLines),
			Rationale:   "Smaller files are easier to maintain and understand",
		})
	}

	return org
}

// pathDepth is the number of path segments minus one: files at the root
// have depth 0.
func pathDepth(p string) int {
	depth := 0
	for _, c := range p {
		if c == '/' {
			depth++
		}
	}
	return depth
}
