// internal/model/model.go
package model

import "time"

// InsufficientData marks a derived metric whose input was empty.
// Insight structures are always fully populated; this sentinel takes the
// place of a value that cannot be computed.
const InsufficientData = "insufficient_data"

// StatusOK marks a derived metric that was computed from real input.
const StatusOK = "ok"

// Trend classifications for the per-period commit series.
const (
	TrendIncreasing  = "increasing"
	TrendDecreasing  = "decreasing"
	TrendFluctuating = "fluctuating"
)

// Distribution classifications for contribution concentration.
const (
	DistributionConcentrated = "concentrated"
	DistributionDistributed  = "distributed"
)

// Commit is a single record from the history walk. Date is always UTC.
type Commit struct {
	Hash         string    `json:"hash"`
	Author       string    `json:"author"`
	Date         time.Time `json:"date"`
	Message      string    `json:"message"`
	FilesChanged []string  `json:"files_changed"`
	Insertions   int       `json:"insertions"`
	Deletions    int       `json:"deletions"`
}

// Frequency holds commits-per-period rates over the observed date span.
type Frequency struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

// CommitStats holds the commit section of the raw metrics.
type CommitStats struct {
	TotalCommits    int            `json:"total_commits"`
	Commits         []Commit       `json:"commits,omitempty"`
	CommitFrequency Frequency      `json:"commit_frequency"`
	TopContributors map[string]int `json:"top_contributors"`
	CommitActivity  map[string]int `json:"commit_activity"` // "2006-01" -> commits
}

// ContributorDetail aggregates one author's activity. Author identity is the
// raw author-name string; aliases are not reconciled.
type ContributorDetail struct {
	Commits      int      `json:"commits"`
	Insertions   int      `json:"insertions"`
	Deletions    int      `json:"deletions"`
	FilesTouched []string `json:"files_touched"` // distinct paths, sorted
}

// ContributorStats holds the contributor section of the raw metrics.
type ContributorStats struct {
	TotalContributors  int                          `json:"total_contributors"`
	ContributorDetails map[string]ContributorDetail `json:"contributor_details"`
}

// FileStat holds per-file statistics from the tree walk.
type FileStat struct {
	Size      int64  `json:"size"` // bytes
	Lines     int    `json:"lines"`
	Extension string `json:"extension"`
	Language  string `json:"language,omitempty"`
}

// FileComplexity holds complexity metrics for a single source file.
// MaintainabilityIndex is on the conventional 0-100 scale.
type FileComplexity struct {
	Complexity           int64   `json:"complexity"`
	MaintainabilityIndex float64 `json:"maintainability_index"`
}

// Complexity bucket labels.
const (
	ComplexitySimple      = "simple"       // <= 10
	ComplexityModerate    = "moderate"     // 11-20
	ComplexityComplex     = "complex"      // 21-30
	ComplexityVeryComplex = "very_complex" // > 30
)

// ComplexityStats holds the optional complexity section. Files that could not
// be analyzed carry a per-file error annotation instead of metrics.
type ComplexityStats struct {
	Files        map[string]FileComplexity `json:"files"`
	Distribution map[string]int            `json:"distribution"`
	Errors       map[string]string         `json:"errors,omitempty"`
}

// CodeStats holds the code section of the raw metrics.
type CodeStats struct {
	TotalFiles           int                 `json:"total_files"`
	FileStats            map[string]FileStat `json:"file_stats"`
	LanguageDistribution map[string]int      `json:"language_distribution"` // extension -> files
	Complexity           *ComplexityStats    `json:"complexity,omitempty"`
}

// BranchDetail holds per-branch statistics.
type BranchDetail struct {
	CommitCount int       `json:"commit_count"`
	LastCommit  time.Time `json:"last_commit"`
}

// BranchStats holds the branch section of the raw metrics.
type BranchStats struct {
	TotalBranches int                     `json:"total_branches"`
	ActiveBranch  string                  `json:"active_branch"`
	BranchDetails map[string]BranchDetail `json:"branch_details"`
}

// HostingStats holds remote-platform metrics. Absent when no credential is
// supplied or the remote call failed.
type HostingStats struct {
	Stars      int       `json:"stars"`
	Forks      int       `json:"forks"`
	OpenIssues int       `json:"open_issues"`
	OpenPRs    int       `json:"open_pull_requests"`
	Releases   int       `json:"releases"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// RawMetrics is the immutable snapshot produced by the extractor and consumed
// by the aggregator. Created fresh per invocation, never mutated afterwards.
type RawMetrics struct {
	CommitStats      CommitStats      `json:"commit_stats"`
	ContributorStats ContributorStats `json:"contributor_stats"`
	CodeStats        CodeStats        `json:"code_stats"`
	BranchStats      BranchStats      `json:"branch_stats"`
	HostingStats     *HostingStats    `json:"hosting_stats,omitempty"`
	License          string           `json:"license,omitempty"`
}

// Summary is the high-level overview of the repository.
type Summary struct {
	TotalCommits       int       `json:"total_commits"`
	TotalContributors  int       `json:"total_contributors"`
	TotalFiles         int       `json:"total_files"`
	ActiveContributors int       `json:"active_contributors"`
	PrimaryLanguage    string    `json:"primary_language"`
	CommitFrequency    Frequency `json:"commit_frequency"`
	License            string    `json:"license,omitempty"`
}

// FrequencyTrend classifies the per-period commit series.
type FrequencyTrend struct {
	Trend            string  `json:"trend"`
	AveragePerPeriod float64 `json:"average_commits_per_period"`
	StabilityScore   float64 `json:"stability_score"`
}

// ContributionPattern holds contribution concentration metrics.
type ContributionPattern struct {
	DistributionType string  `json:"distribution_type"`
	Concentration    float64 `json:"contribution_concentration"`
}

// PeakActivity reports the periods whose commit count exceeds mean + stddev.
type PeakActivity struct {
	Status        string         `json:"status"`
	PeakPeriods   map[string]int `json:"peak_periods"`
	PeakIntensity float64        `json:"peak_intensity"`
}

// Commit size bucket labels.
const (
	SizeSmall     = "small"      // < 50
	SizeMedium    = "medium"     // 50-199
	SizeLarge     = "large"      // 200-999
	SizeVeryLarge = "very_large" // >= 1000
)

// CommitSizeDistribution buckets per-commit insertions+deletions and reports
// descriptive statistics over them.
type CommitSizeDistribution struct {
	Status  string         `json:"status"`
	Buckets map[string]int `json:"buckets"`
	Mean    float64        `json:"mean"`
	Median  float64        `json:"median"`
	StdDev  float64        `json:"stddev"`
	Min     int            `json:"min"`
	Max     int            `json:"max"`
}

// CommitInsights holds all commit-pattern analysis results. CommitActivity is
// echoed from the raw metrics so renderers can chart the trend without the
// raw snapshot.
type CommitInsights struct {
	FrequencyTrends      FrequencyTrend         `json:"frequency_trends"`
	ContributionPatterns ContributionPattern    `json:"contribution_patterns"`
	PeakActivityTimes    PeakActivity           `json:"peak_activity_times"`
	CommitSizes          CommitSizeDistribution `json:"commit_size_distribution"`
	CommitActivity       map[string]int         `json:"commit_activity"`
}

// CollaborationPatterns holds the derived metrics of the collaboration graph.
// Status is insufficient_data when the graph has no nodes.
type CollaborationPatterns struct {
	Status        string             `json:"status"`
	Edges         int                `json:"edges"`
	AverageDegree float64            `json:"average_degree"`
	MostConnected string             `json:"most_connected"`
	Isolated      []string           `json:"isolated"`
	Components    [][]string         `json:"components"`
	Betweenness   map[string]float64 `json:"betweenness_centrality"`
}

// ContributorInsights holds all contributor-pattern analysis results.
type ContributorInsights struct {
	CoreContributors         []string              `json:"core_contributors"`
	ContributionDistribution map[string]float64    `json:"contribution_distribution"`
	ExpertiseAreas           map[string][]string   `json:"expertise_areas"`
	Collaboration            CollaborationPatterns `json:"collaboration_patterns"`
}

// LanguageTrends holds per-extension shares of the file population.
type LanguageTrends struct {
	Status string             `json:"status"`
	Shares map[string]float64 `json:"language_shares"`
}

// File size bucket labels (line counts).
const (
	FileSmall  = "small"  // < 100
	FileMedium = "medium" // 100-499
	FileLarge  = "large"  // >= 500
)

// FileSizeDistribution buckets files by line count.
type FileSizeDistribution struct {
	Status       string         `json:"status"`
	AverageLines float64        `json:"average_size"`
	Buckets      map[string]int `json:"size_distribution"`
}

// LargeFile identifies a file exceeding the large-file line threshold.
type LargeFile struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
}

// CodeOrganization describes the directory shape of the tree and any
// structural recommendations derived from it.
type CodeOrganization struct {
	MaxDepth          int              `json:"max_depth"`
	FilesPerDirectory map[string]int   `json:"files_per_directory"`
	FileTypes         map[string]int   `json:"file_types"`
	LargeFiles        []LargeFile      `json:"large_files"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// CodeInsights holds all code-pattern analysis results.
type CodeInsights struct {
	LanguageTrends       LanguageTrends       `json:"language_trends"`
	FileSizes            FileSizeDistribution `json:"file_size_distribution"`
	Organization         CodeOrganization     `json:"code_organization"`
	ComplexityIndicators map[string]int       `json:"complexity_indicators,omitempty"`
}

// Priority ranks a recommendation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recommendation is a single actionable suggestion.
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Rationale   string   `json:"rationale"`
}

// Insights is the aggregator output. Every field is populated even on empty
// input; derived metrics degrade to sentinel values rather than being omitted.
type Insights struct {
	Summary             Summary             `json:"summary"`
	CommitInsights      CommitInsights      `json:"commit_insights"`
	ContributorInsights ContributorInsights `json:"contributor_insights"`
	CodeInsights        CodeInsights        `json:"code_insights"`
	Recommendations     []Recommendation    `json:"recommendations"`
	HostingStats        *HostingStats       `json:"hosting_stats,omitempty"`
}

// Report is the top-level structure handed to renderers.
type Report struct {
	GeneratedAt string   `json:"generated_at"`
	Repository  string   `json:"repository"`
	Since       string   `json:"since,omitempty"`
	Until       string   `json:"until,omitempty"`
	Insights    Insights `json:"insights"`
}
