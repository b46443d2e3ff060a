// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dsablic/repolens/internal/model"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgHiBlack)
)

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return highColor.Sprint("[HIGH]")
	case model.PriorityMedium:
		return mediumColor.Sprint("[MEDIUM]")
	default:
		return lowColor.Sprint("[LOW]")
	}
}

// WriteText writes a human-readable report to w.
func WriteText(w io.Writer, report model.Report) error {
	in := report.Insights

	fmt.Fprintf(w, "Repository analysis: %s\n", report.Repository)
	fmt.Fprintf(w, "Generated: %s\n", report.GeneratedAt)
	if report.Since != "" || report.Until != "" {
		fmt.Fprintf(w, "Range: %s to %s\n", orOpen(report.Since), orOpen(report.Until))
	}
	fmt.Fprintln(w)

	if err := writeSummary(w, in.Summary); err != nil {
		return err
	}
	writeCommitSection(w, in.CommitInsights)
	if err := writeContributorSection(w, in.ContributorInsights); err != nil {
		return err
	}
	if err := writeCodeSection(w, in.CodeInsights); err != nil {
		return err
	}
	if in.HostingStats != nil {
		writeHostingSection(w, in.HostingStats)
	}
	writeRecommendations(w, in.Recommendations)

	return nil
}

func orOpen(s string) string {
	if s == "" {
		return "(open)"
	}
	return s
}

func writeSummary(w io.Writer, s model.Summary) error {
	fmt.Fprintln(w, "Summary")

	rows := [][]string{
		{"Commits", humanize.Comma(int64(s.TotalCommits))},
		{"Contributors", fmt.Sprintf("%d (%d active)", s.TotalContributors, s.ActiveContributors)},
		{"Files", humanize.Comma(int64(s.TotalFiles))},
		{"Primary language", s.PrimaryLanguage},
		{"Commits per day", fmt.Sprintf("%.2f", s.CommitFrequency.Daily)},
	}
	if s.License != "" {
		rows = append(rows, []string{"License", s.License})
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func writeCommitSection(w io.Writer, ci model.CommitInsights) {
	fmt.Fprintln(w, "Commit patterns")

	ft := ci.FrequencyTrends
	if ft.Trend == model.InsufficientData {
		fmt.Fprintln(w, "  no commit activity to analyze")
	} else {
		fmt.Fprintf(w, "  trend: %s (%.1f commits/month on average, stability %.2f)\n",
			ft.Trend, ft.AveragePerPeriod, ft.StabilityScore)
	}

	cp := ci.ContributionPatterns
	if cp.DistributionType != model.InsufficientData {
		fmt.Fprintf(w, "  contributions: %s (top contributors hold %.0f%% of commits)\n",
			cp.DistributionType, cp.Concentration*100)
	}

	if peaks := ci.PeakActivityTimes; peaks.Status == model.StatusOK && len(peaks.PeakPeriods) > 0 {
		periods := make([]string, 0, len(peaks.PeakPeriods))
		for p := range peaks.PeakPeriods {
			periods = append(periods, p)
		}
		sort.Strings(periods)
		fmt.Fprintf(w, "  peak activity: %s (%.1fx the average)\n",
			strings.Join(periods, ", "), peaks.PeakIntensity)
	}

	if sizes := ci.CommitSizes; sizes.Status == model.StatusOK {
		fmt.Fprintf(w, "  commit sizes: %d small / %d medium / %d large / %d very large (median %.0f lines)\n",
			sizes.Buckets[model.SizeSmall], sizes.Buckets[model.SizeMedium],
			sizes.Buckets[model.SizeLarge], sizes.Buckets[model.SizeVeryLarge], sizes.Median)
	}
	fmt.Fprintln(w)
}

func writeContributorSection(w io.Writer, ci model.ContributorInsights) error {
	fmt.Fprintln(w, "Contributors")

	if len(ci.CoreContributors) > 0 {
		fmt.Fprintf(w, "  core: %s\n", strings.Join(ci.CoreContributors, ", "))
	}

	if len(ci.ContributionDistribution) > 0 {
		names := make([]string, 0, len(ci.ContributionDistribution))
		for name := range ci.ContributionDistribution {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			si, sj := ci.ContributionDistribution[names[i]], ci.ContributionDistribution[names[j]]
			if si != sj {
				return si > sj
			}
			return names[i] < names[j]
		})

		var rows [][]string
		for _, name := range names {
			rows = append(rows, []string{name, fmt.Sprintf("%.1f%%", ci.ContributionDistribution[name]*100)})
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Contributor", "Share"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if collab := ci.Collaboration; collab.Status == model.StatusOK {
		fmt.Fprintf(w, "  collaboration: %d shared-file links, average degree %.2f\n",
			collab.Edges, collab.AverageDegree)
		if collab.MostConnected != "" {
			fmt.Fprintf(w, "  most connected: %s\n", collab.MostConnected)
		}
		if len(collab.Isolated) > 0 {
			fmt.Fprintf(w, "  working alone: %s\n", strings.Join(collab.Isolated, ", "))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func writeCodeSection(w io.Writer, ci model.CodeInsights) error {
	fmt.Fprintln(w, "Code")

	if lt := ci.LanguageTrends; lt.Status == model.StatusOK {
		exts := make([]string, 0, len(lt.Shares))
		for ext := range lt.Shares {
			exts = append(exts, ext)
		}
		sort.Slice(exts, func(i, j int) bool {
			si, sj := lt.Shares[exts[i]], lt.Shares[exts[j]]
			if si != sj {
				return si > sj
			}
			return exts[i] < exts[j]
		})

		var rows [][]string
		for _, ext := range exts {
			label := ext
			if label == "" {
				label = "(none)"
			}
			rows = append(rows, []string{label, fmt.Sprintf("%.1f%%", lt.Shares[ext]*100)})
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Extension", "Share"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if fs := ci.FileSizes; fs.Status == model.StatusOK {
		fmt.Fprintf(w, "  file sizes: %.0f lines on average (%d small / %d medium / %d large)\n",
			fs.AverageLines, fs.Buckets[model.FileSmall], fs.Buckets[model.FileMedium], fs.Buckets[model.FileLarge])
	}

	org := ci.Organization
	fmt.Fprintf(w, "  directory depth: %d\n", org.MaxDepth)
	for _, lf := range org.LargeFiles {
		fmt.Fprintf(w, "  large file: %s (%s lines)\n", lf.Path, humanize.Comma(int64(lf.Lines)))
	}

	if len(ci.ComplexityIndicators) > 0 {
		fmt.Fprintf(w, "  complexity: %d simple / %d moderate / %d complex / %d very complex\n",
			ci.ComplexityIndicators[model.ComplexitySimple],
			ci.ComplexityIndicators[model.ComplexityModerate],
			ci.ComplexityIndicators[model.ComplexityComplex],
			ci.ComplexityIndicators[model.ComplexityVeryComplex])
	}
	fmt.Fprintln(w)
	return nil
}

func writeHostingSection(w io.Writer, hs *model.HostingStats) {
	fmt.Fprintln(w, "Hosting")
	fmt.Fprintf(w, "  stars: %s, forks: %s\n", humanize.Comma(int64(hs.Stars)), humanize.Comma(int64(hs.Forks)))
	fmt.Fprintf(w, "  open issues: %d, open pull requests: %d, releases: %d\n",
		hs.OpenIssues, hs.OpenPRs, hs.Releases)
	fmt.Fprintln(w)
}

func writeRecommendations(w io.Writer, recs []model.Recommendation) {
	fmt.Fprintln(w, "Recommendations")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  nothing to flag")
		return
	}
	for i, rec := range recs {
		fmt.Fprintf(w, "  %s. %s %s\n", strconv.Itoa(i+1), priorityLabel(rec.Priority), rec.Description)
		fmt.Fprintf(w, "     %s\n", rec.Rationale)
	}
}
