// internal/output/charts.go
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/dsablic/repolens/internal/model"
)

// Chart image filenames written by SaveCharts.
const (
	CommitTrendPNG             = "commit_trend.png"
	ContributorDistributionPNG = "contributor_distribution.png"
	LanguageDistributionPNG    = "language_distribution.png"
)

// SaveCharts renders the report's chart set as PNG files under dir and
// returns the paths it wrote. Charts without enough data are skipped rather
// than rendered empty.
func SaveCharts(report model.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	in := report.Insights
	written := []string{}

	if trend := commitTrendPNG(in.CommitInsights.CommitActivity); trend != nil {
		path := filepath.Join(dir, CommitTrendPNG)
		if err := renderPNG(trend, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if bars := contributorPNG(in.ContributorInsights.ContributionDistribution); bars != nil {
		path := filepath.Join(dir, ContributorDistributionPNG)
		if err := renderPNG(bars, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if pie := languagePNG(in.CodeInsights.LanguageTrends); pie != nil {
		path := filepath.Join(dir, LanguageDistributionPNG)
		if err := renderPNG(pie, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(c pngRenderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := c.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return nil
}

// commitTrendPNG builds the per-month commit line chart. A line needs at
// least two points.
func commitTrendPNG(activity map[string]int) *chart.Chart {
	if len(activity) < 2 {
		return nil
	}

	periods := make([]string, 0, len(activity))
	for p := range activity {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	xs := make([]float64, len(periods))
	ys := make([]float64, len(periods))
	ticks := make([]chart.Tick, len(periods))
	for i, p := range periods {
		xs[i] = float64(i)
		ys[i] = float64(activity[p])
		ticks[i] = chart.Tick{Value: float64(i), Label: p}
	}

	return &chart.Chart{
		Title:  "Commit activity",
		Height: 360,
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "commits", XValues: xs, YValues: ys},
		},
	}
}

func contributorPNG(distribution map[string]float64) *chart.BarChart {
	if len(distribution) == 0 {
		return nil
	}

	names := make([]string, 0, len(distribution))
	for name := range distribution {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := distribution[names[i]], distribution[names[j]]
		if si != sj {
			return si > sj
		}
		return names[i] < names[j]
	})

	bars := make([]chart.Value, len(names))
	for i, name := range names {
		bars[i] = chart.Value{Label: name, Value: distribution[name] * 100}
	}

	return &chart.BarChart{
		Title:    "Contribution share (%)",
		Height:   360,
		BarWidth: 40,
		Bars:     bars,
	}
}

func languagePNG(trends model.LanguageTrends) *chart.PieChart {
	if trends.Status != model.StatusOK || len(trends.Shares) == 0 {
		return nil
	}

	exts := make([]string, 0, len(trends.Shares))
	for ext := range trends.Shares {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	values := make([]chart.Value, 0, len(exts))
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		values = append(values, chart.Value{Label: label, Value: trends.Shares[ext]})
	}

	return &chart.PieChart{
		Title:  "Language distribution",
		Width:  480,
		Height: 480,
		Values: values,
	}
}
