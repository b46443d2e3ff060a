// internal/output/html.go
package output

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dsablic/repolens/internal/model"
)

const echartsJS = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Repository analysis: {{.Report.Repository}}</title>
<script src="{{.EchartsJS}}"></script>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 960px; color: #1f2933; }
h1 { font-size: 1.5rem; }
.meta { color: #616e7c; margin-bottom: 1.5rem; }
.stats { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 2rem; }
.stat { background: #f5f7fa; border-radius: 8px; padding: 1rem 1.5rem; min-width: 120px; }
.stat .value { font-size: 1.4rem; font-weight: 600; }
.stat .label { color: #616e7c; font-size: 0.85rem; }
.chart { margin-bottom: 2rem; }
.no-data { color: #9aa5b1; font-style: italic; padding: 2rem 0; }
.rec { border-left: 4px solid #9aa5b1; padding: 0.5rem 1rem; margin-bottom: 0.75rem; }
.rec.priority-high { border-color: #d64545; }
.rec.priority-medium { border-color: #f0b429; }
.rec.priority-low { border-color: #9aa5b1; }
.rec .rationale { color: #616e7c; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Repository analysis: {{.Report.Repository}}</h1>
<div class="meta">Generated {{.Report.GeneratedAt}}{{if .Range}} &middot; {{.Range}}{{end}}</div>

<div class="stats">
{{range .Stats}}<div class="stat"><div class="value">{{.Value}}</div><div class="label">{{.Label}}</div></div>
{{end}}</div>

{{range .Charts}}<div class="chart">
<h2>{{.Title}}</h2>
{{if .Empty}}<div class="no-data">no data available</div>{{else}}{{.Element}}
{{.Script}}{{end}}
</div>
{{end}}
<h2>Recommendations</h2>
{{if .Recommendations}}{{range .Recommendations}}<div class="rec priority-{{.Priority}}">
<div>{{.Description}}</div>
<div class="rationale">{{.Rationale}}</div>
</div>
{{end}}{{else}}<div class="no-data">nothing to flag</div>{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlPage))

type statBox struct {
	Label string
	Value string
}

type chartBlock struct {
	Title   string
	Empty   bool
	Element template.HTML
	Script  template.HTML
}

type htmlData struct {
	Report          model.Report
	EchartsJS       string
	Range           string
	Stats           []statBox
	Charts          []chartBlock
	Recommendations []model.Recommendation
}

// WriteHTML writes a self-contained HTML report to w. Chart sections with no
// underlying data render a placeholder instead of an empty canvas.
func WriteHTML(w io.Writer, report model.Report) error {
	in := report.Insights

	data := htmlData{
		Report:          report,
		EchartsJS:       echartsJS,
		Recommendations: in.Recommendations,
		Stats:           summaryBoxes(in),
		Charts: []chartBlock{
			commitTrendChart(in.CommitInsights.CommitActivity),
			contributorChart(in.ContributorInsights.ContributionDistribution),
			languageChart(in.CodeInsights.LanguageTrends),
		},
	}
	if report.Since != "" || report.Until != "" {
		data.Range = fmt.Sprintf("%s to %s", orOpen(report.Since), orOpen(report.Until))
	}

	return htmlTemplate.Execute(w, data)
}

func summaryBoxes(in model.Insights) []statBox {
	s := in.Summary
	boxes := []statBox{
		{Label: "commits", Value: fmt.Sprintf("%d", s.TotalCommits)},
		{Label: "contributors", Value: fmt.Sprintf("%d", s.TotalContributors)},
		{Label: "files", Value: fmt.Sprintf("%d", s.TotalFiles)},
		{Label: "primary language", Value: s.PrimaryLanguage},
		{Label: "commits / day", Value: fmt.Sprintf("%.2f", s.CommitFrequency.Daily)},
	}
	if s.License != "" {
		boxes = append(boxes, statBox{Label: "license", Value: s.License})
	}
	if hs := in.HostingStats; hs != nil {
		boxes = append(boxes,
			statBox{Label: "stars", Value: fmt.Sprintf("%d", hs.Stars)},
			statBox{Label: "open issues", Value: fmt.Sprintf("%d", hs.OpenIssues)},
		)
	}
	return boxes
}

func commitTrendChart(activity map[string]int) chartBlock {
	block := chartBlock{Title: "Commit activity"}
	if len(activity) == 0 {
		block.Empty = true
		return block
	}

	periods := make([]string, 0, len(activity))
	for p := range activity {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	points := make([]opts.LineData, len(periods))
	for i, p := range periods {
		points[i] = opts.LineData{Value: activity[p]}
	}

	line := charts.NewLine()
	line.SetXAxis(periods).AddSeries("commits", points)

	snippet := line.RenderSnippet()
	block.Element = template.HTML(snippet.Element)
	block.Script = template.HTML(snippet.Script)
	return block
}

func contributorChart(distribution map[string]float64) chartBlock {
	block := chartBlock{Title: "Contribution distribution"}
	if len(distribution) == 0 {
		block.Empty = true
		return block
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

	bars := make([]opts.BarData, len(names))
	for i, name := range names {
		bars[i] = opts.BarData{Value: distribution[name] * 100}
	}

	bar := charts.NewBar()
	bar.SetXAxis(names).AddSeries("share %", bars)

	snippet := bar.RenderSnippet()
	block.Element = template.HTML(snippet.Element)
	block.Script = template.HTML(snippet.Script)
	return block
}

func languageChart(trends model.LanguageTrends) chartBlock {
	block := chartBlock{Title: "Language distribution"}
	if trends.Status != model.StatusOK || len(trends.Shares) == 0 {
		block.Empty = true
		return block
	}

	exts := make([]string, 0, len(trends.Shares))
	for ext := range trends.Shares {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	slices := make([]opts.PieData, 0, len(exts))
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		slices = append(slices, opts.PieData{Name: label, Value: trends.Shares[ext]})
	}

	pie := charts.NewPie()
	pie.AddSeries("languages", slices)

	snippet := pie.RenderSnippet()
	block.Element = template.HTML(snippet.Element)
	block.Script = template.HTML(snippet.Script)
	return block
}
