// internal/extract/complexity.go
package extract

import (
	"fmt"
	"math"
	"sync"

	"github.com/boyter/scc/v3/processor"

	"github.com/dsablic/repolens/internal/model"
)

var sccOnce sync.Once

// complexityStats accumulates the optional per-file complexity section.
type complexityStats struct {
	model.ComplexityStats
}

func newComplexityStats() *complexityStats {
	sccOnce.Do(processor.ProcessConstants)

	return &complexityStats{ComplexityStats: model.ComplexityStats{
		Files: map[string]model.FileComplexity{},
		Distribution: map[string]int{
			model.ComplexitySimple:      0,
			model.ComplexityModerate:    0,
			model.ComplexityComplex:     0,
			model.ComplexityVeryComplex: 0,
		},
		Errors: map[string]string{},
	}}
}

// measure counts the cyclomatic complexity of one file. Files in languages
// the counter does not know are skipped silently; counting failures are
// recorded per file so one bad file never aborts the walk.
func (c *complexityStats) measure(name string, content []byte) {
	defer func() {
		if r := recover(); r != nil {
			c.Errors[name] = fmt.Sprintf("complexity analysis failed: %v", r)
		}
	}()

	possible, _ := processor.DetectLanguage(name)
	if len(possible) == 0 {
		return
	}

	job := &processor.FileJob{
		Filename:          name,
		Content:           content,
		Bytes:             int64(len(content)),
		PossibleLanguages: possible,
	}
	job.Language = processor.DetermineLanguage(job.Filename, job.Language, job.PossibleLanguages, job.Content)
	if job.Language == "" {
		return
	}

	processor.CountStats(job)
	if job.Binary {
		return
	}

	fc := model.FileComplexity{
		Complexity:           job.Complexity,
		MaintainabilityIndex: maintainabilityIndex(job.Complexity, job.Code),
	}
	c.Files[name] = fc
	c.Distribution[complexityBucket(job.Complexity)]++
}

func complexityBucket(complexity int64) string {
	switch {
	case complexity <= 10:
		return model.ComplexitySimple
	case complexity <= 20:
		return model.ComplexityModerate
	case complexity <= 30:
		return model.ComplexityComplex
	default:
		return model.ComplexityVeryComplex
	}
}

// maintainabilityIndex is the Halstead-free variant of the classic formula,
// rescaled to 0-100. Higher means easier to maintain.
func maintainabilityIndex(complexity, codeLines int64) float64 {
	if codeLines < 1 {
		codeLines = 1
	}
	mi := 171 - 0.23*float64(complexity) - 16.2*math.Log(float64(codeLines))
	mi = mi * 100 / 171
	return math.Max(0, math.Min(100, mi))
}
