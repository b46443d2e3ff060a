// internal/extract/tree.go
package extract

import (
	"context"
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dsablic/repolens/internal/model"
)

// treeStats walks the tree at HEAD and collects per-file statistics.
// Binary and vendored files are skipped.
func (e *Extractor) treeStats(ctx context.Context, withComplexity bool) (model.CodeStats, error) {
	cs := model.CodeStats{
		FileStats:            map[string]model.FileStat{},
		LanguageDistribution: map[string]int{},
	}

	head, err := e.repo.Head()
	if err != nil {
		// No HEAD means no tree to walk.
		return cs, nil
	}

	headCommit, err := e.repo.CommitObject(head.Hash())
	if err != nil {
		return cs, err
	}
	tree, err := headCommit.Tree()
	if err != nil {
		return cs, err
	}

	var complexity *complexityStats
	if withComplexity {
		complexity = newComplexityStats()
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if enry.IsVendor(f.Name) {
			return nil
		}

		if binary, berr := f.IsBinary(); berr != nil || binary {
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return nil
		}

		ext := path.Ext(f.Name)
		cs.FileStats[f.Name] = model.FileStat{
			Size:      f.Size,
			Lines:     countLines(content),
			Extension: ext,
			Language:  enry.GetLanguage(path.Base(f.Name), []byte(content)),
		}
		// Extension-less files (Makefile, LICENSE) carry no language signal
		// for the distribution.
		if ext != "" {
			cs.LanguageDistribution[ext]++
		}
		cs.TotalFiles++

		if complexity != nil {
			complexity.measure(f.Name, []byte(content))
		}
		return nil
	})
	if err != nil {
		return cs, err
	}

	if complexity != nil {
		cs.Complexity = &complexity.ComplexityStats
	}
	return cs, nil
}

// countLines counts newline-terminated lines plus a trailing partial line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
