// internal/extract/extract.go

// Package extract reads raw metrics out of a local git repository. It only
// collects; every derived metric lives in the insight package.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dsablic/repolens/internal/license"
	"github.com/dsablic/repolens/internal/model"
)

var (
	// ErrInvalidRepository reports a path that is not a git repository.
	ErrInvalidRepository = errors.New("not a git repository")

	// ErrInvalidDateRange reports a malformed or inverted date range.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// maxTopContributors caps the top-contributors map in the commit section.
const maxTopContributors = 5

// dateLayout is the accepted format for range boundaries.
const dateLayout = "2006-01-02"

// DateRange bounds the commit walk. Since is inclusive, Until exclusive;
// a zero boundary is unbounded. Both are interpreted as UTC.
type DateRange struct {
	Since time.Time
	Until time.Time
}

// ParseDateRange parses "YYYY-MM-DD" boundaries. Empty strings leave the
// corresponding side unbounded. An inverted range is rejected.
func ParseDateRange(since, until string) (DateRange, error) {
	var r DateRange
	var err error

	if since != "" {
		r.Since, err = time.ParseInLocation(dateLayout, since, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: since %q", ErrInvalidDateRange, since)
		}
	}
	if until != "" {
		r.Until, err = time.ParseInLocation(dateLayout, until, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: until %q", ErrInvalidDateRange, until)
		}
	}
	if !r.Since.IsZero() && !r.Until.IsZero() && !r.Until.After(r.Since) {
		return DateRange{}, fmt.Errorf("%w: until %s is not after since %s", ErrInvalidDateRange, until, since)
	}
	return r, nil
}

func (r DateRange) contains(t time.Time) bool {
	if !r.Since.IsZero() && t.Before(r.Since) {
		return false
	}
	if !r.Until.IsZero() && !t.Before(r.Until) {
		return false
	}
	return true
}

// Options configures a single extraction run.
type Options struct {
	Range      DateRange
	Complexity bool // run the per-file complexity pass
}

// Extractor reads metrics from one opened repository.
type Extractor struct {
	repo *git.Repository
	path string
}

// Open opens the repository at path.
func Open(path string) (*Extractor, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepository, path)
	}
	return &Extractor{repo: repo, path: path}, nil
}

// FromRepository wraps an already opened repository. Used by tests and the
// watcher, which reuse one handle across runs.
func FromRepository(repo *git.Repository, path string) *Extractor {
	return &Extractor{repo: repo, path: path}
}

// Extract walks the repository and assembles a fresh snapshot. An empty
// repository yields zero-valued sections, not an error. The returned snapshot
// is never mutated afterwards.
func (e *Extractor) Extract(ctx context.Context, opts Options) (*model.RawMetrics, error) {
	commits, contributors, err := e.commitHistory(ctx, opts.Range)
	if err != nil {
		return nil, fmt.Errorf("extracting commit history: %w", err)
	}

	code, err := e.treeStats(ctx, opts.Complexity)
	if err != nil {
		return nil, fmt.Errorf("extracting tree stats: %w", err)
	}

	branches, err := e.branchStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("extracting branch stats: %w", err)
	}

	return &model.RawMetrics{
		CommitStats:      commits,
		ContributorStats: contributors,
		CodeStats:        code,
		BranchStats:      branches,
		License:          license.Detect(e.path),
	}, nil
}

type authorAgg struct {
	commits    int
	insertions int
	deletions  int
	files      map[string]struct{}
}

func (e *Extractor) commitHistory(ctx context.Context, rng DateRange) (model.CommitStats, model.ContributorStats, error) {
	cs := model.CommitStats{
		TopContributors: map[string]int{},
		CommitActivity:  map[string]int{},
	}
	contribs := model.ContributorStats{
		ContributorDetails: map[string]model.ContributorDetail{},
	}

	head, err := e.repo.Head()
	if err != nil {
		// No HEAD means no commits yet.
		return cs, contribs, nil
	}

	iter, err := e.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return cs, contribs, err
	}
	defer iter.Close()

	authors := map[string]*authorAgg{}

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		when := c.Author.When.UTC()
		if !rng.contains(when) {
			return nil
		}

		commit := model.Commit{
			Hash:         c.Hash.String(),
			Author:       c.Author.Name,
			Date:         when,
			Message:      strings.TrimSpace(c.Message),
			FilesChanged: []string{},
		}

		agg, ok := authors[c.Author.Name]
		if !ok {
			agg = &authorAgg{files: map[string]struct{}{}}
			authors[c.Author.Name] = agg
		}
		agg.commits++

		// Stats can fail on odd merge topologies; record the commit
		// without file details rather than dropping it.
		if stats, serr := c.Stats(); serr == nil {
			for _, fs := range stats {
				commit.FilesChanged = append(commit.FilesChanged, fs.Name)
				commit.Insertions += fs.Addition
				commit.Deletions += fs.Deletion
				agg.files[fs.Name] = struct{}{}
			}
			agg.insertions += commit.Insertions
			agg.deletions += commit.Deletions
		}

		cs.Commits = append(cs.Commits, commit)
		cs.CommitActivity[when.Format("2006-01")]++
		return nil
	})
	if err != nil {
		return cs, contribs, err
	}

	cs.TotalCommits = len(cs.Commits)
	cs.CommitFrequency = frequency(cs.Commits)
	cs.TopContributors = topContributors(authors)

	for name, agg := range authors {
		files := make([]string, 0, len(agg.files))
		for f := range agg.files {
			files = append(files, f)
		}
		sort.Strings(files)
		contribs.ContributorDetails[name] = model.ContributorDetail{
			Commits:      agg.commits,
			Insertions:   agg.insertions,
			Deletions:    agg.deletions,
			FilesTouched: files,
		}
	}
	contribs.TotalContributors = len(contribs.ContributorDetails)

	return cs, contribs, nil
}

// frequency computes commits-per-day/week/month rates over the observed
// span. A history confined to a single calendar day extrapolates the daily
// count instead of dividing by zero.
func frequency(commits []model.Commit) model.Frequency {
	if len(commits) == 0 {
		return model.Frequency{}
	}

	first, last := commits[0].Date, commits[0].Date
	for _, c := range commits[1:] {
		if c.Date.Before(first) {
			first = c.Date
		}
		if c.Date.After(last) {
			last = c.Date
		}
	}

	firstDay := first.Truncate(24 * time.Hour)
	lastDay := last.Truncate(24 * time.Hour)
	days := int(lastDay.Sub(firstDay).Hours() / 24)

	n := float64(len(commits))
	if days == 0 {
		return model.Frequency{Daily: n, Weekly: n * 7, Monthly: n * 30}
	}

	// Inclusive day count: a span from day 1 to day 11 covers 11 days.
	daily := n / float64(days+1)
	return model.Frequency{Daily: daily, Weekly: daily * 7, Monthly: daily * 30}
}

// topContributors returns the five most prolific authors by commit count.
// Ties break to the lexicographically smaller name so the cut is stable.
func topContributors(authors map[string]*authorAgg) map[string]int {
	names := make([]string, 0, len(authors))
	for name := range authors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if authors[names[i]].commits != authors[names[j]].commits {
			return authors[names[i]].commits > authors[names[j]].commits
		}
		return names[i] < names[j]
	})

	if len(names) > maxTopContributors {
		names = names[:maxTopContributors]
	}

	top := make(map[string]int, len(names))
	for _, name := range names {
		top[name] = authors[name].commits
	}
	return top
}

func (e *Extractor) branchStats(ctx context.Context) (model.BranchStats, error) {
	bs := model.BranchStats{BranchDetails: map[string]model.BranchDetail{}}

	if head, err := e.repo.Head(); err == nil && head.Name().IsBranch() {
		bs.ActiveBranch = head.Name().Short()
	}

	iter, err := e.repo.Branches()
	if err != nil {
		return bs, err
	}
	defer iter.Close()

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		detail, err := e.branchDetail(ref.Hash())
		if err != nil {
			return err
		}
		bs.BranchDetails[ref.Name().Short()] = detail
		return nil
	})
	if err != nil {
		return bs, err
	}

	bs.TotalBranches = len(bs.BranchDetails)
	return bs, nil
}

func (e *Extractor) branchDetail(tip plumbing.Hash) (model.BranchDetail, error) {
	iter, err := e.repo.Log(&git.LogOptions{From: tip})
	if err != nil {
		return model.BranchDetail{}, err
	}
	defer iter.Close()

	detail := model.BranchDetail{}
	err = iter.ForEach(func(c *object.Commit) error {
		if detail.CommitCount == 0 {
			detail.LastCommit = c.Author.When.UTC()
		}
		detail.CommitCount++
		return nil
	})
	return detail, err
}
