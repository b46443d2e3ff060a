// internal/watch/watch.go

// Package watch polls a repository on an interval and emits metric updates.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/dsablic/repolens/internal/extract"
	"github.com/dsablic/repolens/internal/model"
)

// DefaultInterval is used when no poll interval is configured.
const DefaultInterval = 30 * time.Second

// updateBuffer bounds the update channel so a slow consumer applies
// backpressure instead of growing memory.
const updateBuffer = 8

// Known metric selections.
const (
	MetricCommits      = "commits"
	MetricContributors = "contributors"
	MetricBranches     = "branches"
)

// Update is one observation of the watched repository. Err is set when the
// poll failed; Metrics is nil in that case.
type Update struct {
	Seq     int
	At      time.Time
	Metrics map[string]int
	Err     error
}

// Snapshotter takes one raw snapshot of the watched repository.
type Snapshotter interface {
	Extract(ctx context.Context, opts extract.Options) (*model.RawMetrics, error)
}

// Watcher polls one repository for a bounded metric subset.
type Watcher struct {
	extractor Snapshotter
	interval  time.Duration
	metrics   []string
}

// New creates a watcher over an opened extractor. A non-positive interval
// falls back to DefaultInterval; an empty metric selection watches commits,
// contributors and branches. Unknown metric names are rejected up front.
func New(e Snapshotter, interval time.Duration, metrics []string) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if len(metrics) == 0 {
		metrics = []string{MetricCommits, MetricContributors, MetricBranches}
	}
	for _, m := range metrics {
		switch m {
		case MetricCommits, MetricContributors, MetricBranches:
		default:
			return nil, fmt.Errorf("unknown metric %q", m)
		}
	}
	return &Watcher{extractor: e, interval: interval, metrics: metrics}, nil
}

// Run starts the poll loop and returns its update channel. One observation
// is emitted immediately, then one per tick. Poll failures are forwarded as
// error updates and the loop keeps going. Cancelling the context stops the
// producer and closes the channel.
func (w *Watcher) Run(ctx context.Context) <-chan Update {
	updates := make(chan Update, updateBuffer)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		seq := 0
		for {
			seq++
			update := w.observe(ctx, seq)
			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates
}

func (w *Watcher) observe(ctx context.Context, seq int) Update {
	update := Update{Seq: seq, At: time.Now().UTC()}

	raw, err := w.extractor.Extract(ctx, extract.Options{})
	if err != nil {
		update.Err = err
		return update
	}

	update.Metrics = map[string]int{}
	for _, metric := range w.metrics {
		switch metric {
		case MetricCommits:
			update.Metrics[MetricCommits] = raw.CommitStats.TotalCommits
		case MetricContributors:
			update.Metrics[MetricContributors] = raw.ContributorStats.TotalContributors
		case MetricBranches:
			update.Metrics[MetricBranches] = raw.BranchStats.TotalBranches
		}
	}
	return update
}
