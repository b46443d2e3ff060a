// internal/provider/provider.go
package provider

import (
	"context"
	"errors"

	"github.com/dsablic/repolens/internal/model"
)

// ErrRateLimited reports a rate limit whose reset is too far away to wait
// out. The caller decides whether to warn and continue without the data.
var ErrRateLimited = errors.New("rate limited")

// StatsFetcher is the interface the analyze pipeline consumes for remote
// enrichment.
type StatsFetcher interface {
	RepoStats(ctx context.Context, owner, repo string) (*model.HostingStats, error)
}
