// internal/provider/github.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/dsablic/repolens/internal/model"
)

const githubAPIBase = "https://api.github.com"

// maxRateLimitWait caps how long a request will wait for a rate limit
// window to reset before giving up.
const maxRateLimitWait = time.Hour

// GitHub fetches hosting stats from the GitHub REST API.
type GitHub struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewGitHub creates a new GitHub client. If baseURL is empty, the default
// GitHub API endpoint is used.
func NewGitHub(token string, baseURL string, client *http.Client) *GitHub {
	if baseURL == "" {
		baseURL = githubAPIBase
	}
	if client == nil {
		client = &http.Client{}
	}
	return &GitHub{
		token:   token,
		baseURL: baseURL,
		client:  client,
	}
}

type githubRepoInfo struct {
	StargazersCount int `json:"stargazers_count"`
	ForksCount      int `json:"forks_count"`
	OpenIssuesCount int `json:"open_issues_count"`
}

type githubSearchResult struct {
	TotalCount int `json:"total_count"`
}

// RepoStats fetches stars, forks, open issue and PR counts, and the release
// count for one repository.
func (g *GitHub) RepoStats(ctx context.Context, owner, repo string) (*model.HostingStats, error) {
	var info githubRepoInfo
	if _, err := g.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", g.baseURL, owner, repo), &info); err != nil {
		return nil, err
	}

	var prs githubSearchResult
	prURL := fmt.Sprintf("%s/search/issues?q=repo:%s/%s+type:pr+state:open&per_page=1", g.baseURL, owner, repo)
	if _, err := g.getJSON(ctx, prURL, &prs); err != nil {
		return nil, err
	}

	releases, err := g.releaseCount(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	// open_issues_count includes pull requests.
	openIssues := info.OpenIssuesCount - prs.TotalCount
	if openIssues < 0 {
		openIssues = 0
	}

	return &model.HostingStats{
		Stars:      info.StargazersCount,
		Forks:      info.ForksCount,
		OpenIssues: openIssues,
		OpenPRs:    prs.TotalCount,
		Releases:   releases,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// releaseCount reads the total number of releases from the rel="last" page
// of a one-per-page listing, falling back to the page length when there is
// no Link header.
func (g *GitHub) releaseCount(ctx context.Context, owner, repo string) (int, error) {
	var page []json.RawMessage
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=1", g.baseURL, owner, repo)
	header, err := g.getJSON(ctx, url, &page)
	if err != nil {
		return 0, err
	}

	if last := parseLinkLast(header.Get("Link")); last > 0 {
		return last, nil
	}
	return len(page), nil
}

// getJSON performs an authenticated GET and decodes the response. On a rate
// limit response it waits for the reset (when within the cap) and retries
// exactly once.
func (g *GitHub) getJSON(ctx context.Context, url string, out interface{}) (http.Header, error) {
	retried := false
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+g.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

		resp, err := g.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("github API request: %w", err)
		}

		if isRateLimited(resp) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			reset := resetTime(resp.Header)
			if retried {
				return nil, fmt.Errorf("%w: still limited after reset at %s", ErrRateLimited, reset.Format(time.RFC3339))
			}
			wait := time.Until(reset)
			if wait > maxRateLimitWait {
				return nil, fmt.Errorf("%w: window resets at %s", ErrRateLimited, reset.Format(time.RFC3339))
			}
			if wait > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
			}
			retried = true
			continue
		}

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("github API returned status %d for %s", resp.StatusCode, url)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode github response: %w", err)
		}
		return resp.Header, nil
	}
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func resetTime(header http.Header) time.Time {
	secs, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Unix(secs, 0).UTC()
}

var linkLastRe = regexp.MustCompile(`[?&]page=(\d+)[^>]*>;\s*rel="last"`)

func parseLinkLast(header string) int {
	matches := linkLastRe.FindStringSubmatch(header)
	if len(matches) < 2 {
		return 0
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return n
}
