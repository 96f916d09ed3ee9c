package githubapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPageSize is the per_page value used for repository listing
const DefaultPageSize = 100

// ListOptions controls the repository listing
type ListOptions struct {
	// Exclude drops the repository with this (lowercased) name,
	// typically the repo catalog-sync itself runs from
	Exclude string

	// Pattern optionally filters repositories. It is matched against
	// the lowercased name, anchored at the start.
	Pattern string

	// PageSize overrides DefaultPageSize when > 0
	PageSize int
}

// ListRepositories pages through an organization's repositories.
//
// Pagination stops on the first empty page. A non-200 page stops
// pagination early and returns the repositories accumulated so far
// together with the page error, so callers can keep the partial
// result. Ordering is the API's natural ordering.
func (c *Client) ListRepositories(org, token string, opts ListOptions) ([]Repository, error) {
	var filter *regexp.Regexp
	if opts.Pattern != "" {
		re, err := regexp.Compile("^(?:" + opts.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid repository pattern: %w", err)
		}
		filter = re
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []Repository
	for page := 1; ; page++ {
		repos, err := c.listPage(org, token, page, pageSize)
		if err != nil {
			return all, fmt.Errorf("fetching repositories page %d: %w", page, err)
		}
		if len(repos) == 0 {
			break
		}

		for _, repo := range repos {
			name := strings.ToLower(repo.Name)
			if name == opts.Exclude {
				continue
			}
			if filter != nil && !filter.MatchString(name) {
				continue
			}
			all = append(all, Repository{Name: name, HTMLURL: repo.HTMLURL})
		}
	}

	return all, nil
}

// listPage fetches one page of the organization repository listing
func (c *Client) listPage(org, token string, page, pageSize int) ([]Repository, error) {
	url := fmt.Sprintf("%s/orgs/%s/repos", c.BaseURL, org)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building listing request: %w", err)
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned %d", resp.StatusCode)
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return repos, nil
}
