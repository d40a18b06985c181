// Package registry provides the Docker Hub v2 API client used to discover
// repositories and tags. Listings are paginated; the client fully drains the
// next-link cursor before returning, so callers always see complete results.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ajxudir/hubfilter/pkg/errors"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

const (
	// DefaultBaseURL is the Docker Hub API endpoint.
	DefaultBaseURL = "https://hub.docker.com"

	// DefaultPageSize is the page size requested from the listing API.
	DefaultPageSize = 100

	// DefaultTimeout bounds each individual page request.
	DefaultTimeout = 10 * time.Second
)

// Repository is one repository record from a namespace listing.
type Repository struct {
	// Name is the repository name within its namespace.
	Name string `json:"name"`
}

// Tag is one tag record from a repository listing.
type Tag struct {
	// Name is the tag name.
	Name string `json:"name"`

	// LastUpdated is the push timestamp, used only for recency comparisons.
	LastUpdated time.Time `json:"last_updated"`
}

// Client lists repositories and tags for a namespace. Implementations must
// fully drain pagination before returning and must surface a
// *errors.FetchError on any non-success HTTP status.
type Client interface {
	// ListRepositories returns every repository in the namespace.
	ListRepositories(ctx context.Context, namespace string) ([]Repository, error)

	// ListTags returns every tag of the repository.
	ListTags(ctx context.Context, namespace, repository string) ([]Tag, error)
}

// HubClient is the Docker Hub implementation of Client.
//
// Fields:
//   - BaseURL: API endpoint, DefaultBaseURL unless overridden (tests point
//     this at an httptest server)
//   - HTTPClient: the underlying HTTP client carrying the per-request timeout
//   - PageSize: page size requested from the listing API
type HubClient struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

var _ Client = (*HubClient)(nil)

// NewHubClient creates a HubClient with default endpoint, timeout, and page size.
//
// Returns:
//   - *HubClient: A ready-to-use Docker Hub client
func NewHubClient() *HubClient {
	return &HubClient{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		PageSize:   DefaultPageSize,
	}
}

// repositoriesPage is one page of a repository listing response.
type repositoriesPage struct {
	Next    string       `json:"next"`
	Results []Repository `json:"results"`
}

// tagsPage is one page of a tag listing response.
type tagsPage struct {
	Next    string `json:"next"`
	Results []Tag  `json:"results"`
}

// ListRepositories returns every repository in the namespace.
//
// It performs the following operations:
//   - Step 1: Requests the first repository page for the namespace
//   - Step 2: Follows the next-link cursor until exhausted
//   - Step 3: Accumulates all repository records in listing order
//
// Parameters:
//   - ctx: Context bounding all page requests
//   - namespace: The registry account to list
//
// Returns:
//   - []Repository: All repositories, in listing order
//   - error: A *errors.FetchError on non-success status, or a transport error
func (c *HubClient) ListRepositories(ctx context.Context, namespace string) ([]Repository, error) {
	pageURL := fmt.Sprintf("%s/v2/namespaces/%s/repositories?page_size=%d",
		c.BaseURL, url.PathEscape(namespace), c.pageSize())

	var repos []Repository
	for pageURL != "" {
		var page repositoriesPage
		next, err := c.fetchPage(ctx, pageURL, &page)
		if err != nil {
			return nil, err
		}
		repos = append(repos, page.Results...)
		pageURL = next
	}

	verbose.Infof("fetched %d repositories for namespace %q", len(repos), namespace)
	return repos, nil
}

// ListTags returns every tag of the repository.
//
// It performs the following operations:
//   - Step 1: Requests the first tag page for the repository
//   - Step 2: Follows the next-link cursor until exhausted
//   - Step 3: Accumulates all tag records in listing order
//
// Parameters:
//   - ctx: Context bounding all page requests
//   - namespace: The registry account owning the repository
//   - repository: The repository to list tags for
//
// Returns:
//   - []Tag: All tags, in listing order
//   - error: A *errors.FetchError on non-success status, or a transport error
func (c *HubClient) ListTags(ctx context.Context, namespace, repository string) ([]Tag, error) {
	pageURL := fmt.Sprintf("%s/v2/namespaces/%s/repositories/%s/tags?page_size=%d",
		c.BaseURL, url.PathEscape(namespace), url.PathEscape(repository), c.pageSize())

	var tags []Tag
	for pageURL != "" {
		var page tagsPage
		next, err := c.fetchPage(ctx, pageURL, &page)
		if err != nil {
			return nil, err
		}
		tags = append(tags, page.Results...)
		pageURL = next
	}

	verbose.Infof("fetched %d tags for %s/%s", len(tags), namespace, repository)
	return tags, nil
}

// pageResponse is the shared shape of a paginated listing page.
type pageResponse interface {
	nextLink() string
}

// nextLink returns the cursor to the following repository page.
func (p *repositoriesPage) nextLink() string { return p.Next }

// nextLink returns the cursor to the following tag page.
func (p *tagsPage) nextLink() string { return p.Next }

// fetchPage retrieves and decodes one listing page.
//
// Parameters:
//   - ctx: Context bounding the request
//   - pageURL: The absolute page URL to fetch
//   - page: Destination for the decoded page
//
// Returns:
//   - string: The next-page cursor, empty when pagination is exhausted
//   - error: A *errors.FetchError on non-success status, or a transport/decode error
func (c *HubClient) fetchPage(ctx context.Context, pageURL string, page pageResponse) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused before the error aborts the run.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &errors.FetchError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(page); err != nil {
		return "", fmt.Errorf("decoding response from %s: %w", pageURL, err)
	}

	return page.nextLink(), nil
}

// pageSize returns the configured page size or the default.
//
// Returns:
//   - int: The page size to request
func (c *HubClient) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

// httpClient returns the configured HTTP client or a default one.
//
// Returns:
//   - *http.Client: The client carrying the per-request timeout
func (c *HubClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}
