package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/hubfilter/pkg/errors"
)

// newTestClient points a HubClient at an httptest server.
func newTestClient(server *httptest.Server) *HubClient {
	client := NewHubClient()
	client.BaseURL = server.URL
	return client
}

// TestListRepositoriesPagination tests the behavior of repository listing.
//
// It verifies:
//   - All pages are drained by following the next cursor
//   - Repository order follows the listing order across pages
//   - The configured page size is requested
func TestListRepositoriesPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/namespaces/acme/repositories", r.URL.Path)

		switch r.URL.Query().Get("page") {
		case "":
			assert.Equal(t, "100", r.URL.Query().Get("page_size"))
			fmt.Fprintf(w, `{"next": %q, "results": [{"name": "app"}, {"name": "db"}]}`,
				server.URL+"/v2/namespaces/acme/repositories?page=2")
		case "2":
			fmt.Fprint(w, `{"next": null, "results": [{"name": "cache"}]}`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	repos, err := newTestClient(server).ListRepositories(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []Repository{{Name: "app"}, {Name: "db"}, {Name: "cache"}}, repos)
}

// TestListTagsPagination tests the behavior of tag listing.
//
// It verifies:
//   - Tag pages are drained in order
//   - Tag timestamps are decoded from last_updated
func TestListTagsPagination(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/namespaces/acme/repositories/app/tags", r.URL.Path)

		if r.URL.Query().Get("page") == "" {
			fmt.Fprintf(w, `{"next": %q, "results": [{"name": "v1", "last_updated": "2026-03-01T12:00:00Z"}]}`,
				server.URL+"/v2/namespaces/acme/repositories/app/tags?page=2")
			return
		}
		fmt.Fprint(w, `{"next": null, "results": [{"name": "v2", "last_updated": "2026-03-02T12:00:00Z"}]}`)
	}))
	defer server.Close()

	tags, err := newTestClient(server).ListTags(context.Background(), "acme", "app")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "v1", tags[0].Name)
	assert.True(t, tags[0].LastUpdated.Equal(t0))
	assert.Equal(t, "v2", tags[1].Name)
}

// TestFetchErrorStatus tests the behavior on non-success HTTP status.
//
// It verifies:
//   - A non-2xx page produces a FetchError with status and URL
//   - The error aborts pagination immediately
func TestFetchErrorStatus(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server).ListRepositories(context.Background(), "acme")
	require.Error(t, err)

	fetchErr, ok := errors.IsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.URL, "/v2/namespaces/acme/repositories")
	assert.Equal(t, 1, requests)
}

// TestFetchErrorMidPagination tests the behavior when a later page fails.
//
// It verifies:
//   - A failure on the second page surfaces as a FetchError
//   - No partial result is returned
func TestFetchErrorMidPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			fmt.Fprintf(w, `{"next": %q, "results": [{"name": "app"}]}`,
				server.URL+"/v2/namespaces/acme/repositories?page=2")
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repos, err := newTestClient(server).ListRepositories(context.Background(), "acme")
	require.Error(t, err)
	assert.Nil(t, repos)

	fetchErr, ok := errors.IsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

// TestListRepositoriesEmptyNamespace tests the behavior of an empty listing.
//
// It verifies:
//   - A namespace without repositories yields an empty result and no error
func TestListRepositoriesEmptyNamespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"next": null, "results": []}`)
	}))
	defer server.Close()

	repos, err := newTestClient(server).ListRepositories(context.Background(), "acme")
	require.NoError(t, err)
	assert.Empty(t, repos)
}

// TestDecodeError tests the behavior on malformed response bodies.
//
// It verifies:
//   - Invalid JSON surfaces as a decode error, not a FetchError
func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"next": `)
	}))
	defer server.Close()

	_, err := newTestClient(server).ListRepositories(context.Background(), "acme")
	require.Error(t, err)
	_, ok := errors.IsFetchError(err)
	assert.False(t, ok)
}

// TestContextCancellation tests the behavior when the context is cancelled.
//
// It verifies:
//   - A cancelled context aborts the listing with an error
func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"next": null, "results": []}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server).ListRepositories(ctx, "acme")
	require.Error(t, err)
}

// TestNewHubClientDefaults tests the behavior of client construction.
//
// It verifies:
//   - Defaults are applied for endpoint, timeout, and page size
//   - Zero-value fields fall back to defaults at call time
func TestNewHubClientDefaults(t *testing.T) {
	client := NewHubClient()
	assert.Equal(t, DefaultBaseURL, client.BaseURL)
	assert.Equal(t, DefaultPageSize, client.PageSize)
	require.NotNil(t, client.HTTPClient)
	assert.Equal(t, DefaultTimeout, client.HTTPClient.Timeout)

	zero := &HubClient{BaseURL: client.BaseURL}
	assert.Equal(t, DefaultPageSize, zero.pageSize())
	assert.NotNil(t, zero.httpClient())
}

// TestTagJSONShape tests the behavior of tag decoding.
//
// It verifies:
//   - The last_updated field maps onto LastUpdated
func TestTagJSONShape(t *testing.T) {
	var tag Tag
	require.NoError(t, json.Unmarshal([]byte(`{"name": "v1", "last_updated": "2026-01-02T03:04:05Z"}`), &tag))
	assert.Equal(t, "v1", tag.Name)
	assert.Equal(t, 2026, tag.LastUpdated.Year())
}
