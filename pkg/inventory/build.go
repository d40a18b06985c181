// Package inventory orchestrates the per-namespace fetch-and-filter pass.
// It drives the registry client for each configured namespace, applies the
// name and tag filters, and produces the unfiltered and allowed views that
// the software aggregation and output stages consume.
package inventory

import (
	"context"
	"fmt"

	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/filtering"
	"github.com/ajxudir/hubfilter/pkg/natsort"
	"github.com/ajxudir/hubfilter/pkg/registry"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// NamespaceRepos is the unfiltered repository listing of one namespace.
type NamespaceRepos struct {
	// Namespace is the registry account.
	Namespace string

	// Repos holds every repository name, in listing order, regardless of
	// filtering outcome.
	Repos []string
}

// RepoEntry is one filtered repository result.
type RepoEntry struct {
	// Key is "namespace/repository".
	Key string

	// Namespace is the registry account the repository came from.
	Namespace string

	// Tags holds the surviving tag names in descending natural order.
	Tags []string

	// Software holds the labels the owning config entry declares.
	Software []string
}

// Result is the output of one inventory pass.
type Result struct {
	// AllRepos lists every namespace's unfiltered repositories, in config
	// order. A namespace configured twice keeps its first position with
	// the later listing.
	AllRepos []NamespaceRepos

	// Allowed lists the filtered repositories in construction order:
	// config entry order, then listing order within each namespace.
	Allowed []RepoEntry
}

// Build runs the fetch-and-filter pass over every configured namespace.
//
// It performs the following operations, per repository config entry in
// declared order:
//   - Step 1: Fetches the namespace's full repository list and records it
//     unfiltered
//   - Step 2: Splits the entry's rules by discriminant and name-filters the
//     candidate repositories
//   - Step 3: Fetches and tag-filters each surviving repository's tags
//   - Step 4: Sorts the surviving tag names in descending natural order,
//     unconditionally, and records the entry under "namespace/repository"
//
// Execution is strictly sequential; the first fetch failure aborts the run.
//
// Parameters:
//   - ctx: Context bounding all registry requests
//   - client: The registry client to fetch from
//   - cfg: The loaded configuration
//
// Returns:
//   - *Result: The unfiltered and allowed views
//   - error: The first fetch failure, or nil
func Build(ctx context.Context, client registry.Client, cfg *config.Config) (*Result, error) {
	result := &Result{}
	namespaceIndex := make(map[string]int)

	for _, rc := range cfg.Repositories {
		verbose.Infof("processing namespace %q with %d filters", rc.Namespace, len(rc.Filters))

		repos, err := client.ListRepositories(ctx, rc.Namespace)
		if err != nil {
			return nil, fmt.Errorf("listing repositories for namespace %q: %w", rc.Namespace, err)
		}

		names := make([]string, len(repos))
		for i, repo := range repos {
			names[i] = repo.Name
		}
		recordAllRepos(result, namespaceIndex, rc.Namespace, names)

		for _, name := range filtering.FilterNames(names, rc.Filters) {
			tags, err := client.ListTags(ctx, rc.Namespace, name)
			if err != nil {
				return nil, fmt.Errorf("listing tags for %s/%s: %w", rc.Namespace, name, err)
			}

			filtered := filtering.FilterTags(tags, rc.Filters)

			tagNames := make([]string, len(filtered))
			for i, tag := range filtered {
				tagNames[i] = tag.Name
			}
			// The final ordering is always descending natural order, even
			// when keep_latest_n already sorted the working set.
			natsort.SortDescending(tagNames)

			result.Allowed = append(result.Allowed, RepoEntry{
				Key:       rc.Namespace + "/" + name,
				Namespace: rc.Namespace,
				Tags:      tagNames,
				Software:  rc.Software,
			})
		}
	}

	verbose.Infof("inventory complete: %d namespaces, %d allowed repositories", len(result.AllRepos), len(result.Allowed))
	return result, nil
}

// recordAllRepos records a namespace's unfiltered listing.
//
// A namespace seen before keeps its original position and takes the newer
// listing, matching map-assignment semantics.
//
// Parameters:
//   - result: The result being built
//   - index: Positions of namespaces already recorded
//   - namespace: The namespace just listed
//   - names: The unfiltered repository names
//
// Returns:
//   - None
func recordAllRepos(result *Result, index map[string]int, namespace string, names []string) {
	if pos, ok := index[namespace]; ok {
		result.AllRepos[pos].Repos = names
		return
	}
	index[namespace] = len(result.AllRepos)
	result.AllRepos = append(result.AllRepos, NamespaceRepos{Namespace: namespace, Repos: names})
}
