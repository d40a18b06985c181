// Package software groups the filtered inventory by the software taxonomy
// declared in configuration and computes the deterministic display orderings
// of the output documents.
package software

import (
	"sort"

	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/inventory"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// RepoTags is one repository's filtered tag list inside a software group.
type RepoTags struct {
	// Key is "namespace/repository".
	Key string

	// Tags is the filtered, descending natural-sorted tag-name list.
	Tags []string
}

// Group is one software label's output group.
type Group struct {
	// Name is the software label.
	Name string

	// Description comes from the label's metadata.
	Description string

	// Repos holds the grouped repositories in inventory construction order.
	Repos []RepoTags
}

// Result is the aggregated, display-ordered output of one run.
type Result struct {
	// Allowed is the filtered repository list in global display order:
	// stable-sorted by each entry's effective sort order.
	Allowed []inventory.RepoEntry

	// Groups holds one group per declared software label, sorted by the
	// label's sort order (declaration order on ties).
	Groups []Group

	// UnknownRefs lists software labels referenced by repository entries
	// but absent from the software section, deduplicated, in first-seen
	// order. They are diagnostics, not errors.
	UnknownRefs []string
}

// Aggregate groups the inventory by software label and orders the outputs.
//
// It performs the following operations:
//   - Step 1: Builds the software metadata index from configuration
//   - Step 2: Collects unknown label references across all config entries
//   - Step 3: Copies each allowed repository into the group of every known
//     label its owning config entry declares
//   - Step 4: Stable-sorts the allowed list by effective sort order and the
//     groups by their labels' sort order
//
// Parameters:
//   - inv: The inventory pass result
//   - cfg: The loaded configuration
//
// Returns:
//   - *Result: The aggregated, display-ordered result
func Aggregate(inv *inventory.Result, cfg *config.Config) *Result {
	index := cfg.SoftwareIndex()
	result := &Result{
		UnknownRefs: collectUnknownRefs(cfg, index),
	}

	groups := make(map[string]*Group, len(cfg.Software))
	for _, meta := range cfg.Software {
		if _, ok := groups[meta.Name]; ok {
			continue
		}
		groups[meta.Name] = &Group{Name: meta.Name, Description: meta.Description}
	}

	for _, entry := range inv.Allowed {
		for _, label := range entry.Software {
			group, ok := groups[label]
			if !ok {
				// Unknown label: the repository stays in the allowed
				// output but is excluded from grouping.
				continue
			}
			group.Repos = append(group.Repos, RepoTags{Key: entry.Key, Tags: entry.Tags})
		}
	}

	result.Groups = orderedGroups(cfg, index, groups)
	result.Allowed = orderedAllowed(inv, cfg, index)

	verbose.Infof("aggregation complete: %d groups, %d unknown references", len(result.Groups), len(result.UnknownRefs))
	return result
}

// collectUnknownRefs gathers referenced-but-undeclared software labels.
//
// Parameters:
//   - cfg: The loaded configuration
//   - index: The software metadata index
//
// Returns:
//   - []string: Unknown labels, deduplicated, in first-seen order
func collectUnknownRefs(cfg *config.Config, index map[string]config.SoftwareMeta) []string {
	var unknown []string
	seen := make(map[string]bool)
	for _, rc := range cfg.Repositories {
		for _, label := range rc.Software {
			if _, ok := index[label]; ok || seen[label] {
				continue
			}
			seen[label] = true
			unknown = append(unknown, label)
		}
	}
	return unknown
}

// orderedGroups orders the built groups for display.
//
// Labels sort by their declared sort order; ties keep declaration order.
//
// Parameters:
//   - cfg: The loaded configuration
//   - index: The software metadata index
//   - groups: The built groups keyed by label
//
// Returns:
//   - []Group: One group per declared label, in display order
func orderedGroups(cfg *config.Config, index map[string]config.SoftwareMeta, groups map[string]*Group) []Group {
	names := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, meta := range cfg.Software {
		if seen[meta.Name] {
			continue
		}
		seen[meta.Name] = true
		names = append(names, meta.Name)
	}

	sort.SliceStable(names, func(i, j int) bool {
		return index[names[i]].SortOrder < index[names[j]].SortOrder
	})

	ordered := make([]Group, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, *groups[name])
	}
	return ordered
}

// orderedAllowed orders the allowed repositories for display.
//
// Each entry's effective order value is the minimum sort order among the
// known software labels of every config entry whose namespace is a prefix
// of the repository key, scanned in config order. Entries whose key matches
// no known software default to config.DefaultSortOrder. The sort is stable:
// ties keep construction order.
//
// Parameters:
//   - inv: The inventory pass result
//   - cfg: The loaded configuration
//   - index: The software metadata index
//
// Returns:
//   - []inventory.RepoEntry: The allowed entries in global display order
func orderedAllowed(inv *inventory.Result, cfg *config.Config, index map[string]config.SoftwareMeta) []inventory.RepoEntry {
	ordered := make([]inventory.RepoEntry, len(inv.Allowed))
	copy(ordered, inv.Allowed)

	orders := make(map[string]int, len(ordered))
	for _, entry := range ordered {
		orders[entry.Key] = effectiveOrder(entry.Key, cfg, index)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return orders[ordered[i].Key] < orders[ordered[j].Key]
	})
	return ordered
}

// effectiveOrder computes a repository key's display order value.
//
// Parameters:
//   - key: The "namespace/repository" key
//   - cfg: The loaded configuration
//   - index: The software metadata index
//
// Returns:
//   - int: The minimum known sort order, or config.DefaultSortOrder
func effectiveOrder(key string, cfg *config.Config, index map[string]config.SoftwareMeta) int {
	order := config.DefaultSortOrder
	for _, rc := range cfg.Repositories {
		if !hasNamespacePrefix(key, rc.Namespace) {
			continue
		}
		for _, label := range rc.Software {
			meta, ok := index[label]
			if ok && meta.SortOrder < order {
				order = meta.SortOrder
			}
		}
	}
	return order
}

// hasNamespacePrefix reports whether a repository key starts with a namespace.
//
// The test is a plain starts-with scan: a key "acme-internal/tool" matches
// both the "acme-internal" and the "acme" namespace strings. The minimum
// selection over all matches in config order is deliberate.
//
// Parameters:
//   - key: The "namespace/repository" key
//   - namespace: The candidate namespace
//
// Returns:
//   - bool: true if the key starts with the namespace string
func hasNamespacePrefix(key, namespace string) bool {
	return len(key) >= len(namespace) && key[:len(namespace)] == namespace
}
