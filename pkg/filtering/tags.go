package filtering

import (
	"sort"

	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/natsort"
	"github.com/ajxudir/hubfilter/pkg/registry"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// latestTag is pinned first by the keep-latest-n ordering when present.
const latestTag = "latest"

// FilterTags applies an ordered list of tag rules to tag records.
//
// Rules apply strictly in order, each acting on the result of the previous:
//
//   - A tag-regex-family rule first retains tags whose name prefix-matches
//     its pattern (when one is configured), then removes blacklisted names,
//     then truncates to the newest n entries when keep_latest_n is set.
//   - A keep-most-recent rule reduces a non-empty working set to the single
//     tag with the maximum LastUpdated; ties keep the first encountered.
//
// Rules that are not tag rules are ignored. The working set is rebound at
// every step; the input slice is never mutated.
//
// Parameters:
//   - tags: Tag records in listing order
//   - rules: The ordered rule list (only tag rules apply)
//
// Returns:
//   - []registry.Tag: The surviving tags
func FilterTags(tags []registry.Tag, rules []config.Rule) []registry.Tag {
	filtered := tags
	for i := range rules {
		rule := &rules[i]
		switch {
		case rule.Kind() == config.KindKeepMostRecent:
			filtered = keepMostRecent(filtered)
			verbose.Infof("tag rule %s kept %d tags", rule, len(filtered))

		case rule.Kind() == config.KindTagRegex:
			before := len(filtered)
			filtered = applyTagRule(filtered, rule)
			verbose.Infof("tag rule %s kept %d of %d tags", rule, len(filtered), before)
		}
	}
	return filtered
}

// applyTagRule applies one tag-regex-family rule's clauses in order.
//
// Parameters:
//   - tags: The current working set
//   - rule: The tag rule to apply
//
// Returns:
//   - []registry.Tag: The reduced working set
func applyTagRule(tags []registry.Tag, rule *config.Rule) []registry.Tag {
	filtered := tags

	if rule.HasPattern() {
		kept := make([]registry.Tag, 0, len(filtered))
		for _, tag := range filtered {
			if rule.MatchName(tag.Name) {
				kept = append(kept, tag)
			}
		}
		filtered = kept
	}

	if rule.HasBlacklist() {
		kept := make([]registry.Tag, 0, len(filtered))
		for _, tag := range filtered {
			if !rule.InBlacklist(tag.Name) {
				kept = append(kept, tag)
			}
		}
		filtered = kept
	}

	if n, ok := rule.KeepLatestN(); ok {
		filtered = keepLatest(filtered, n)
	}

	return filtered
}

// keepLatest sorts the working set newest-first by tag name and truncates it.
//
// The tag named exactly "latest" sorts first when present; all other tags
// follow in descending natural order. The first n entries survive.
//
// Parameters:
//   - tags: The current working set
//   - n: The truncation bound; 0 yields an empty result
//
// Returns:
//   - []registry.Tag: At most n tags, newest-first
func keepLatest(tags []registry.Tag, n int) []registry.Tag {
	sorted := make([]registry.Tag, len(tags))
	copy(sorted, tags)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name == latestTag, sorted[j].Name == latestTag
		if a != b {
			return a
		}
		return natsort.Compare(sorted[i].Name, sorted[j].Name) > 0
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// keepMostRecent reduces the working set to its most recently updated tag.
//
// An empty working set stays empty. Ties on LastUpdated keep the first
// encountered tag, scanning in input order.
//
// Parameters:
//   - tags: The current working set
//
// Returns:
//   - []registry.Tag: A single-element set, or an empty one
func keepMostRecent(tags []registry.Tag) []registry.Tag {
	if len(tags) == 0 {
		return tags
	}

	newest := tags[0]
	for _, tag := range tags[1:] {
		if tag.LastUpdated.After(newest.LastUpdated) {
			newest = tag
		}
	}
	return []registry.Tag{newest}
}
