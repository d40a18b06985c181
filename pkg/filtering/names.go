// Package filtering applies ordered rule lists to repository names and tag
// records. Rules compose by intersection: each rule narrows the result of the
// previous one, and an empty rule list is the identity function. Every step
// rebinds a fresh slice; input slices are never mutated in place.
package filtering

import (
	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// FilterNames applies an ordered list of name rules to repository names.
//
// It performs the following operations:
//   - Step 1: Starts from the full input list
//   - Step 2: For each rule in order, retains only names whose prefix matches
//     the rule's pattern
//
// The order of surviving names is preserved from the input. Rules that are
// not name rules are ignored.
//
// Parameters:
//   - names: Repository names in listing order
//   - rules: The ordered rule list (only name rules apply)
//
// Returns:
//   - []string: The surviving names, in input order
func FilterNames(names []string, rules []config.Rule) []string {
	filtered := names
	for i := range rules {
		rule := &rules[i]
		if !rule.IsNameRule() {
			continue
		}

		kept := make([]string, 0, len(filtered))
		for _, name := range filtered {
			if rule.MatchName(name) {
				kept = append(kept, name)
			}
		}
		verbose.Infof("name rule %s kept %d of %d repositories", rule, len(kept), len(filtered))
		filtered = kept
	}
	return filtered
}
