package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/registry"
)

// rules decodes a YAML filters list for tests.
func rules(t *testing.T, src string) []config.Rule {
	t.Helper()
	var parsed []config.Rule
	require.NoError(t, yaml.Unmarshal([]byte(src), &parsed))
	return parsed
}

// tagNames extracts the names from a tag list.
func tagNames(tags []registry.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

// namedTags builds tag records with zero timestamps from names.
func namedTags(names ...string) []registry.Tag {
	tags := make([]registry.Tag, len(names))
	for i, name := range names {
		tags[i] = registry.Tag{Name: name}
	}
	return tags
}

// TestFilterNames tests the behavior of name filtering.
//
// It verifies:
//   - An empty rule list is the identity function
//   - Rules compose by intersection in order
//   - Matching is prefix-anchored, not full-string
//   - Input order is preserved
//   - Tag rules in the list are ignored
func TestFilterNames(t *testing.T) {
	names := []string{"app-server", "app-client", "db", "app"}

	t.Run("empty rules is identity", func(t *testing.T) {
		assert.Equal(t, names, FilterNames(names, nil))
	})

	t.Run("single rule", func(t *testing.T) {
		got := FilterNames(names, rules(t, `[{repo_regex: "^app"}]`))
		assert.Equal(t, []string{"app-server", "app-client", "app"}, got)
	})

	t.Run("rules intersect in order", func(t *testing.T) {
		got := FilterNames(names, rules(t, `[{repo_regex: "^app"}, {repo_regex: "app-"}]`))
		assert.Equal(t, []string{"app-server", "app-client"}, got)
	})

	t.Run("prefix match passes", func(t *testing.T) {
		got := FilterNames([]string{"application"}, rules(t, `[{repo_regex: "app"}]`))
		assert.Equal(t, []string{"application"}, got)
	})

	t.Run("tag rules are ignored", func(t *testing.T) {
		got := FilterNames(names, rules(t, `[{tag_regex: "^v"}]`))
		assert.Equal(t, names, got)
	})

	t.Run("no survivors", func(t *testing.T) {
		got := FilterNames(names, rules(t, `[{repo_regex: "^zzz"}]`))
		assert.Empty(t, got)
	})
}

// TestFilterTagsPattern tests the behavior of the tag_regex clause.
//
// It verifies:
//   - Only prefix-matching tags survive
//   - Name rules in the list are ignored
//   - The input slice is not mutated
func TestFilterTagsPattern(t *testing.T) {
	tags := namedTags("v1", "v2", "beta", "v10")

	got := FilterTags(tags, rules(t, `[{tag_regex: "^v"}]`))
	assert.Equal(t, []string{"v1", "v2", "v10"}, tagNames(got))

	assert.Equal(t, []string{"v1", "v2", "beta", "v10"}, tagNames(tags))

	got = FilterTags(tags, rules(t, `[{repo_regex: "^v"}]`))
	assert.Equal(t, []string{"v1", "v2", "beta", "v10"}, tagNames(got))
}

// TestFilterTagsBlacklist tests the behavior of the blacklist clause.
//
// It verifies:
//   - Blacklisted names are removed after pattern matching
//   - The blacklist only fires inside its own rule position
func TestFilterTagsBlacklist(t *testing.T) {
	tags := namedTags("v1", "v2", "v3")

	got := FilterTags(tags, rules(t, `[{tag_regex: "^v", blacklist: [v2]}]`))
	assert.Equal(t, []string{"v1", "v3"}, tagNames(got))

	got = FilterTags(tags, rules(t, `[{blacklist: [v1, v3]}]`))
	assert.Equal(t, []string{"v2"}, tagNames(got))
}

// TestFilterTagsKeepLatestN tests the behavior of the keep_latest_n clause.
//
// It verifies:
//   - The working set is sorted "latest" first, then descending natural order
//   - Truncation happens after the sort
//   - n=0 yields an empty set
//   - n larger than the set keeps everything, sorted
func TestFilterTagsKeepLatestN(t *testing.T) {
	tags := namedTags("1.0", "1.2", "latest", "1.1")

	t.Run("latest first then descending", func(t *testing.T) {
		got := FilterTags(tags, rules(t, `[{keep_latest_n: 3}]`))
		assert.Equal(t, []string{"latest", "1.2", "1.1"}, tagNames(got))
	})

	t.Run("n=2 truncates after latest", func(t *testing.T) {
		got := FilterTags(tags, rules(t, `[{keep_latest_n: 2}]`))
		assert.Equal(t, []string{"latest", "1.2"}, tagNames(got))
	})

	t.Run("n=0 yields empty", func(t *testing.T) {
		got := FilterTags(tags, rules(t, `[{keep_latest_n: 0}]`))
		assert.Empty(t, got)
	})

	t.Run("n beyond length keeps all sorted", func(t *testing.T) {
		got := FilterTags(tags, rules(t, `[{keep_latest_n: 10}]`))
		assert.Equal(t, []string{"latest", "1.2", "1.1", "1.0"}, tagNames(got))
	})

	t.Run("numeric runs sort numerically", func(t *testing.T) {
		got := FilterTags(namedTags("1.2", "1.10", "1.9"), rules(t, `[{keep_latest_n: 2}]`))
		assert.Equal(t, []string{"1.10", "1.9"}, tagNames(got))
	})

	t.Run("no latest present", func(t *testing.T) {
		got := FilterTags(namedTags("v1", "v3", "v2"), rules(t, `[{keep_latest_n: 2}]`))
		assert.Equal(t, []string{"v3", "v2"}, tagNames(got))
	})
}

// TestFilterTagsKeepMostRecent tests the behavior of keep_most_recent rules.
//
// It verifies:
//   - The single most recently updated tag survives
//   - Ties keep the first encountered tag
//   - An empty working set stays empty without error
func TestFilterTagsKeepMostRecent(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tags := []registry.Tag{
		{Name: "v1", LastUpdated: t0},
		{Name: "v3", LastUpdated: t0.Add(2 * time.Hour)},
		{Name: "v2", LastUpdated: t0.Add(time.Hour)},
	}

	t.Run("keeps newest", func(t *testing.T) {
		got := FilterTags(tags, rules(t, `[{keep_most_recent: true}]`))
		assert.Equal(t, []string{"v3"}, tagNames(got))
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		tied := []registry.Tag{
			{Name: "a", LastUpdated: t0},
			{Name: "b", LastUpdated: t0},
		}
		got := FilterTags(tied, rules(t, `[{keep_most_recent: true}]`))
		assert.Equal(t, []string{"a"}, tagNames(got))
	})

	t.Run("empty set stays empty", func(t *testing.T) {
		got := FilterTags(nil, rules(t, `[{keep_most_recent: true}]`))
		assert.Empty(t, got)
	})
}

// TestFilterTagsRuleOrder tests the behavior of ordered rule composition.
//
// It verifies:
//   - Each rule acts on the result of the previous one
//   - A keep_most_recent after a tag_regex only considers survivors
func TestFilterTagsRuleOrder(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tags := []registry.Tag{
		{Name: "v1", LastUpdated: t0},
		{Name: "v2", LastUpdated: t0.Add(time.Hour)},
		{Name: "beta", LastUpdated: t0.Add(5 * time.Hour)},
	}

	got := FilterTags(tags, rules(t, `[{tag_regex: "^v"}, {keep_most_recent: true}]`))
	assert.Equal(t, []string{"v2"}, tagNames(got))

	got = FilterTags(tags, rules(t, `[{keep_most_recent: true}, {tag_regex: "^v"}]`))
	assert.Empty(t, got)
}

// TestFilterTagsEmptyRules tests the behavior without tag rules.
//
// It verifies:
//   - An empty rule list returns the input unchanged
func TestFilterTagsEmptyRules(t *testing.T) {
	tags := namedTags("b", "a")
	got := FilterTags(tags, nil)
	assert.Equal(t, []string{"b", "a"}, tagNames(got))
}
