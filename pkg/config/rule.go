package config

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/hubfilter/pkg/errors"
)

// RuleKind discriminates the rule variants.
type RuleKind int

const (
	// KindNameRegex filters repository names by a prefix-anchored pattern.
	KindNameRegex RuleKind = iota

	// KindTagRegex filters tag names. The variant optionally carries a
	// prefix-anchored pattern, a blacklist, and a keep-latest-n clause;
	// the clauses apply in that order within the rule's position.
	KindTagRegex

	// KindKeepMostRecent reduces the working tag set to its single most
	// recently updated member.
	KindKeepMostRecent
)

// Rule is one configured filtering step, decoded from a single YAML mapping
// in a repository's filters list. Exactly one variant applies per entry:
// a name-regex rule, a tag-regex-family rule, or keep-most-recent. Mixing
// keep_most_recent with any other clause is rejected at parse time, as is
// mixing repo_regex with tag clauses.
type Rule struct {
	kind RuleKind

	// rawPattern is the configured pattern before anchoring, for messages.
	rawPattern string

	// pattern is the compiled, prefix-anchored pattern. Nil for
	// keep-most-recent rules and for tag rules without a tag_regex clause.
	pattern *regexp.Regexp

	// blacklist holds tag names removed after pattern matching.
	blacklist map[string]struct{}

	// keepLatestN is the truncation bound, nil when the clause is absent.
	keepLatestN *int
}

// ruleKeys are the recognized keys of a rule mapping.
var ruleKeys = map[string]bool{
	"repo_regex":       true,
	"tag_regex":        true,
	"blacklist":        true,
	"keep_latest_n":    true,
	"keep_most_recent": true,
}

// UnmarshalYAML decodes one rule entry into exactly one Rule variant.
//
// It performs the following operations:
//   - Step 1: Rejects unknown keys and non-mapping entries
//   - Step 2: Checks the clause grammar (variant exclusivity, non-negative
//     keep_latest_n)
//   - Step 3: Compiles patterns, prefix-anchored, failing on bad regexes
//
// Parameters:
//   - value: The YAML node holding the rule mapping
//
// Returns:
//   - error: A *errors.ConfigError describing the grammar violation, or nil
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.NewConfigError("", "filter rule must be a mapping (line %d)", value.Line)
	}
	for i := 0; i < len(value.Content); i += 2 {
		if key := value.Content[i].Value; !ruleKeys[key] {
			return errors.NewConfigError("", "unknown filter rule key %q (line %d)", key, value.Content[i].Line)
		}
	}

	var raw struct {
		RepoRegex      *string  `yaml:"repo_regex"`
		TagRegex       *string  `yaml:"tag_regex"`
		Blacklist      []string `yaml:"blacklist"`
		KeepLatestN    *int     `yaml:"keep_latest_n"`
		KeepMostRecent *bool    `yaml:"keep_most_recent"`
	}
	if err := value.Decode(&raw); err != nil {
		return &errors.ConfigError{Message: fmt.Sprintf("invalid filter rule (line %d)", value.Line), Err: err}
	}

	keepMostRecent := raw.KeepMostRecent != nil && *raw.KeepMostRecent
	tagClauses := raw.TagRegex != nil || raw.Blacklist != nil || raw.KeepLatestN != nil

	switch {
	case keepMostRecent && (tagClauses || raw.RepoRegex != nil):
		return errors.NewConfigError("", "keep_most_recent cannot be combined with other rule clauses (line %d)", value.Line)
	case raw.RepoRegex != nil && tagClauses:
		return errors.NewConfigError("", "repo_regex cannot be combined with tag rule clauses (line %d)", value.Line)
	case !keepMostRecent && !tagClauses && raw.RepoRegex == nil:
		return errors.NewConfigError("", "filter rule has no effect (line %d)", value.Line)
	}

	if raw.KeepLatestN != nil && *raw.KeepLatestN < 0 {
		return errors.NewConfigError("", "keep_latest_n must be a non-negative integer, got %d (line %d)", *raw.KeepLatestN, value.Line)
	}

	switch {
	case keepMostRecent:
		r.kind = KindKeepMostRecent

	case raw.RepoRegex != nil:
		r.kind = KindNameRegex
		r.rawPattern = *raw.RepoRegex
		pattern, err := compilePrefix(*raw.RepoRegex)
		if err != nil {
			return &errors.ConfigError{Message: fmt.Sprintf("invalid repo_regex %q (line %d)", *raw.RepoRegex, value.Line), Err: err}
		}
		r.pattern = pattern

	default:
		r.kind = KindTagRegex
		if raw.TagRegex != nil && *raw.TagRegex != "" {
			r.rawPattern = *raw.TagRegex
			pattern, err := compilePrefix(*raw.TagRegex)
			if err != nil {
				return &errors.ConfigError{Message: fmt.Sprintf("invalid tag_regex %q (line %d)", *raw.TagRegex, value.Line), Err: err}
			}
			r.pattern = pattern
		}
		if len(raw.Blacklist) > 0 {
			r.blacklist = make(map[string]struct{}, len(raw.Blacklist))
			for _, name := range raw.Blacklist {
				r.blacklist[name] = struct{}{}
			}
		}
		r.keepLatestN = raw.KeepLatestN
	}

	return nil
}

// compilePrefix compiles a pattern with prefix anchoring.
//
// Matching is anchored at the start of the subject but not at its end: a
// pattern matching only a prefix of a name still passes.
//
// Parameters:
//   - pattern: The configured regex pattern
//
// Returns:
//   - *regexp.Regexp: The compiled, anchored pattern
//   - error: The regexp compile error, or nil
func compilePrefix(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)`)
}

// Kind returns the rule variant.
//
// Returns:
//   - RuleKind: The discriminant of this rule
func (r *Rule) Kind() RuleKind {
	return r.kind
}

// IsNameRule reports whether the rule filters repository names.
//
// Returns:
//   - bool: true for name-regex rules
func (r *Rule) IsNameRule() bool {
	return r.kind == KindNameRegex
}

// IsTagRule reports whether the rule participates in the tag pipeline.
// Both tag-regex-family rules and keep-most-recent rules qualify.
//
// Returns:
//   - bool: true for tag-regex-family and keep-most-recent rules
func (r *Rule) IsTagRule() bool {
	return r.kind == KindTagRegex || r.kind == KindKeepMostRecent
}

// MatchName reports whether a name passes the rule's pattern clause.
// Rules without a pattern clause match every name.
//
// Parameters:
//   - name: The repository or tag name to test
//
// Returns:
//   - bool: true if the name's prefix matches the pattern, or no pattern is set
func (r *Rule) MatchName(name string) bool {
	if r.pattern == nil {
		return true
	}
	return r.pattern.MatchString(name)
}

// HasPattern reports whether the rule carries a pattern clause.
//
// Returns:
//   - bool: true if a tag_regex or repo_regex clause was configured
func (r *Rule) HasPattern() bool {
	return r.pattern != nil
}

// InBlacklist reports whether a tag name is a member of the rule's blacklist.
//
// Parameters:
//   - name: The tag name to test
//
// Returns:
//   - bool: true if the name is blacklisted
func (r *Rule) InBlacklist(name string) bool {
	_, ok := r.blacklist[name]
	return ok
}

// HasBlacklist reports whether the rule carries a blacklist clause.
//
// Returns:
//   - bool: true if a non-empty blacklist was configured
func (r *Rule) HasBlacklist() bool {
	return len(r.blacklist) > 0
}

// KeepLatestN returns the keep-latest-n bound when configured.
//
// Returns:
//   - int: The truncation bound, 0 when absent
//   - bool: true if the clause was configured
func (r *Rule) KeepLatestN() (int, bool) {
	if r.keepLatestN == nil {
		return 0, false
	}
	return *r.keepLatestN, true
}

// String returns a compact description of the rule for logging.
//
// Returns:
//   - string: The rule variant and its clauses
func (r *Rule) String() string {
	switch r.kind {
	case KindNameRegex:
		return fmt.Sprintf("repo_regex(%s)", r.rawPattern)
	case KindKeepMostRecent:
		return "keep_most_recent"
	default:
		var clauses []string
		if r.pattern != nil {
			clauses = append(clauses, fmt.Sprintf("tag_regex(%s)", r.rawPattern))
		}
		if len(r.blacklist) > 0 {
			clauses = append(clauses, fmt.Sprintf("blacklist(%d)", len(r.blacklist)))
		}
		if r.keepLatestN != nil {
			clauses = append(clauses, fmt.Sprintf("keep_latest_n(%d)", *r.keepLatestN))
		}
		if len(clauses) == 0 {
			return "tag_rule(identity)"
		}
		return strings.Join(clauses, "+")
	}
}
