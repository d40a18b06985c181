// Package config handles configuration loading and rule parsing for hubfilter.
// It models the YAML config document: the namespaces to inventory, the ordered
// filtering rules per namespace, and the software taxonomy used to group the
// filtered output.
package config

import (
	"gopkg.in/yaml.v3"
)

// DefaultSortOrder is the sort order assigned to software entries that do not
// declare one, and to repositories whose namespace maps to no known software.
// It sorts after every explicitly ordered entry.
const DefaultSortOrder = 999

// Config is the root configuration structure.
type Config struct {
	// Repositories lists the namespaces to inventory, in processing order.
	// The section is required.
	Repositories []RepositoryConfig `yaml:"repositories"`

	// Software declares the software taxonomy used to group filtered
	// repositories. The section may be empty.
	Software []SoftwareMeta `yaml:"software,omitempty"`
}

// RepositoryConfig configures one namespace: which repositories and tags
// survive filtering, and which software labels group the survivors.
type RepositoryConfig struct {
	// Namespace is the registry account whose repositories are inventoried.
	Namespace string `yaml:"namespace"`

	// Filters is the ordered rule list. Rule order is application order.
	Filters []Rule `yaml:"filters,omitempty"`

	// Software references software labels declared in the top-level
	// software section. References to undeclared labels are reported as
	// diagnostics but do not fail the run.
	Software []string `yaml:"software,omitempty"`
}

// SoftwareMeta describes one software label: its grouping key, display sort
// order, and description.
type SoftwareMeta struct {
	// Name is the software label, the grouping key.
	Name string `yaml:"name"`

	// SortOrder positions the label in grouped output. Defaults to
	// DefaultSortOrder when absent, meaning "unordered, last".
	SortOrder int `yaml:"sort_order"`

	// Description is attached to the label's output group.
	Description string `yaml:"description"`
}

// UnmarshalYAML decodes a software entry, applying the sort order default.
//
// Parameters:
//   - value: The YAML node holding the software entry
//
// Returns:
//   - error: A decode error, or nil on success
func (m *SoftwareMeta) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name        string `yaml:"name"`
		SortOrder   *int   `yaml:"sort_order"`
		Description string `yaml:"description"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	m.Name = raw.Name
	m.Description = raw.Description
	if raw.SortOrder != nil {
		m.SortOrder = *raw.SortOrder
	} else {
		m.SortOrder = DefaultSortOrder
	}
	return nil
}

// SoftwareIndex builds a lookup from software label to its metadata.
//
// Later duplicate declarations of the same label overwrite earlier ones.
//
// Returns:
//   - map[string]SoftwareMeta: metadata keyed by label name
func (c *Config) SoftwareIndex() map[string]SoftwareMeta {
	index := make(map[string]SoftwareMeta, len(c.Software))
	for _, meta := range c.Software {
		index[meta.Name] = meta
	}
	return index
}
