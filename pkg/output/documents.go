// Package output builds and serializes the three YAML output documents and
// renders the run summary table. Documents are insertion-ordered maps: the
// writer never re-sorts keys, so the orderings computed by the aggregation
// stage survive serialization byte for byte.
package output

import (
	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/hubfilter/pkg/inventory"
	"github.com/ajxudir/hubfilter/pkg/software"
)

// Document is an insertion-order-preserving mapping serialized as YAML.
//
// Values may be strings, string slices, or nested *Document values.
type Document struct {
	m *orderedmap.OrderedMap
}

// NewDocument creates an empty document.
//
// Returns:
//   - *Document: A new empty document
func NewDocument() *Document {
	return &Document{m: orderedmap.New()}
}

// Set stores a value under a key, preserving first-insertion position.
//
// Parameters:
//   - key: The mapping key
//   - value: The value to store
//
// Returns:
//   - None
func (d *Document) Set(key string, value interface{}) {
	d.m.Set(key, value)
}

// Get returns the value stored under a key.
//
// Parameters:
//   - key: The mapping key
//
// Returns:
//   - interface{}: The stored value, or nil
//   - bool: true if the key exists
func (d *Document) Get(key string) (interface{}, bool) {
	return d.m.Get(key)
}

// Keys returns the document keys in insertion order.
//
// Returns:
//   - []string: The keys, in insertion order
func (d *Document) Keys() []string {
	return d.m.Keys()
}

// Len returns the number of keys in the document.
//
// Returns:
//   - int: The key count
func (d *Document) Len() int {
	return len(d.m.Keys())
}

// MarshalYAML serializes the document as a mapping node in insertion order.
//
// Returns:
//   - interface{}: A *yaml.Node mapping preserving key order
//   - error: An encode error for an unsupported value, or nil
func (d *Document) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range d.m.Keys() {
		value, _ := d.m.Get(key)

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// AllReposDocument builds the unfiltered all-repositories document:
// namespace → repository-name list, in config order.
//
// Parameters:
//   - inv: The inventory pass result
//
// Returns:
//   - *Document: The all_repos document
func AllReposDocument(inv *inventory.Result) *Document {
	doc := NewDocument()
	for _, ns := range inv.AllRepos {
		repos := ns.Repos
		if repos == nil {
			repos = []string{}
		}
		doc.Set(ns.Namespace, repos)
	}
	return doc
}

// AllowedReposDocument builds the filtered repositories document:
// repository key → sorted tag-name list, in global display order.
//
// Parameters:
//   - agg: The aggregated result
//
// Returns:
//   - *Document: The allowed_repos document
func AllowedReposDocument(agg *software.Result) *Document {
	doc := NewDocument()
	for _, entry := range agg.Allowed {
		tags := entry.Tags
		if tags == nil {
			tags = []string{}
		}
		doc.Set(entry.Key, tags)
	}
	return doc
}

// BySoftwareDocument builds the grouped document: software label →
// {description, repos}, with labels in sort order and repositories in
// construction order.
//
// Parameters:
//   - agg: The aggregated result
//
// Returns:
//   - *Document: The allowed_repos_by_software document
func BySoftwareDocument(agg *software.Result) *Document {
	doc := NewDocument()
	for _, group := range agg.Groups {
		repos := NewDocument()
		for _, repo := range group.Repos {
			tags := repo.Tags
			if tags == nil {
				tags = []string{}
			}
			repos.Set(repo.Key, tags)
		}

		entry := NewDocument()
		entry.Set("description", group.Description)
		entry.Set("repos", repos)
		doc.Set(group.Name, entry)
	}
	return doc
}
