package output

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// Default output file names.
const (
	// DefaultAllowedFile receives the filtered repositories document.
	DefaultAllowedFile = "allowed_repos.yaml"

	// DefaultAllFile receives the unfiltered repositories document.
	DefaultAllFile = "all_repos.yaml"

	// DefaultBySoftwareFile receives the grouped document. There is no
	// flag overriding this path.
	DefaultBySoftwareFile = "allowed_repos_by_software.yaml"
)

// WriteFile serializes a document to a YAML file.
//
// Parameters:
//   - path: Destination file path
//   - doc: The document to serialize
//
// Returns:
//   - error: A marshal or write error, or nil on success
func WriteFile(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	verbose.Infof("wrote %s (%d entries)", path, doc.Len())
	return nil
}
