package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/hubfilter/pkg/errors"
	"github.com/ajxudir/hubfilter/pkg/verbose"
)

// LoadConfig loads and validates the configuration from the given path.
//
// It performs the following operations:
//   - Step 1: Reads the config file from disk
//   - Step 2: Unmarshals the YAML document, parsing each rule into its variant
//   - Step 3: Validates the document invariants (repositories present,
//     namespaces and software names non-empty)
//
// All failures are config errors: they surface before any network activity
// and map to the config exit code.
//
// Parameters:
//   - path: path to the YAML config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: a *errors.ConfigError describing the problem, or nil
func LoadConfig(path string) (*Config, error) {
	verbose.Infof("loading config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Message: "reading config file", Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if cfgErr, ok := errors.IsConfigError(err); ok {
			return nil, cfgErr
		}
		return nil, &errors.ConfigError{Message: "parsing config file", Err: err}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	verbose.Infof("config loaded: %d repository entries, %d software entries", len(cfg.Repositories), len(cfg.Software))
	return &cfg, nil
}

// validate checks the document invariants of a parsed config.
//
// Parameters:
//   - cfg: The parsed configuration
//
// Returns:
//   - error: a *errors.ConfigError for the first violation, or nil
func validate(cfg *Config) error {
	if len(cfg.Repositories) == 0 {
		return errors.NewConfigError("repositories", "section is required and must not be empty")
	}

	for i, rc := range cfg.Repositories {
		if rc.Namespace == "" {
			return errors.NewConfigError("repositories", "entry %d is missing a namespace", i)
		}
	}

	for i, meta := range cfg.Software {
		if meta.Name == "" {
			return errors.NewConfigError("software", "entry %d is missing a name", i)
		}
	}

	return nil
}
