package liquify

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the declarative engine configuration.
//
//	aliases:
//	  shout: upcase
//	disabled:
//	  - hmac_sha1
//	grid:
//	  row_element: div
//	  cell_element: span
type Config struct {
	// Aliases maps an extra filter name to an existing filter.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Disabled lists filters removed from the table.
	Disabled []string `yaml:"disabled,omitempty"`

	// Grid overrides the paginate markup. Blank fields keep the defaults.
	Grid GridMarkup `yaml:"grid,omitempty"`
}

// LoadConfig parses a YAML configuration. Unknown keys are rejected.
// An empty document yields an empty Config.
func LoadConfig(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError(ErrMsgConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigRead, err).
			WithMetadata(MetaKeyPath, path)
	}

	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that aliases and disabled entries name something.
// Whether alias targets exist is checked when the engine is built.
func (c *Config) Validate() error {
	for alias, target := range c.Aliases {
		if alias == "" || target == "" {
			return NewConfigError(ErrMsgConfigInvalidAlias, nil).
				WithMetadata(MetaKeyAlias, alias).
				WithMetadata(MetaKeyFilter, target)
		}
	}
	for _, name := range c.Disabled {
		if name == "" {
			return NewConfigError(ErrMsgConfigEmptyName, nil)
		}
	}
	return nil
}
