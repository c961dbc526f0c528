// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"github.com/surveykit/sp1conv/internal/sp1"

	"gopkg.in/yaml.v3"
)

// defaultMaxUpload caps uploaded file size for the web server.
const defaultMaxUpload = 32 << 20

// Meta is the survey header metadata attached to datasets imported from CSV,
// which carries no metadata of its own.
type Meta struct {
	Version    string `yaml:"version,omitempty" json:"version,omitempty"`
	Survey     string `yaml:"survey,omitempty" json:"survey,omitempty"`
	Datum      string `yaml:"datum,omitempty" json:"datum,omitempty"`
	Projection string `yaml:"projection,omitempty" json:"projection,omitempty"`
}

// Header converts the metadata into an SP1 header.
func (m Meta) Header() sp1.Header {
	return sp1.Header{
		Version:    m.Version,
		Survey:     m.Survey,
		Datum:      m.Datum,
		Projection: m.Projection,
	}
}

// Dataset is a single survey source for batch conversion.
type Dataset struct {
	Name   string `yaml:"name" json:"name"`
	Source string `yaml:"source" json:"source"`                     // local path or http(s) URL
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // "sp1" or "csv"; inferred from the extension when empty
	Meta   Meta   `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// WithDefaults fills empty dataset metadata fields from the root config.
func (d Dataset) WithDefaults(root Meta) Dataset {
	if d.Meta.Version == "" {
		d.Meta.Version = root.Version
	}
	if d.Meta.Survey == "" {
		d.Meta.Survey = root.Survey
	}
	if d.Meta.Datum == "" {
		d.Meta.Datum = root.Datum
	}
	if d.Meta.Projection == "" {
		d.Meta.Projection = root.Projection
	}
	return d
}

// Config represents the root configuration file structure.
type Config struct {
	Meta      Meta      `yaml:"meta,omitempty" json:"meta,omitempty"`
	Datasets  []Dataset `yaml:"datasets,omitempty" json:"datasets,omitempty"`
	Strict    bool      `yaml:"strict,omitempty" json:"strict,omitempty"`
	MaxUpload int64     `yaml:"max_upload,omitempty" json:"max_upload,omitempty"` // bytes
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{MaxUpload: defaultMaxUpload}
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = defaultMaxUpload
	}

	return &cfg, nil
}
