package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitfleet/domain"
)

const (
	// DefaultMax is the number of repositories fetched per provider when unset.
	DefaultMax = 20

	hclExtension = ".hcl"
)

// Defaults holds the per-type fallbacks for the instance URL and the token variable.
type Defaults struct {
	URL    string
	EnvVar string
}

//nolint:gochecknoglobals // read-only lookup table
var typeDefaults = map[string]Defaults{
	"gitlab":      {URL: "https://gitlab.com", EnvVar: "SELF_GITLAB_TOKEN"},
	"github":      {URL: "https://api.github.com", EnvVar: "GITHUB_TOKEN"},
	"azuredevops": {URL: "https://dev.azure.com", EnvVar: "AZURE_DEVOPS_TOKEN"},
}

// Config is the top-level configuration for gitfleet.
type Config struct {
	Providers []ProviderConfig `yaml:"providers" hcl:"provider,block"`
}

// ProviderConfig describes a single namespace on a single forge.
type ProviderConfig struct {
	Type     string `yaml:"type"                hcl:"type,label"`          // "gitlab", "github", "azuredevops"
	Name     string `yaml:"name"                hcl:"name"`                // Group, user or organization
	URL      string `yaml:"url,omitempty"       hcl:"url,optional"`        // Forge instance root
	Path     string `yaml:"path"                hcl:"path"`                // Local directory prefix
	EnvVar   string `yaml:"env_var,omitempty"   hcl:"env_var,optional"`    // Variable holding the token
	Max      *int   `yaml:"max,omitempty"       hcl:"max,optional"`        // Cap on returned repositories
	UseSSH   *bool  `yaml:"use_ssh,omitempty"   hcl:"use_ssh,optional"`    // SSH (default) or HTTP clone URLs
	MaxPages int    `yaml:"max_pages,omitempty" hcl:"max_pages,optional"` // 0 means no page ceiling
}

// DefaultsFor returns the fallbacks for a provider type.
func DefaultsFor(providerType string) (Defaults, bool) {
	d, ok := typeDefaults[providerType]
	return d, ok
}

// KnownTypes returns the provider types the configuration understands.
func KnownTypes() []string {
	return []string{"gitlab", "github", "azuredevops"}
}

// MaxResults returns the configured cap, or DefaultMax when unset. A negative
// cap, which Validate rejects but a config built in code may carry, counts as 0.
func (p ProviderConfig) MaxResults() int {
	if p.Max == nil {
		return DefaultMax
	}
	return max(*p.Max, 0)
}

// SSH reports whether SSH clone URLs should be used. Defaults to true.
func (p ProviderConfig) SSH() bool {
	if p.UseSSH == nil {
		return true
	}
	return *p.UseSSH
}

// WithDefaults returns a copy with the type defaults filled in.
func (p ProviderConfig) WithDefaults() ProviderConfig {
	d, ok := typeDefaults[p.Type]
	if !ok {
		return p
	}
	if p.URL == "" {
		p.URL = d.URL
	}
	if p.EnvVar == "" {
		p.EnvVar = d.EnvVar
	}
	p.URL = strings.TrimSuffix(p.URL, "/")
	return p
}

// Load reads, parses and validates a configuration file.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if validateErr := Validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	logger.Debugf("Loaded %d provider(s) from %q", len(cfg.Providers), path)
	return cfg, nil
}

// Read parses a configuration file and applies the type defaults without
// validating it. Files ending in ".hcl" are decoded as HCL, everything else as YAML.
func Read(path string) (*Config, error) {
	var cfg Config

	if strings.EqualFold(filepath.Ext(path), hclExtension) {
		if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	for i := range cfg.Providers {
		cfg.Providers[i] = cfg.Providers[i].WithDefaults()
	}
	return &cfg, nil
}

// Save writes the configuration as YAML. HCL files are never rewritten.
func Save(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), hclExtension) {
		return fmt.Errorf("refusing to rewrite HCL config %q, edit it by hand", path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write config file %q: %w", path, writeErr)
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitfleet.yaml",
		".gitfleet.yml",
		".gitfleet.hcl",
		"gitfleet.yaml",
		"gitfleet.yml",
		"gitfleet.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks for required configuration values.
func Validate(cfg *Config) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("%w: at least one provider must be configured", domain.ErrInvalidConfiguration)
	}

	for i, p := range cfg.Providers {
		if p.Type == "" {
			return fmt.Errorf("%w: providers[%d].type is required", domain.ErrInvalidConfiguration, i)
		}
		if _, ok := typeDefaults[p.Type]; !ok {
			return fmt.Errorf(
				"%w: providers[%d].type %q is not one of %s",
				domain.ErrInvalidConfiguration, i, p.Type, strings.Join(KnownTypes(), ", "),
			)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: providers[%d].name is required", domain.ErrInvalidConfiguration, i)
		}
		if p.Path == "" {
			return fmt.Errorf("%w: providers[%d].path is required", domain.ErrInvalidConfiguration, i)
		}
		if p.Max != nil && *p.Max < 0 {
			return fmt.Errorf("%w: providers[%d].max must not be negative", domain.ErrInvalidConfiguration, i)
		}
		if p.MaxPages < 0 {
			return fmt.Errorf(
				"%w: providers[%d].max_pages must not be negative",
				domain.ErrInvalidConfiguration, i,
			)
		}
	}

	return nil
}
