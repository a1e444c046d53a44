package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRegistryType = "cratesio"
	DefaultRegistryURL  = "https://crates.io"
	DefaultUserAgent    = "Cargo Outdated Bot"
	DefaultFormat       = "text"
)

// Settings is the top-level configuration for cargo-outdated.
type Settings struct {
	Registry            RegistrySettings `yaml:"registry"`
	Concurrency         int              `yaml:"concurrency"`
	MatchReleaseChannel bool             `yaml:"match_release_channel"`
	Ignore              []string         `yaml:"ignore"`
	Format              string           `yaml:"format"`
}

// RegistrySettings describes the package registry to query.
type RegistrySettings struct {
	Type      string        `yaml:"type"`
	URL       string        `yaml:"url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no config file exists.
func NewDefaultSettings() *Settings {
	return &Settings{
		Registry: RegistrySettings{
			Type:      DefaultRegistryType,
			URL:       DefaultRegistryURL,
			UserAgent: DefaultUserAgent,
		},
		Concurrency: runtime.NumCPU(),
		Format:      DefaultFormat,
	}
}

// NewSettings reads a YAML settings file on top of the defaults, expanding
// environment variable references, and validates the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Registry.Type = expandEnv(settings.Registry.Type)
	settings.Registry.URL = expandEnv(settings.Registry.URL)
	settings.Registry.UserAgent = expandEnv(settings.Registry.UserAgent)
	settings.Format = expandEnv(settings.Format)
	for i, name := range settings.Ignore {
		settings.Ignore[i] = expandEnv(name)
	}

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{".", ".config"}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".cargo-outdated.yaml",
		".cargo-outdated.yml",
		"cargo-outdated.yaml",
		"cargo-outdated.yml",
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

// IsIgnored reports whether the crate is on the ignore list.
func (s *Settings) IsIgnored(name string) bool {
	return slices.Contains(s.Ignore, name)
}

// Workers returns the effective worker pool size.
func (s *Settings) Workers() int {
	if s.Concurrency <= 0 {
		return runtime.NumCPU()
	}
	return s.Concurrency
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", s.Concurrency)
	}
	if s.Registry.Type == "" {
		return errors.New("registry.type is required")
	}
	if s.Registry.URL == "" {
		return errors.New("registry.url is required")
	}
	if s.Registry.UserAgent == "" {
		return errors.New("registry.user_agent is required")
	}
	if s.Registry.Timeout < 0 {
		return errors.New("registry.timeout must not be negative")
	}
	if s.Format == "" {
		return errors.New("format is required")
	}
	return nil
}

func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
