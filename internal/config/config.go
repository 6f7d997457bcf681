// Package config loads and validates the pkgship configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential indicates that the registry API key environment
// variable is absent or empty.
var ErrMissingCredential = errors.New("registry credential is not set")

// Config represents the application configuration.
type Config struct {
	Project       string         `yaml:"project"`
	Configuration string         `yaml:"configuration"`
	Package       PackageConfig  `yaml:"package"`
	Registry      RegistryConfig `yaml:"registry"`
	Release       ReleaseConfig  `yaml:"release"`
	History       HistoryConfig  `yaml:"history"`
}

// PackageConfig describes where the pack step drops its artifacts.
type PackageConfig struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension,omitempty"`
}

// RegistryConfig describes the registry the push step publishes to.
type RegistryConfig struct {
	Source string `yaml:"source,omitempty"`
	KeyEnv string `yaml:"key_env,omitempty"` // env var holding the API key
}

// ReleaseConfig holds release gating options.
type ReleaseConfig struct {
	RequireClean bool   `yaml:"require_clean,omitempty"`
	Changelog    string `yaml:"changelog,omitempty"`
}

// HistoryConfig configures the publish ledger. An empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists. Missing files are fine; publishing from CI
	// usually injects the credential directly.
	if loaded, err := loadEnvFile(); err == nil {
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", loaded)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Project == "" {
		c.Project = "src/"
	}
	if c.Configuration == "" {
		c.Configuration = "Release"
	}
	if c.Package.Extension == "" {
		c.Package.Extension = ".nupkg"
	}
	if c.Registry.Source == "" {
		c.Registry.Source = "https://api.nuget.org/v3/index.json"
	}
	if c.Registry.KeyEnv == "" {
		c.Registry.KeyEnv = "NUGET_API_KEY"
	}
	if c.Release.Changelog == "" {
		c.Release.Changelog = "CHANGELOG.md"
	}
}

func (c *Config) validate() error {
	if c.Package.Directory == "" {
		return fmt.Errorf("invalid config: package.directory is required")
	}
	if !strings.HasPrefix(c.Package.Extension, ".") {
		return fmt.Errorf("invalid config: package.extension must start with '.', got %q", c.Package.Extension)
	}
	return nil
}

// ResolveCredential reads the registry API key from the process environment.
func (c *Config) ResolveCredential() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.Registry.KeyEnv))
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingCredential, c.Registry.KeyEnv)
	}
	return key, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Project:       "src/",
		Configuration: "Release",
		Package: PackageConfig{
			Directory: "src/MyLibrary/bin/Release",
			Extension: ".nupkg",
		},
		Registry: RegistryConfig{
			Source: "https://api.nuget.org/v3/index.json",
			KeyEnv: "NUGET_API_KEY",
		},
		Release: ReleaseConfig{
			RequireClean: true,
			Changelog:    "CHANGELOG.md",
		},
		History: HistoryConfig{
			Path: ".pkgship/history.db",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := "# pkgship configuration\n" +
		"# The registry API key is read from the environment variable named in\n" +
		"# registry.key_env; a local .env file is loaded first if present.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
