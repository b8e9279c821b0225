// Package config loads the project list the dashboard is generated for.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file, resolved against the
// working directory.
const FileName = "projects.yaml"

// Project is one configured repository. Immutable for a run.
type Project struct {
	ID   string `yaml:"id"`   // URL-safe, unique; also the cache file key
	Name string `yaml:"name"` // display name
	Repo string `yaml:"repo"` // owner/name
	Base string `yaml:"base"` // base branch merged PRs target
}

// Config holds the full configuration for a run.
type Config struct {
	Projects []Project `yaml:"projects"`
}

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ErrNoProjects is returned when the config file contains no projects.
var ErrNoProjects = errors.New("no projects configured")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Load reads and validates the configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the project list is non-empty and well-formed.
func Validate(cfg *Config) error {
	if len(cfg.Projects) == 0 {
		return ErrNoProjects
	}

	seen := make(map[string]bool, len(cfg.Projects))
	for i, p := range cfg.Projects {
		if p.ID == "" || !idPattern.MatchString(p.ID) {
			return fmt.Errorf("project %d: id %q must be non-empty and URL-safe", i, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("project %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" {
			return fmt.Errorf("project %q: name is required", p.ID)
		}
		if owner, name, ok := strings.Cut(p.Repo, "/"); !ok || owner == "" || name == "" {
			return fmt.Errorf("project %q: repo %q must be in owner/name form", p.ID, p.Repo)
		}
		if p.Base == "" {
			return fmt.Errorf("project %q: base branch is required", p.ID)
		}
	}
	return nil
}
