package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Tracker kinds.
const (
	TrackerGitLab = "gitlab"
	TrackerGitHub = "github"
)

// Policies applied when creating a review request fails.
const (
	OnFailureHalt     = "halt"
	OnFailureContinue = "continue"
)

// Config represents the dashreview configuration.
type Config struct {
	Tracker         TrackerConfig `json:"tracker"`
	Probe           ProbeConfig   `json:"probe"`
	Cache           CacheConfig   `json:"cache"`
	OnCreateFailure string        `json:"onCreateFailure"`
	Format          string        `json:"format"`
	Project         ProjectConfig `json:"project,omitempty"`
}

// TrackerConfig selects the issue tracker and the repository review requests
// are filed in.
type TrackerConfig struct {
	Kind       string `json:"kind"`
	Host       string `json:"host"`
	Token      string `json:"token,omitempty"`
	Repository string `json:"repository"`
	Label      string `json:"label"`
}

// ProbeConfig controls source-availability checks.
type ProbeConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds"`
}

// CacheConfig controls caching of probe results.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// ProjectConfig names the project whose content is being reviewed. It is
// printed at the top of the report when set.
type ProjectConfig struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Tracker: TrackerConfig{
			Kind:       TrackerGitLab,
			Host:       "https://gitlab.eclipse.org",
			Repository: "eclipsefdn/iplab/iplab",
			Label:      "Review Needed",
		},
		Probe: ProbeConfig{
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 30 * 24 * 60 * 60,
		},
		OnCreateFailure: OnFailureHalt,
		Format:          "text",
	}
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	switch c.Tracker.Kind {
	case TrackerGitLab, TrackerGitHub:
	default:
		return fmt.Errorf("unknown tracker kind: %s", c.Tracker.Kind)
	}
	if strings.TrimSpace(c.Tracker.Host) == "" {
		return fmt.Errorf("tracker host must not be empty")
	}
	if strings.Trim(c.Tracker.Repository, "/ ") == "" {
		return fmt.Errorf("tracker repository must not be empty")
	}
	if c.Tracker.Kind == TrackerGitHub && strings.Count(strings.Trim(c.Tracker.Repository, "/"), "/") != 1 {
		return fmt.Errorf("github repository must be owner/name, got %q", c.Tracker.Repository)
	}
	switch c.OnCreateFailure {
	case OnFailureHalt, OnFailureContinue:
	default:
		return fmt.Errorf("unknown onCreateFailure policy: %s", c.OnCreateFailure)
	}
	switch c.Format {
	case "text", "markdown", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for dashreview.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dashreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "dashreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "dashreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "dashreview"), nil
	default:
		return filepath.Join(home, ".config", "dashreview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileConfig is Config as read from disk. The cache flag is a pointer so a
// file that omits it keeps the default.
type fileConfig struct {
	Config
	Cache fileCache `json:"cache"`
}

type fileCache struct {
	Enabled    *bool  `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// readFile parses the config file. It returns nil when the file does not exist.
func readFile() (*fileConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &fc, nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
// A file without cache.enabled loads with the cache enabled.
func LoadFile() (Config, error) {
	fc, err := readFile()
	if err != nil || fc == nil {
		return Config{}, err
	}
	cfg := fc.Config
	cfg.Cache = CacheConfig{Enabled: true, Dir: fc.Cache.Dir, TTLSeconds: fc.Cache.TTLSeconds}
	if fc.Cache.Enabled != nil {
		cfg.Cache.Enabled = *fc.Cache.Enabled
	}
	return cfg, nil
}

// Save writes the config to the config file. The file may hold a token, so it
// is only readable by the owner.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadDotEnv loads variables from path (".env" when empty) into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fc, err := readFile()
	if err != nil {
		return Config{}, err
	}
	if fc != nil {
		mergeFile(&cfg, *fc)
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Tracker.Kind != "" {
		dst.Tracker.Kind = src.Tracker.Kind
	}
	if src.Tracker.Host != "" {
		dst.Tracker.Host = src.Tracker.Host
	}
	if src.Tracker.Token != "" {
		dst.Tracker.Token = src.Tracker.Token
	}
	if src.Tracker.Repository != "" {
		dst.Tracker.Repository = src.Tracker.Repository
	}
	if src.Tracker.Label != "" {
		dst.Tracker.Label = src.Tracker.Label
	}
	if src.Probe.TimeoutSeconds > 0 {
		dst.Probe.TimeoutSeconds = src.Probe.TimeoutSeconds
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = *src.Cache.Enabled
	}
	if src.OnCreateFailure != "" {
		dst.OnCreateFailure = src.OnCreateFailure
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Project.Name != "" {
		dst.Project.Name = src.Project.Name
	}
	if src.Project.URL != "" {
		dst.Project.URL = src.Project.URL
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("DASH_TRACKER"); v != "" {
		cfg.Tracker.Kind = v
	}
	if v := os.Getenv("DASH_REPOSITORY_HOST"); v != "" {
		cfg.Tracker.Host = v
	}
	if v := os.Getenv("DASH_TOKEN"); v != "" {
		cfg.Tracker.Token = v
	}
	if v := os.Getenv("DASH_REPOSITORY_PATH"); v != "" {
		cfg.Tracker.Repository = v
	}
	if v := os.Getenv("DASH_REVIEW_LABEL"); v != "" {
		cfg.Tracker.Label = v
	}
	if v := os.Getenv("DASH_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("DASH_ON_CREATE_FAILURE"); v != "" {
		cfg.OnCreateFailure = v
	}
	if v := os.Getenv("DASH_PROBE_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DASH_PROBE_TIMEOUT must be an integer: %w", err)
		}
		cfg.Probe.TimeoutSeconds = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "tracker":
		cfg.Tracker.Kind = value
	case "host":
		cfg.Tracker.Host = value
	case "token":
		cfg.Tracker.Token = value
	case "repository":
		cfg.Tracker.Repository = value
	case "label":
		cfg.Tracker.Label = value
	case "probeTimeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("probeTimeout must be an integer: %w", err)
		}
		cfg.Probe.TimeoutSeconds = n
	case "cacheEnabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cacheEnabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cacheDir":
		cfg.Cache.Dir = value
	case "cacheTTL":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cacheTTL must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "onCreateFailure":
		cfg.OnCreateFailure = value
	case "format":
		cfg.Format = value
	case "projectName":
		cfg.Project.Name = value
	case "projectURL":
		cfg.Project.URL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
