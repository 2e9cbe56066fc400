// Package config resolves jit's Jira connection settings once at start-up.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielolaszy/jit/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultSprintField is the custom field Jira Cloud uses for sprints.
const DefaultSprintField = "customfield_10020"

// Config holds Jira connection parameters.
type Config struct {
	BaseURL             string `yaml:"base_url"`
	UserEmail           string `yaml:"user_email"`
	APIToken            string `yaml:"api_token"`
	PersonalAccessToken string `yaml:"personal_access_token,omitempty"`
	SprintField         string `yaml:"sprint_field,omitempty"`
}

type setting struct {
	key string
	env string
}

var settings = []setting{
	{key: "base_url", env: "JIRA_BASE_URL"},
	{key: "user_email", env: "JIRA_USER_EMAIL"},
	{key: "api_token", env: "JIRA_API_TOKEN"},
	{key: "personal_access_token", env: "JIRA_PAT"},
	{key: "sprint_field", env: "JIRA_SPRINT_FIELD"},
}

type source struct {
	path       string
	configType string
	explicit   bool
}

// Dir returns jit's configuration directory under homeDir.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".config", "jit")
}

// DefaultPath returns the YAML file written by `jit config`.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(Dir(home), "config.yaml")
}

// Load resolves configuration from the environment and configuration files.
// Environment variables always win. Missing values are filled from envFile
// alone when it exists; otherwise from ./.env, ~/.config/jit/.env and
// ~/.config/jit/config.yaml, in that order. Only envFile must parse; a
// discovered file that does not is skipped. The result is not validated.
func Load(envFile string) (*Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logging.Debug("home directory not available", "error", err)
		homeDir = ""
	}
	return load(envFile, workDir, homeDir)
}

func load(envFile, workDir, homeDir string) (*Config, error) {
	v := viper.New()
	for _, s := range settings {
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", s.env, err)
		}
	}

	for _, src := range sources(envFile, workDir, homeDir) {
		values, err := readSource(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if src.explicit {
				return nil, err
			}
			logging.Warn("skipping unreadable configuration file", "path", src.path, "error", err)
			continue
		}

		logging.Debug("reading configuration file", "path", src.path)
		for _, s := range settings {
			if v.GetString(s.key) != "" {
				continue
			}
			if value := values[s.key]; value != "" {
				v.Set(s.key, value)
			}
		}
	}

	cfg := &Config{
		BaseURL:             strings.TrimRight(v.GetString("base_url"), "/"),
		UserEmail:           v.GetString("user_email"),
		APIToken:            v.GetString("api_token"),
		PersonalAccessToken: v.GetString("personal_access_token"),
		SprintField:         v.GetString("sprint_field"),
	}
	if cfg.SprintField == "" {
		cfg.SprintField = DefaultSprintField
	}

	logging.Debug("configuration resolved",
		"base_url", cfg.BaseURL,
		"user_email", cfg.UserEmail,
		"api_token", logging.MaskSensitive(cfg.APIToken),
		"personal_access_token", logging.MaskSensitive(cfg.PersonalAccessToken),
		"sprint_field", cfg.SprintField)

	return cfg, nil
}

func sources(envFile, workDir, homeDir string) []source {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			return []source{{path: envFile, configType: "env", explicit: true}}
		}
		logging.Warn("specified .env file not found", "path", envFile)
	}

	list := []source{{path: filepath.Join(workDir, ".env"), configType: "env"}}
	if homeDir != "" {
		list = append(list,
			source{path: filepath.Join(Dir(homeDir), ".env"), configType: "env"},
			source{path: filepath.Join(Dir(homeDir), "config.yaml"), configType: "yaml"},
		)
	}
	return list
}

// readSource returns the file's values keyed by setting key.
func readSource(src source) (map[string]string, error) {
	if _, err := os.Stat(src.path); err != nil {
		return nil, err
	}

	fv := viper.New()
	fv.SetConfigFile(src.path)
	fv.SetConfigType(src.configType)
	if err := fv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", src.path, err)
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		name := s.key
		if src.configType == "env" {
			name = strings.ToLower(s.env)
		}
		values[s.key] = fv.GetString(name)
	}
	return values, nil
}

// UsesBearerAuth reports whether requests authenticate with a personal access
// token instead of email and API token.
func (c *Config) UsesBearerAuth() bool {
	return c.PersonalAccessToken != ""
}

// Validate ensures all required values are present, reporting every missing
// variable at once.
func (c *Config) Validate() error {
	var missingVars []string

	if c.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_BASE_URL")
	}
	if !c.UsesBearerAuth() {
		if c.UserEmail == "" {
			missingVars = append(missingVars, "JIRA_USER_EMAIL")
		}
		if c.APIToken == "" {
			missingVars = append(missingVars, "JIRA_API_TOKEN")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required configuration: %s (set them in a .env file or as environment variables)",
			strings.Join(missingVars, ", "))
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("JIRA_BASE_URL must be an http(s) URL, got %q", c.BaseURL)
	}

	return nil
}

// EnsureDir creates jit's configuration directory under homeDir. It reports
// whether the directory had to be created.
func EnsureDir(homeDir string) (bool, error) {
	dir := Dir(homeDir)
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	return true, nil
}

// Save writes cfg as YAML to path, or to DefaultPath when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
