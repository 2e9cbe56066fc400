package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults; viper treats empty values as
// unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range settings {
		t.Setenv(s.env, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net/")
	t.Setenv("JIRA_USER_EMAIL", "dev@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret-token")

	cfg, err := load("", t.TempDir(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://example.atlassian.net", cfg.BaseURL)
	assert.Equal(t, "dev@example.com", cfg.UserEmail)
	assert.Equal(t, "secret-token", cfg.APIToken)
	assert.Equal(t, DefaultSprintField, cfg.SprintField)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	homeDir := t.TempDir()

	writeFile(t, filepath.Join(workDir, ".env"), "JIRA_BASE_URL=https://work.example.com\n")
	writeFile(t, filepath.Join(Dir(homeDir), ".env"),
		"JIRA_BASE_URL=https://home.example.com\nJIRA_USER_EMAIL=home@example.com\n")
	writeFile(t, filepath.Join(Dir(homeDir), "config.yaml"),
		"base_url: https://yaml.example.com\nuser_email: yaml@example.com\napi_token: yaml-token\nsprint_field: customfield_10007\n")

	t.Setenv("JIRA_USER_EMAIL", "env@example.com")

	cfg, err := load("", workDir, homeDir)
	require.NoError(t, err)

	assert.Equal(t, "https://work.example.com", cfg.BaseURL, "working directory .env beats home files")
	assert.Equal(t, "env@example.com", cfg.UserEmail, "environment beats every file")
	assert.Equal(t, "yaml-token", cfg.APIToken, "yaml fills remaining gaps")
	assert.Equal(t, "customfield_10007", cfg.SprintField)
}

func TestLoadExplicitEnvFileIsExclusive(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	homeDir := t.TempDir()

	envFile := filepath.Join(t.TempDir(), "custom.env")
	writeFile(t, envFile, "JIRA_BASE_URL=https://custom.example.com\nJIRA_PAT=pat-token\n")
	writeFile(t, filepath.Join(workDir, ".env"), "JIRA_USER_EMAIL=work@example.com\n")

	cfg, err := load(envFile, workDir, homeDir)
	require.NoError(t, err)

	assert.Equal(t, "https://custom.example.com", cfg.BaseURL)
	assert.Equal(t, "pat-token", cfg.PersonalAccessToken)
	assert.Empty(t, cfg.UserEmail)
	assert.True(t, cfg.UsesBearerAuth())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingEnvFileFallsBack(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ".env"), "JIRA_BASE_URL=https://work.example.com\n")

	cfg, err := load(filepath.Join(workDir, "missing.env"), workDir, "")
	require.NoError(t, err)
	assert.Equal(t, "https://work.example.com", cfg.BaseURL)
}

func TestLoadSkipsMalformedDiscoveredFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_BASE_URL", "https://env.example.com")
	t.Setenv("JIRA_USER_EMAIL", "env@example.com")
	t.Setenv("JIRA_API_TOKEN", "env-token")

	workDir := t.TempDir()
	homeDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ".env"), "DATABASE_URL=x\nsome stray line\n")
	writeFile(t, filepath.Join(Dir(homeDir), "config.yaml"), "base_url: [unterminated\n")

	cfg, err := load("", workDir, homeDir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "env@example.com", cfg.UserEmail)
	assert.Equal(t, "env-token", cfg.APIToken)
}

func TestLoadMalformedFileDoesNotHideLaterSources(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	homeDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ".env"), "some stray line\n")
	writeFile(t, filepath.Join(Dir(homeDir), "config.yaml"), "base_url: https://yaml.example.com\n")

	cfg, err := load("", workDir, homeDir)
	require.NoError(t, err)
	assert.Equal(t, "https://yaml.example.com", cfg.BaseURL)
}

func TestLoadMalformedExplicitEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "custom.env")
	writeFile(t, envFile, "some stray line\n")

	_, err := load(envFile, t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errContains []string
	}{
		{
			name:   "Basic auth",
			config: Config{BaseURL: "https://jira.example.com", UserEmail: "a@b.c", APIToken: "t"},
		},
		{
			name:   "Personal access token",
			config: Config{BaseURL: "https://jira.example.com", PersonalAccessToken: "pat"},
		},
		{
			name:        "Nothing set",
			config:      Config{},
			wantErr:     true,
			errContains: []string{"JIRA_BASE_URL", "JIRA_USER_EMAIL", "JIRA_API_TOKEN"},
		},
		{
			name:        "Missing token",
			config:      Config{BaseURL: "https://jira.example.com", UserEmail: "a@b.c"},
			wantErr:     true,
			errContains: []string{"JIRA_API_TOKEN"},
		},
		{
			name:        "Not a URL",
			config:      Config{BaseURL: "jira.example.com", PersonalAccessToken: "pat"},
			wantErr:     true,
			errContains: []string{"http(s) URL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, s := range tt.errContains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	homeDir := t.TempDir()
	path := filepath.Join(Dir(homeDir), "config.yaml")

	saved := &Config{
		BaseURL:   "https://saved.example.com",
		UserEmail: "saved@example.com",
		APIToken:  "saved-token",
	}
	require.NoError(t, Save(saved, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := load("", t.TempDir(), homeDir)
	require.NoError(t, err)
	assert.Equal(t, saved.BaseURL, cfg.BaseURL)
	assert.Equal(t, saved.UserEmail, cfg.UserEmail)
	assert.Equal(t, saved.APIToken, cfg.APIToken)
}

func TestEnsureDir(t *testing.T) {
	homeDir := t.TempDir()

	created, err := EnsureDir(homeDir)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureDir(homeDir)
	require.NoError(t, err)
	assert.False(t, created)
}
