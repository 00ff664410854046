package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsAllMissingFields(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server URL")
	assert.Contains(t, err.Error(), "access token")
	assert.Contains(t, err.Error(), "project key")
}

func TestValidateSingleMissingField(t *testing.T) {
	cfg := &Config{URL: "http://localhost:9000", Project: "p"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")
	assert.NotContains(t, err.Error(), "server URL")
}

func TestValidateComplete(t *testing.T) {
	cfg := &Config{URL: "http://localhost:9000", Token: "tok", Project: "p"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"url":"http://sonar.internal:9000/","token":"file-token","project":"svc"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://sonar.internal:9000", cfg.URL, "trailing slash must be trimmed")
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "svc", cfg.Project)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"url":"http://sonar.internal:9000","project":"svc"}`), 0o600))
	t.Setenv("SONARQUBE_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "svc", cfg.Project)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.json")

	_, err := Load(path)
	require.Error(t, err, "a missing --config file must not be silently ignored")
	assert.Contains(t, err.Error(), "typo.json")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
