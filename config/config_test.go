package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure variables from the developer's environment don't leak into a test. t.Setenv
// restores the previous values when the test ends.
func clearEnv(t *testing.T) {
	for _, name := range []string{EnvBaseURL, EnvPageSizes, EnvMissingUserID, EnvConfigFile} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:8080/api/users", cfg.BaseURL)
	assert.Equal(t, []int{10}, cfg.PageSizes)
	assert.Equal(t, int64(100), cfg.MissingUserID)
	assert.NoError(t, cfg.Validate())
}

func TestYAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
baseUrl: http://users.example:9000/api/users
pageSizes: [1, 5]
missingUserId: 999999
`)

	cfg, err := Load(path, noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "http://users.example:9000/api/users", cfg.BaseURL)
	assert.Equal(t, []int{1, 5}, cfg.PageSizes)
	assert.Equal(t, int64(999999), cfg.MissingUserID)
}

func TestYAMLFileFromEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "baseUrl: http://from-file/api/users\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("", noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "http://from-file/api/users", cfg.BaseURL)
}

func TestPartialYAMLFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "missingUserId: 7\n")

	cfg, err := Load(path, noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, []int{10}, cfg.PageSizes)
	assert.Equal(t, int64(7), cfg.MissingUserID)
}

func TestMissingYAMLFileIsAnError(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noDotEnv(t))
	assert.Error(t, err)
}

func TestMalformedYAMLFileIsAnError(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "pageSizes: ten\n")
	_, err := Load(path, noDotEnv(t))
	assert.Error(t, err)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "baseUrl: http://from-file/api/users\npageSizes: [3]\n")
	t.Setenv(EnvBaseURL, "http://from-env/api/users")
	t.Setenv(EnvPageSizes, "1, 20")
	t.Setenv(EnvMissingUserID, "123")

	cfg, err := Load(path, noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api/users", cfg.BaseURL)
	assert.Equal(t, []int{1, 20}, cfg.PageSizes)
	assert.Equal(t, int64(123), cfg.MissingUserID)
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	dotEnv := writeFile(t, ".env", EnvBaseURL+"=http://from-dotenv/api/users\n")
	t.Cleanup(func() { _ = os.Unsetenv(EnvBaseURL) })

	cfg, err := Load("", dotEnv)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv/api/users", cfg.BaseURL)
}

func TestDotEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dotEnv := writeFile(t, ".env", EnvBaseURL+"=http://from-dotenv/api/users\n")
	t.Setenv(EnvBaseURL, "http://from-env/api/users")

	cfg, err := Load("", dotEnv)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api/users", cfg.BaseURL)
}

func TestInvalidEnvironmentValues(t *testing.T) {
	for name, value := range map[string]string{
		EnvPageSizes:     "ten",
		EnvMissingUserID: "abc",
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(name, value)
			_, err := Load("", noDotEnv(t))
			assert.Error(t, err)
		})
	}
}

func TestParsePageSizes(t *testing.T) {
	sizes, err := ParsePageSizes(" 1,10 ,,20")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 10, 20}, sizes)

	_, err = ParsePageSizes("1,x")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	assert.NoError(t, valid.Validate())

	for name, modify := range map[string]func(*Config){
		"relative URL":       func(c *Config) { c.BaseURL = "/api/users" },
		"unsupported scheme": func(c *Config) { c.BaseURL = "ftp://host/api/users" },
		"no page sizes":      func(c *Config) { c.PageSizes = nil },
		"negative page size": func(c *Config) { c.PageSizes = []int{10, -1} },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
