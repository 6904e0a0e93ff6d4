// Package config resolves where the users API lives and how the contract tests should exercise it.
//
// Sources are applied in this order, each overriding the previous one: built-in defaults, an
// optional YAML file, a .env file in the working directory, and environment variables. Command-line
// flags are applied on top of that by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL       = "http://localhost:8080/api/users"
	DefaultMissingUserID = 100
	DefaultDotEnvFile    = ".env"
)

const (
	EnvBaseURL       = "USERS_API_URL"
	EnvPageSizes     = "USERS_API_PAGE_SIZES"
	EnvMissingUserID = "USERS_API_MISSING_ID"
	EnvConfigFile    = "USERS_API_CONFIG"
)

// Config holds the settings for a test run.
type Config struct {
	// BaseURL is the users collection endpoint, e.g. http://localhost:8080/api/users.
	BaseURL string `yaml:"baseUrl"`

	// PageSizes are the values of the size query parameter that the list test tries.
	PageSizes []int `yaml:"pageSizes"`

	// MissingUserID is an id that the service has never assigned to a user.
	MissingUserID int64 `yaml:"missingUserId"`
}

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		PageSizes:     []int{10},
		MissingUserID: DefaultMissingUserID,
	}
}

// Load loads the configuration. If configFile is empty, the file named by USERS_API_CONFIG is used,
// if any. A missing .env file is not an error; a missing YAML file that was asked for is.
func Load(configFile string, dotEnvFiles ...string) (Config, error) {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{DefaultDotEnvFile}
	}
	for _, f := range dotEnvFiles {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("can't load %s: %w", f, err)
		}
	}

	cfg := Default()

	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	if configFile != "" {
		if err := cfg.loadYAML(configFile); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvPageSizes); v != "" {
		sizes, err := ParsePageSizes(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPageSizes, err)
		}
		c.PageSizes = sizes
	}
	if v := os.Getenv(EnvMissingUserID); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMissingUserID, err)
		}
		c.MissingUserID = id
	}
	return nil
}

// ParsePageSizes parses a comma-separated list such as "1,10".
func ParsePageSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("page size %q is not an integer", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// Validate checks the settings that can be checked without contacting the service.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if len(c.PageSizes) == 0 {
		return errors.New("at least one page size is required")
	}
	for _, n := range c.PageSizes {
		if n < 0 {
			return fmt.Errorf("invalid page size %d: must not be negative", n)
		}
	}
	return nil
}
