package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = ".sonarpdf"
	DefaultConfigFile = "config.json"
)

// Config holds everything needed to talk to the SonarQube server.
// Serialised to ~/.sonarpdf/config.json; every field can also come from the
// environment (SONARQUBE_URL, SONARQUBE_TOKEN, SONARQUBE_PROJECT) or flags.
type Config struct {
	// URL is the SonarQube server base URL (e.g. http://127.0.0.1:9000).
	URL string `mapstructure:"url" json:"url"`
	// Token is a SonarQube user token with Browse permission on the project.
	Token string `mapstructure:"token" json:"token"`
	// Project is the key of the project to report on.
	Project string `mapstructure:"project" json:"project"`
}

// Load reads the config file (if present) and environment and returns a
// populated Config. configPath overrides the default file location.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	// The token may well live only in the environment.
	bindEnv(v, "url", "SONARQUBE_URL")
	bindEnv(v, "token", "SONARQUBE_TOKEN")
	bindEnv(v, "project", "SONARQUBE_PROJECT")

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// An explicitly requested file must exist and parse.
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			// Default-location config exists but is malformed.
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &cfg, nil
}

// Validate reports every missing required field at once, so the user can fix
// them in a single pass before any network call is made.
func (c *Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "server URL (--url or SONARQUBE_URL)")
	}
	if c.Token == "" {
		missing = append(missing, "access token (--token or SONARQUBE_TOKEN)")
	}
	if c.Project == "" {
		missing = append(missing, "project key (--project or SONARQUBE_PROJECT)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("configuration error: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func bindEnv(v *viper.Viper, key, env string) {
	_ = v.BindEnv(key, env)
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
