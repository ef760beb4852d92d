// Package config loads the opsmcp configuration.
//
// Configuration comes from an opsmcp.yaml file (explicit --config path,
// the working directory, or ~/.opsmcp) with OPSMCP_ environment variable
// overrides. Every field has a default; a service without a base URL is
// simply not registered, so a partial config is a valid config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides (OPSMCP_WORKITEMS_TOKEN etc.).
const envPrefix = "OPSMCP"

// Service configures one wrapped platform API.
type Service struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Enabled reports whether the service is configured at all.
func (s Service) Enabled() bool {
	return s.BaseURL != ""
}

// Config is the full opsmcp configuration.
type Config struct {
	Entities  Service `mapstructure:"entities"`
	WorkItems Service `mapstructure:"workitems"`
	Repos     Service `mapstructure:"repos"`
	Telemetry Service `mapstructure:"telemetry"`
	SQLMeta   Service `mapstructure:"sqlmeta"`
	Files     Service `mapstructure:"files"`

	Cache struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"cache"`
	Audit struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"audit"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads the configuration. path may be empty, in which case the
// default search locations are used; a missing config file is not an
// error, it just means defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("opsmcp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".opsmcp"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file in the search path is fine; an explicit path
		// that cannot be read is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	for _, svc := range []string{"entities", "workitems", "repos", "telemetry", "sqlmeta", "files"} {
		v.SetDefault(svc+".base_url", "")
		v.SetDefault(svc+".token", "")
		v.SetDefault(svc+".cache_ttl", "5m")
	}
	v.SetDefault("cache.path", defaultStatePath("cache.db"))
	v.SetDefault("audit.path", defaultStatePath("audit.db"))
	v.SetDefault("log.level", "info")
}

// defaultStatePath places SQLite state under ~/.opsmcp, falling back to
// the working directory when no home is available.
func defaultStatePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".opsmcp", name)
}
