package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig controls where Load looks for configuration.
type LoaderConfig struct {
	// ConfigFile is an explicit YAML config file path. When empty, Load
	// searches the standard locations.
	ConfigFile string
	// EnvFile is an explicit .env file path. When empty, Load searches
	// the standard locations.
	EnvFile string
}

// configSearchPaths are tried in order when no explicit file is given.
var configSearchPaths = []string{
	"./geohttp.yml",
	"./config/geohttp.yml",
}

// envSearchPaths are tried in order when no explicit .env file is given.
var envSearchPaths = []string{
	".env.geohttp",
	".env",
}

// Load reads settings from an optional YAML file, an optional .env file,
// and GEOHTTP_* environment variables, applies defaults and validates.
func Load(opts LoaderConfig) (*Settings, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("GEOHTTP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so AutomaticEnv can see env-only settings.
	v.SetDefault("adapter", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("user_agent", "")
	v.SetDefault("proxies", nil)
	v.SetDefault("tls.ca_file", "")
	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")
	v.SetDefault("tls.server_name", "")
	v.SetDefault("tls.skip_verify", false)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output", "")

	if file := resolveFile(opts.ConfigFile, configSearchPaths); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadEnvFile loads a .env file when one exists. A missing explicit file
// is an error; missing search-path files are not.
func loadEnvFile(explicit string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("config: load env file %s: %w", explicit, err)
		}
		return nil
	}
	for _, path := range envSearchPaths {
		if fileExists(path) {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("config: load env file %s: %w", path, err)
			}
			return nil
		}
	}
	return nil
}

func resolveFile(explicit string, search []string) string {
	if explicit != "" {
		return explicit
	}
	for _, path := range search {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
