// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultGeocoderURL is the public Nominatim instance used for place lookup
// when no private geocoder is configured.
const DefaultGeocoderURL = "https://nominatim.openstreetmap.org"

// Config holds all configuration values for the organizer CLI.
type Config struct {
	APIBaseURL  string `mapstructure:"api_url" yaml:"api_url"`
	GeocoderURL string `mapstructure:"geocoder_url" yaml:"geocoder_url"`
	Token       string `mapstructure:"token" yaml:"token"`
	OrganizerID string `mapstructure:"organizer_id" yaml:"organizer_id"`
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("organizer")

	// Set defaults (api_url, token, organizer_id have no default - they're required)
	v.SetDefault("geocoder_url", DefaultGeocoderURL)
	v.SetDefault("data_dir", ".organizer")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Setup ENV binding with ORGANIZER_ prefix
	v.SetEnvPrefix("ORGANIZER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better parsing
	for key, env := range map[string]string{
		"api_url":      "ORGANIZER_API_URL",
		"geocoder_url": "ORGANIZER_GEOCODER_URL",
		"token":        "ORGANIZER_TOKEN",
		"organizer_id": "ORGANIZER_ORGANIZER_ID",
		"data_dir":     "ORGANIZER_DATA_DIR",
		"log_level":    "ORGANIZER_LOG_LEVEL",
		"log_file":     "ORGANIZER_LOG_FILE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the fields every API call depends on are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api_url is not set (run 'organizer setup' or set ORGANIZER_API_URL)")
	}
	if strings.TrimSpace(c.OrganizerID) == "" {
		return fmt.Errorf("organizer_id is not set (run 'organizer setup' or set ORGANIZER_ORGANIZER_ID)")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/organizer/organizer.yml or $XDG_CONFIG_HOME/organizer/organizer.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "organizer", "organizer.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "organizer", "organizer.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./organizer.yml in the current working directory.
func ProjectPath() string {
	return "organizer.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return writeFile(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return writeFile(ProjectPath(), cfg)
}

func writeFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// 0600: the file carries the API token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
