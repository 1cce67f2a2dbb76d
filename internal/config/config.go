package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	API    APIConfig    `yaml:"api"`
	Auth   AuthConfig   `yaml:"auth"`
	Format FormatConfig `yaml:"format"`
	UI     UIConfig     `yaml:"ui"`
}

// APIConfig contains backend connection settings
type APIConfig struct {
	URL           string `yaml:"url"`
	Timeout       string `yaml:"timeout"`
	HealthTimeout string `yaml:"health_timeout"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	Email string `yaml:"email"`
	Token string `yaml:"token"`
}

// FormatConfig contains output formatting settings
type FormatConfig struct {
	Default string `yaml:"default"`
	Colors  bool   `yaml:"colors"`
}

// UIConfig contains dashboard defaults shared by all entities
type UIConfig struct {
	PageSize            int `yaml:"page_size"`
	AutoSearchMinLength int `yaml:"auto_search_min_length"`
}

var (
	globalConfig *Config
	debug        bool
	outputFormat string
)

// Initialize loads the configuration from file
func Initialize(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bookadmin")
	}

	setDefaults()

	viper.SetEnvPrefix("BOOKADMIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createDefaultConfig(); err != nil {
				return fmt.Errorf("could not create default config: %w", err)
			}
		} else {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	globalConfig = &Config{}
	if err := viper.Unmarshal(globalConfig); err != nil {
		return fmt.Errorf("could not unmarshal config: %w", err)
	}

	// The BOOKADMIN_API_URL env var must win over the file value even when
	// the file sets one; viper.Unmarshal misses env-only keys.
	globalConfig.API.URL = viper.GetString("api.url")
	globalConfig.Auth.Email = viper.GetString("auth.email")
	globalConfig.Auth.Token = viper.GetString("auth.token")

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("api.url", "http://localhost:3000")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.health_timeout", "3s")
	viper.SetDefault("auth.email", "")
	viper.SetDefault("auth.token", "")
	viper.SetDefault("format.default", "table")
	viper.SetDefault("format.colors", true)
	viper.SetDefault("ui.page_size", 10)
	viper.SetDefault("ui.auto_search_min_length", 3)
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".bookadmin.yaml")

	defaultConfig := Config{
		API: APIConfig{
			URL:           "http://localhost:3000",
			Timeout:       "30s",
			HealthTimeout: "3s",
		},
		Auth: AuthConfig{},
		Format: FormatConfig{
			Default: "table",
			Colors:  true,
		},
		UI: UIConfig{
			PageSize:            10,
			AutoSearchMinLength: 3,
		},
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		globalConfig = &Config{}
	}
	return globalConfig
}

// RequestTimeout returns the configured API timeout, falling back to 30s.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// HealthCheckTimeout returns the configured health check timeout, falling
// back to 3s. The status command must answer quickly even when the backend
// is unreachable.
func (c *Config) HealthCheckTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.HealthTimeout)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

// SetDebug sets the debug mode
func SetDebug(enabled bool) {
	debug = enabled
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return debug
}

// SetOutputFormat sets the output format
func SetOutputFormat(format string) {
	outputFormat = format
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if globalConfig != nil && globalConfig.Format.Default != "" {
		return globalConfig.Format.Default
	}
	return "table"
}

// UpdateAuth updates the authentication configuration
func UpdateAuth(email, token string) error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}

	viper.Set("auth.email", email)
	viper.Set("auth.token", token)

	globalConfig.Auth.Email = email
	globalConfig.Auth.Token = token

	return viper.WriteConfig()
}

// ClearAuth clears the authentication configuration
func ClearAuth() error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}

	viper.Set("auth.email", "")
	viper.Set("auth.token", "")

	globalConfig.Auth.Email = ""
	globalConfig.Auth.Token = ""

	return viper.WriteConfig()
}
