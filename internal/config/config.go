package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Harvest configuration
	Harvest HarvestConfig `mapstructure:"harvest"`

	// HTTP client configuration
	HTTP HTTPConfig `mapstructure:"http"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// HarvestConfig holds the crawl targets and link selection rules
type HarvestConfig struct {
	// IndexURL is the personnel directory page the crawl starts from.
	IndexURL string `mapstructure:"index_url"`

	// BaseURL is the origin relative profile links are resolved against.
	BaseURL string `mapstructure:"base_url"`

	// LinkPattern selects profile anchors: any href containing this
	// substring (case-insensitive) is collected.
	LinkPattern string `mapstructure:"link_pattern"`

	// SkipFirstLink drops the first collected link before harvesting.
	// The directory page links to itself under the profile pattern, so
	// the first entry is never a person.
	SkipFirstLink bool `mapstructure:"skip_first_link"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.facultyharvest")
	}

	setDefaults(v)

	v.SetEnvPrefix("FACULTYHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is not an error, defaults and env apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("harvest.index_url", "https://sjsu.edu/people/")
	v.SetDefault("harvest.base_url", "https://sjsu.edu/")
	v.SetDefault("harvest.link_pattern", "/people/")
	v.SetDefault("harvest.skip_first_link", true)

	v.SetDefault("http.user_agent", "facultyharvest/1.0")
	v.SetDefault("http.timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Harvest.IndexURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return fmt.Errorf("harvest.index_url must be an absolute URL, got %q", c.Harvest.IndexURL)
	}
	if _, err := url.Parse(c.Harvest.BaseURL); err != nil {
		return fmt.Errorf("harvest.base_url is not a valid URL: %w", err)
	}
	if c.Harvest.LinkPattern == "" {
		return fmt.Errorf("harvest.link_pattern must not be empty")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	return nil
}
