// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	// Rules point at override files for the rule tables. Empty paths use
	// the tables embedded in the binary.
	Rules struct {
		VendorsFile       string `mapstructure:"vendors_file" yaml:"vendors_file"`
		MCCFile           string `mapstructure:"mcc_file" yaml:"mcc_file"`
		CategoryNamesFile string `mapstructure:"category_names_file" yaml:"category_names_file"`
	} `mapstructure:"rules" yaml:"rules"`

	Cache struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"cache" yaml:"cache"`

	Batch struct {
		Size    int `mapstructure:"size" yaml:"size"`
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	// Defaults fill transaction fields a CSV row leaves empty.
	Defaults struct {
		Industry    string `mapstructure:"industry" yaml:"industry"`
		AccountType string `mapstructure:"account_type" yaml:"account_type"`
	} `mapstructure:"defaults" yaml:"defaults"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig is InitializeConfig with an explicit config file. An empty path
// searches the default locations, where a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.autocat")
		v.AddConfigPath(".autocat")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("AUTOCAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks a configuration after command-line overrides are applied.
func Validate(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("rules.vendors_file", "")
	v.SetDefault("rules.mcc_file", "")
	v.SetDefault("rules.category_names_file", "")

	v.SetDefault("cache.file", "vendor_cache.yaml")

	v.SetDefault("batch.size", 100)
	v.SetDefault("batch.workers", 4)

	v.SetDefault("defaults.industry", "")
	v.SetDefault("defaults.account_type", string(models.AccountLimitedCompany))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Cache.File == "" {
		return fmt.Errorf("cache.file must not be empty")
	}

	if config.Batch.Size < 1 || config.Batch.Size > 10000 {
		return fmt.Errorf("batch.size must be between 1 and 10000, got: %d", config.Batch.Size)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	switch models.AccountType(config.Defaults.AccountType) {
	case models.AccountLimitedCompany, models.AccountDirectorsPersonalTax:
	default:
		return fmt.Errorf("defaults.account_type must be %q or %q, got: %s",
			models.AccountLimitedCompany, models.AccountDirectorsPersonalTax, config.Defaults.AccountType)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config
// struct. Unknown levels fall back to info.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	level := strings.ToLower(config.Log.Level)
	if _, err := logrus.ParseLevel(level); err != nil {
		level = "info"
	}
	return logging.NewLogrusAdapter(level, strings.ToLower(config.Log.Format))
}
