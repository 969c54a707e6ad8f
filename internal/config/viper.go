// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration,
// e.g. EXPENSES_CSV_DELIMITER for csv.delimiter.
const EnvPrefix = "EXPENSES"

// Accepted values for report.bucket and report.format.
var (
	ValidBuckets       = []string{"none", "month", "year"}
	ValidReportFormats = []string{"text", "csv", "json", "yaml"}
)

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	Categories     CategoriesConfig     `mapstructure:"categories" yaml:"categories"`
	Categorization CategorizationConfig `mapstructure:"categorization" yaml:"categorization"`
	Report         ReportConfig         `mapstructure:"report" yaml:"report"`
}

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig describes the transaction files read and written.
type CSVConfig struct {
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	InputFile  string `mapstructure:"input_file" yaml:"input_file"`
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`
}

// CategoriesConfig locates the category definitions.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// CategorizationConfig tunes the classifier.
type CategorizationConfig struct {
	AutoLearn          bool `mapstructure:"auto_learn" yaml:"auto_learn"`
	CaseSensitive      bool `mapstructure:"case_sensitive" yaml:"case_sensitive"`
	RequireSubCategory bool `mapstructure:"require_subcategory" yaml:"require_subcategory"`
}

// ReportConfig selects how summaries are grouped and rendered.
type ReportConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DelimiterRune returns the configured CSV delimiter.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// DateLayout returns csv.date_format as a Go time layout.
func (c *Config) DateLayout() string {
	layout, err := dateutils.LayoutFromPattern(c.CSV.DateFormat)
	if err != nil {
		return dateutils.DateLayoutEuropean
	}
	return layout
}

// flagBindings maps command line flags to configuration keys.
var flagBindings = map[string]string{
	"log-level":      "log.level",
	"log-format":     "log.format",
	"delimiter":      "csv.delimiter",
	"date-format":    "csv.date_format",
	"categories":     "categories.file",
	"learn":          "categorization.auto_learn",
	"require-sub":    "categorization.require_subcategory",
	"input":          "csv.input_file",
	"output":         "csv.output_file",
	"by":             "report.bucket",
	"format":         "report.format",
	"case-sensitive": "categorization.case_sensitive",
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then EXPENSES_* environment variables, then
// any flag in flags that was set explicitly.
//
// configFile overrides the search for config.yaml when non-empty.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-tracker")
		v.AddConfigPath(".expense-tracker")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, &parsererror.ConfigError{File: configFile, Reason: "cannot read config file", Err: err}
		}
	}

	// 5. Command line flags
	if flags != nil {
		for name, key := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, &parsererror.ConfigError{File: v.ConfigFileUsed(), Reason: err.Error()}
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "DD.MM.YYYY")
	v.SetDefault("csv.input_file", "")
	v.SetDefault("csv.output_file", "")

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("categorization.auto_learn", false)
	v.SetDefault("categorization.case_sensitive", false)
	v.SetDefault("categorization.require_subcategory", false)

	v.SetDefault("report.bucket", "none")
	v.SetDefault("report.format", "text")
}

// DefaultConfig returns the configuration obtained from defaults alone.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if _, err := dateutils.LayoutFromPattern(config.CSV.DateFormat); err != nil {
		return fmt.Errorf("invalid csv.date_format: %w", err)
	}

	if strings.TrimSpace(config.Categories.File) == "" {
		return fmt.Errorf("categories.file cannot be empty")
	}

	if !contains(ValidBuckets, config.Report.Bucket) {
		return fmt.Errorf("invalid report.bucket: %s (must be one of %s)",
			config.Report.Bucket, strings.Join(ValidBuckets, ", "))
	}

	if !contains(ValidReportFormats, config.Report.Format) {
		return fmt.Errorf("invalid report.format: %s (must be one of %s)",
			config.Report.Format, strings.Join(ValidReportFormats, ", "))
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
