// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys.
const EnvPrefix = "EXPENSES"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		ExpensesFile  string `mapstructure:"expenses_file" yaml:"expenses_file"`
		RecurringFile string `mapstructure:"recurring_file" yaml:"recurring_file"`
	} `mapstructure:"data" yaml:"data"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
		File      string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"csv" yaml:"csv"`

	Recurring struct {
		ProcessOnStart       bool `mapstructure:"process_on_start" yaml:"process_on_start"`
		WeeklyDuplicateGuard bool `mapstructure:"weekly_duplicate_guard" yaml:"weekly_duplicate_guard"`
		ClampMonthEnd        bool `mapstructure:"clamp_month_end" yaml:"clamp_month_end"`
	} `mapstructure:"recurring" yaml:"recurring"`

	Report struct {
		ChartWidth int    `mapstructure:"chart_width" yaml:"chart_width"`
		Locale     string `mapstructure:"locale" yaml:"locale"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads configuration with the precedence
// defaults < config file < environment. When configFile is empty the file
// is searched as config.yaml in $HOME/.expense-tracker, .expense-tracker and
// the working directory; a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
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
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration made of default values only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default configuration does not decode: %v", err))
	}
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")
	v.SetDefault("data.expenses_file", "expenses.json")
	v.SetDefault("data.recurring_file", "recurring_expenses.json")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.file", "expenses.csv")

	v.SetDefault("recurring.process_on_start", true)
	v.SetDefault("recurring.weekly_duplicate_guard", false)
	v.SetDefault("recurring.clamp_month_end", false)

	v.SetDefault("report.chart_width", 40)
	v.SetDefault("report.locale", "en")
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

	if strings.TrimSpace(config.Data.ExpensesFile) == "" {
		return fmt.Errorf("data.expenses_file must not be empty")
	}
	if strings.TrimSpace(config.Data.RecurringFile) == "" {
		return fmt.Errorf("data.recurring_file must not be empty")
	}

	if config.Report.ChartWidth < 10 || config.Report.ChartWidth > 200 {
		return fmt.Errorf("report.chart_width must be between 10 and 200, got: %d", config.Report.ChartWidth)
	}

	if _, err := language.Parse(config.Report.Locale); err != nil {
		return fmt.Errorf("invalid report.locale %q: %w", config.Report.Locale, err)
	}

	return nil
}

// ExpensesPath returns the expense store location.
func (c *Config) ExpensesPath() string {
	return c.resolve(c.Data.ExpensesFile)
}

// RecurringPath returns the recurring rule store location.
func (c *Config) RecurringPath() string {
	return c.resolve(c.Data.RecurringFile)
}

// CSVPath returns the default CSV export location.
func (c *Config) CSVPath() string {
	return c.resolve(c.CSV.File)
}

// DelimiterRune returns the configured CSV delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// LocaleTag returns the parsed report locale, falling back to English.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Report.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.Data.Directory == "" {
		return name
	}
	return filepath.Join(c.Data.Directory, name)
}
