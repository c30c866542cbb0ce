package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables.
	Load() (*Config, error)
}

type loader struct {
	rootDir  string
	filePath string
}

// NewLoader creates a loader that searches rootDir for .doclint.yml.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader bound to an explicit config file.
// A missing or unreadable file is an error, unlike the search path
// case.
func NewFileLoader(filePath string) Loader {
	return &loader{filePath: filePath}
}

// Load loads configuration with the following priority (highest to
// lowest):
// 1. Environment variables (DOCLINT_*)
// 2. Config file (.doclint.yml or the --config path)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.filePath != "" {
		v.SetConfigFile(l.filePath)
	} else {
		v.SetConfigName(".doclint")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix("DOCLINT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.filePath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file in the search path: defaults + env apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("max_line_length", defaults.MaxLineLength)
	v.SetDefault("skip_missing_docstrings", defaults.SkipMissingDocstrings)
	v.SetDefault("enable_style_check", defaults.EnableStyleCheck)
	v.SetDefault("check_summary", defaults.CheckSummary)
	v.SetDefault("require_period", defaults.RequirePeriod)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("style_check_timeout", defaults.StyleCheckTimeout)
}
