// Package config holds the doclint configuration: built-in defaults,
// overridden by a config file, environment variables, and CLI flags,
// in that order.
package config

import "time"

// Config is the complete doclint configuration. It can be loaded
// from .doclint.yml with environment variable overrides.
type Config struct {
	// MaxLineLength is the inclusive docstring line limit in Unicode
	// code points.
	MaxLineLength int `yaml:"max_line_length" mapstructure:"max_line_length"`

	// SkipMissingDocstrings disables flagging scopes without a
	// docstring.
	SkipMissingDocstrings bool `yaml:"skip_missing_docstrings" mapstructure:"skip_missing_docstrings"`

	// EnableStyleCheck runs the external style checker pass.
	EnableStyleCheck bool `yaml:"enable_style_check" mapstructure:"enable_style_check"`

	// CheckSummary enables the docstring summary rule.
	CheckSummary bool `yaml:"check_summary" mapstructure:"check_summary"`

	// RequirePeriod requires the summary to end with a period. Only
	// effective with CheckSummary.
	RequirePeriod bool `yaml:"require_period" mapstructure:"require_period"`

	// Include is the set of glob patterns selecting files to check.
	Include []string `yaml:"include" mapstructure:"include"`

	// Exclude is the set of glob patterns to skip.
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`

	// StyleCheckTimeout bounds one style checker invocation.
	StyleCheckTimeout time.Duration `yaml:"style_check_timeout" mapstructure:"style_check_timeout"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		MaxLineLength:         72,
		SkipMissingDocstrings: true,
		EnableStyleCheck:      true,
		CheckSummary:          false,
		RequirePeriod:         true,
		Include: []string{
			"**/*.py",
		},
		Exclude: []string{
			".git/**",
			"venv/**",
			".venv/**",
			"__pycache__/**",
			"node_modules/**",
			"build/**",
			"dist/**",
			".mypy_cache/**",
			".pytest_cache/**",
			".ruff_cache/**",
		},
		StyleCheckTimeout: 30 * time.Second,
	}
}
