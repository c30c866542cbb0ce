package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidLineLength indicates a non-positive line limit
	ErrInvalidLineLength = errors.New("invalid max_line_length")

	// ErrInvalidTimeout indicates a negative style check timeout
	ErrInvalidTimeout = errors.New("invalid style_check_timeout")

	// ErrInvalidPattern indicates an include/exclude glob that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrNoIncludePatterns indicates an empty include set
	ErrNoIncludePatterns = errors.New("no include patterns")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.MaxLineLength <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidLineLength, cfg.MaxLineLength))
	}

	if cfg.StyleCheckTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: cannot be negative, got %s", ErrInvalidTimeout, cfg.StyleCheckTimeout))
	}

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrNoIncludePatterns))
	}

	for _, pattern := range cfg.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: include %q: %v", ErrInvalidPattern, pattern, err))
		}
	}
	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: exclude %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
