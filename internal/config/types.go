// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/HCRitter/PSCommandShortener/internal/reassemble"
)

const (
	// LineEndingCRLF emits Windows-style line endings, the default for
	// PowerShell-heritage sources.
	LineEndingCRLF LineEndingStyle = "crlf"
	// LineEndingLF emits Unix-style line endings.
	LineEndingLF LineEndingStyle = "lf"
)

var (
	// ErrInvalidLineEnding is the sentinel error wrapped by InvalidLineEndingError.
	ErrInvalidLineEnding = errors.New("invalid line ending style")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LineEndingStyle selects the canonical line ending of shortened output.
	LineEndingStyle string

	// InvalidLineEndingError is returned when a LineEndingStyle value is not
	// recognized. It wraps ErrInvalidLineEnding for errors.Is() compatibility.
	InvalidLineEndingError struct {
		Value LineEndingStyle
	}

	// Config holds all engine and CLI settings.
	Config struct {
		// ImpliedPrefixes are the verb prefixes that may be dropped from a
		// command with no registered alias.
		ImpliedPrefixes []string `mapstructure:"implied_prefixes"`
		// LineEnding selects the output line-ending style.
		LineEnding LineEndingStyle `mapstructure:"line_ending"`
		// RegistryPaths are extra alias table files layered over the
		// embedded defaults, in order.
		RegistryPaths []string `mapstructure:"registry_paths"`
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a Config fails validation. It
	// wraps ErrInvalidConfig for errors.Is() compatibility and carries the
	// individual field errors.
	InvalidConfigError struct {
		Errs []error
	}
)

// String returns the string representation of the LineEndingStyle.
func (l LineEndingStyle) String() string { return string(l) }

// IsValid returns whether the LineEndingStyle is a recognized value.
func (l LineEndingStyle) IsValid() (bool, []error) {
	switch l {
	case LineEndingCRLF, LineEndingLF:
		return true, nil
	}
	return false, []error{&InvalidLineEndingError{Value: l}}
}

// Sequence returns the literal byte sequence for the style. Unrecognized
// values fall back to CRLF.
func (l LineEndingStyle) Sequence() reassemble.LineEnding {
	if l == LineEndingLF {
		return reassemble.LF
	}
	return reassemble.CRLF
}

// DefaultConfig returns the built-in settings used when no config file is
// present.
func DefaultConfig() *Config {
	return &Config{
		ImpliedPrefixes: []string{"Get-"},
		LineEnding:      LineEndingCRLF,
	}
}

// IsValid returns whether the Config is valid, along with all field errors.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.LineEnding.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for _, prefix := range c.ImpliedPrefixes {
		if prefix == "" {
			errs = append(errs, fmt.Errorf("%w: implied prefix must not be empty", ErrInvalidConfig))
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Error implements the error interface for InvalidLineEndingError.
func (e *InvalidLineEndingError) Error() string {
	return fmt.Sprintf("invalid line ending style: %q (valid: %q, %q)", e.Value, LineEndingCRLF, LineEndingLF)
}

// Unwrap returns ErrInvalidLineEnding for errors.Is() compatibility.
func (e *InvalidLineEndingError) Unwrap() error { return ErrInvalidLineEnding }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.Errs...))
}

// Unwrap returns ErrInvalidConfig plus the individual field errors so that
// errors.Is() matches both the aggregate and the specific failures.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.Errs...)
}
