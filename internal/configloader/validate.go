package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/config"
)

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	// Field is the config key, e.g. "line_width".
	Field string

	// Value is the offending value.
	Value any

	// Source is the file or environment variable that supplied the value.
	Source string

	// Err is the underlying cause, usually a config sentinel.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, e.Source)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	} else {
		parts = append(parts, fmt.Sprintf("invalid value %v", e.Value))
	}
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// fieldErrors maps config sentinels to the key they describe.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldErrors = []struct {
	err   error
	field string
	value func(config.Config) any
}{
	{config.ErrInvalidLineWidth, "line_width", func(c config.Config) any { return c.LineWidth }},
	{config.ErrInvalidMathIndent, "math_indent", func(c config.Config) any { return c.MathIndent }},
	{config.ErrInvalidWrap, "wrap", func(c config.Config) any { return c.Wrap }},
	{config.ErrInvalidLineEnding, "line_ending", func(c config.Config) any { return c.LineEnding }},
}

// Validate checks cfg and returns a *ValidationError naming the first bad
// field. source is recorded in the error.
func Validate(cfg config.Config, source string) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return &ValidationError{Field: fe.field, Value: fe.value(cfg), Source: source, Err: err}
		}
	}
	return &ValidationError{Source: source, Err: err}
}
