// Package config defines the formatter configuration value.
// These types are pure data; discovery and loading live in the CLI layer.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLineWidth is the target width for reflowed text.
const DefaultLineWidth = 80

// WrapMode controls how paragraph text is laid out.
type WrapMode string

const (
	// WrapReflow re-justifies prose to the configured width.
	WrapReflow WrapMode = "reflow"
	// WrapPreserve keeps source line breaks.
	WrapPreserve WrapMode = "preserve"
)

// IsValid returns true if the wrap mode is known.
func (m WrapMode) IsValid() bool {
	switch m {
	case WrapReflow, WrapPreserve:
		return true
	default:
		return false
	}
}

// LineEnding selects the line terminator of formatted output.
type LineEnding string

const (
	// LineEndingAuto keeps the terminator style detected in the input.
	LineEndingAuto LineEnding = "auto"
	// LineEndingLF always emits "\n".
	LineEndingLF LineEnding = "lf"
	// LineEndingCRLF always emits "\r\n".
	LineEndingCRLF LineEnding = "crlf"
)

// IsValid returns true if the line ending is known.
func (e LineEnding) IsValid() bool {
	switch e {
	case LineEndingAuto, LineEndingLF, LineEndingCRLF:
		return true
	default:
		return false
	}
}

// Validation errors.
var (
	ErrInvalidLineWidth  = errors.New("line_width must be positive")
	ErrInvalidMathIndent = errors.New("math_indent must not be negative")
	ErrInvalidWrap       = errors.New("wrap must be \"reflow\" or \"preserve\"")
	ErrInvalidLineEnding = errors.New("line_ending must be \"auto\", \"lf\" or \"crlf\"")
)

// Config is the formatter configuration. It is consumed only by the
// formatter and never affects tokenization or parsing.
type Config struct {
	// LineWidth is the maximum display width of reflowed lines.
	LineWidth int `toml:"line_width" yaml:"line_width" json:"line_width"`

	// Wrap selects reflow or preserve layout for paragraphs.
	Wrap WrapMode `toml:"wrap" yaml:"wrap" json:"wrap"`

	// MathIndent is the number of spaces prefixed to display math lines.
	MathIndent int `toml:"math_indent" yaml:"math_indent" json:"math_indent"`

	// LineEnding selects the output line terminator.
	LineEnding LineEnding `toml:"line_ending" yaml:"line_ending" json:"line_ending"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LineWidth:  DefaultLineWidth,
		Wrap:       WrapReflow,
		MathIndent: 0,
		LineEnding: LineEndingAuto,
	}
}

// ParseWrapMode parses a wrap mode case-insensitively.
func ParseWrapMode(s string) (WrapMode, error) {
	mode := WrapMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidWrap, s)
	}
	return mode, nil
}

// ParseLineEnding parses a line ending policy case-insensitively.
func ParseLineEnding(s string) (LineEnding, error) {
	ending := LineEnding(strings.ToLower(strings.TrimSpace(s)))
	if !ending.IsValid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidLineEnding, s)
	}
	return ending, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.LineWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLineWidth, c.LineWidth)
	}
	if c.MathIndent < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMathIndent, c.MathIndent)
	}
	if !c.Wrap.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidWrap, c.Wrap)
	}
	if !c.LineEnding.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidLineEnding, c.LineEnding)
	}
	return nil
}

// Normalize fills zero-valued fields with defaults.
func (c Config) Normalize() Config {
	def := Default()
	if c.LineWidth == 0 {
		c.LineWidth = def.LineWidth
	}
	if c.Wrap == "" {
		c.Wrap = def.Wrap
	}
	if c.LineEnding == "" {
		c.LineEnding = def.LineEnding
	}
	return c
}
