package configloader

import (
	"os"
	"strconv"

	"github.com/yaklabco/qmdfmt/pkg/config"
)

// envVarPrefix is the prefix for all qmdfmt environment variables.
const envVarPrefix = "QMDFMT_"

// envMapping applies one environment variable to a config.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config
// fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LINE_WIDTH": {
		field:       "line_width",
		description: "Maximum line width for reflowed paragraphs",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			cfg.LineWidth = n
			return nil
		},
	},
	"WRAP": {
		field:       "wrap",
		description: "Paragraph layout: reflow or preserve",
		apply: func(cfg *config.Config, value string) error {
			mode, err := config.ParseWrapMode(value)
			if err != nil {
				return err
			}
			cfg.Wrap = mode
			return nil
		},
	},
	"MATH_INDENT": {
		field:       "math_indent",
		description: "Spaces before each display math line",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			cfg.MathIndent = n
			return nil
		},
	},
	"LINE_ENDING": {
		field:       "line_ending",
		description: "Output line endings: auto, lf or crlf",
		apply: func(cfg *config.Config, value string) error {
			ending, err := config.ParseLineEnding(value)
			if err != nil {
				return err
			}
			cfg.LineEnding = ending
			return nil
		},
	},
}

// LoadFromEnv applies QMDFMT_* overrides to cfg. A malformed value is
// reported as a *ValidationError naming the variable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return &ValidationError{Field: mapping.field, Value: value, Source: name, Err: err}
		}
	}
	return nil
}

// GetEnvVarName returns the environment variable that overrides field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
