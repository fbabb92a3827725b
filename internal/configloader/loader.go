// Package configloader resolves the formatter configuration from disk, the
// environment and command-line overrides.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/qmdfmt/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It must exist; discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips the per-user config file.
	IgnoreUserConfig bool

	// IgnoreEnv skips QMDFMT_* environment variables.
	IgnoreEnv bool

	// Overrides come from CLI flags and take highest precedence.
	Overrides Overrides
}

// Overrides holds per-field overrides. Nil fields are left alone.
type Overrides struct {
	LineWidth  *int
	Wrap       *config.WrapMode
	MathIndent *int
	LineEnding *config.LineEnding
}

// Apply copies the set fields onto cfg.
func (o Overrides) Apply(cfg *config.Config) {
	if o.LineWidth != nil {
		cfg.LineWidth = *o.LineWidth
	}
	if o.Wrap != nil {
		cfg.Wrap = *o.Wrap
	}
	if o.MathIndent != nil {
		cfg.MathIndent = *o.MathIndent
	}
	if o.LineEnding != nil {
		cfg.LineEnding = *o.LineEnding
	}
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final configuration.
	Config config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom is the file the config was read from, or "" for defaults.
	LoadedFrom string

	// Warnings contains non-fatal issues such as unknown keys.
	Warnings []string
}

// Load resolves the final configuration. The first config file found wins:
//  1. Explicit config file (opts.ExplicitPath)
//  2. Project config (.qmdfmt.toml or qmdfmt.toml, searching upward)
//  3. User config ($XDG_CONFIG_HOME/qmdfmt/config.toml, then ~/.config)
//  4. Defaults
//
// Environment variables (QMDFMT_*) and then opts.Overrides are applied on
// top of the chosen file.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{Config: config.Default()}

	if opts.ExplicitPath != "" {
		result.Paths = &ConfigPaths{Explicit: opts.ExplicitPath}
	} else {
		paths, err := DiscoverPaths(ctx, workDir, opts.IgnoreUserConfig)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		result.Paths = paths
	}

	if path := result.Paths.Selected(); path != "" {
		cfg, unknown, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		result.Config = cfg
		result.LoadedFrom = path
		for _, key := range unknown {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: unknown key %q ignored", path, key))
		}
		if err := Validate(cfg, path); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(&result.Config); err != nil {
			return nil, err
		}
	}

	opts.Overrides.Apply(&result.Config)

	source := "configuration"
	if result.LoadedFrom != "" {
		source = result.LoadedFrom
	}
	if err := Validate(result.Config, source); err != nil {
		return nil, err
	}

	return result, nil
}

// loadConfigFile decodes a TOML config file.
func loadConfigFile(path string) (config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("read file: %w", err)
	}
	return config.FromTOML(content)
}
