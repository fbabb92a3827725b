package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// Explicit is a config path provided via --config flag.
	Explicit string

	// Project is the nearest .qmdfmt.toml or qmdfmt.toml above the working
	// directory.
	Project string

	// User is the per-user config (e.g. ~/.config/qmdfmt/config.toml).
	User string
}

// Selected returns the file that wins discovery, or "" for defaults.
func (p *ConfigPaths) Selected() string {
	switch {
	case p.Explicit != "":
		return p.Explicit
	case p.Project != "":
		return p.Project
	default:
		return p.User
	}
}

// ProjectConfigFiles are the project config file names, in order of
// preference within one directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{".qmdfmt.toml", "qmdfmt.toml"}

// userConfigFile is the file name looked up in the user config directory.
const userConfigFile = "config.toml"

// DiscoverPaths finds configuration files in standard locations. Missing
// files are represented as empty strings.
func DiscoverPaths(ctx context.Context, workDir string, skipUser bool) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	if !skipUser {
		paths.User = findUserConfig()
	}
	return paths, nil
}

// findUserConfig checks $XDG_CONFIG_HOME/qmdfmt and then ~/.config/qmdfmt.
func findUserConfig() string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, "qmdfmt", userConfigFile)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches startDir and each of its ancestors, up to the
// filesystem root, for a project config file.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range ProjectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
