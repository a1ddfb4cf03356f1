// Package configloader resolves the final shpatch configuration by merging
// defaults, a discovered or explicit config file, environment variables, and
// CLI flags.
package configloader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/shpatch/pkg/config"
)

// ConfigFileName is the project config file discovered upward from the
// working directory.
const ConfigFileName = ".shpatch.yaml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for a project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips environment variable overrides.
	IgnoreEnv bool

	// Apply mutates the almost-final config with CLI flag values.
	// CLI flags take highest precedence.
	Apply func(*config.Config)
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom is the config file that was loaded, if any.
	LoadedFrom string
}

// Load resolves the final configuration. Precedence (highest to lowest):
// CLI flags, environment variables (SHPATCH_*), explicit config file,
// discovered project config, defaults.
func Load(opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{Config: config.NewConfig()}

	path := opts.ExplicitPath
	if path == "" {
		path = discover(workDir)
	}
	if path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			if opts.ExplicitPath != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		} else {
			merge(result.Config, fileCfg)
			result.LoadedFrom = path
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(result.Config); err != nil {
			return nil, err
		}
	}

	if opts.Apply != nil {
		opts.Apply(result.Config)
	}

	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// discover walks upward from dir looking for ConfigFileName.
// Returns the empty string when no config file exists.
func discover(dir string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func loadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.FromYAML(data)
}

// merge overlays non-zero fields of src onto dst.
func merge(dst, src *config.Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Backups.Mode != "" {
		dst.Backups.Mode = src.Backups.Mode
	}
	dst.Backups.Enabled = dst.Backups.Enabled || src.Backups.Enabled
}
