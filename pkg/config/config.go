// Package config defines core configuration types for shpatch.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies what the apply command writes out.
type OutputFormat string

const (
	// FormatFull emits the complete patched text.
	FormatFull OutputFormat = "full"

	// FormatSnippet emits only the lines touched by accepted fixes.
	FormatSnippet OutputFormat = "snippet"

	// FormatDiff emits a unified diff between original and patched text.
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the output format is recognized.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatFull, FormatSnippet, FormatDiff:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when patching in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for shpatch.
type Config struct {
	// Format selects the default output format for apply.
	Format OutputFormat `yaml:"format"`

	// Color controls colorized output: "auto", "always", or "never".
	Color string `yaml:"color"`

	// LogLevel sets the default logger verbosity.
	LogLevel string `yaml:"log_level"`

	// Backups controls sidecar backups for in-place patching.
	Backups BackupsConfig `yaml:"backups"`
}

// NewConfig returns a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		Format:   FormatFull,
		Color:    "auto",
		LogLevel: "info",
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Format != "" && !c.Format.IsValid() {
		return &ValidationError{Field: "format", Value: string(c.Format)}
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return &ValidationError{Field: "color", Value: c.Color}
	}
	switch c.Backups.Mode {
	case "", "sidecar", "none":
	default:
		return &ValidationError{Field: "backups.mode", Value: c.Backups.Mode}
	}
	return nil
}
