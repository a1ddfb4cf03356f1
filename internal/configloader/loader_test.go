package configloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shpatch/internal/configloader"
	"github.com/yaklabco/shpatch/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(configloader.LoadOptions{
		WorkingDir: t.TempDir(),
		IgnoreEnv:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadDiscoversProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfgPath := filepath.Join(root, configloader.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: snippet\n"), 0o644))

	result, err := configloader.Load(configloader.LoadOptions{
		WorkingDir: nested,
		IgnoreEnv:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, config.FormatSnippet, result.Config.Format)
	assert.Equal(t, cfgPath, result.LoadedFrom)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   t.TempDir(),
		ExplicitPath: filepath.Join(t.TempDir(), "nope.yaml"),
		IgnoreEnv:    true,
	})
	require.Error(t, err)
}

func TestLoadCLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, configloader.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: snippet\ncolor: never\n"), 0o644))

	result, err := configloader.Load(configloader.LoadOptions{
		WorkingDir: dir,
		IgnoreEnv:  true,
		Apply: func(c *config.Config) {
			c.Format = config.FormatDiff
		},
	})
	require.NoError(t, err)
	assert.Equal(t, config.FormatDiff, result.Config.Format)
	assert.Equal(t, "never", result.Config.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHPATCH_FORMAT", "diff")
	t.Setenv("SHPATCH_BACKUPS_ENABLED", "true")

	result, err := configloader.Load(configloader.LoadOptions{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, config.FormatDiff, result.Config.Format)
	assert.True(t, result.Config.Backups.Enabled)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, configloader.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: xml\n"), 0o644))

	_, err := configloader.Load(configloader.LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.Error(t, err)
}
