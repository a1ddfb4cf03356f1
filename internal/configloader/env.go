package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/shpatch/pkg/config"
)

// envVarPrefix is the prefix for all shpatch environment variables.
const envVarPrefix = "SHPATCH_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SHPATCH_ (e.g. SHPATCH_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "FORMAT"); v != "" {
		cfg.Format = config.OutputFormat(v)
	}
	if v := os.Getenv(envVarPrefix + "COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv(envVarPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envVarPrefix + "BACKUPS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sBACKUPS_ENABLED: %q", envVarPrefix, v)
		}
		cfg.Backups.Enabled = b
	}
	if v := os.Getenv(envVarPrefix + "BACKUPS_MODE"); v != "" {
		cfg.Backups.Mode = v
	}
	return nil
}
