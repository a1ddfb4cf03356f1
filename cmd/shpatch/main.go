// Package main is the entry point for the shpatch CLI.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/yaklabco/shpatch/internal/cli"
	"github.com/yaklabco/shpatch/internal/logging"
	"github.com/yaklabco/shpatch/pkg/config"
	"github.com/yaklabco/shpatch/pkg/patch"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Rejected fixes are just a signal for the exit code.
	if errors.Is(err, cli.ErrFixesRejected) {
		return cli.ExitFixesRejected
	}

	logger := logging.Default()
	logger.Error("command failed", logging.FieldError, err)

	var anchorErr *patch.AnchorError
	if errors.As(err, &anchorErr) {
		return cli.ExitBadInput
	}
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		return cli.ExitConfigError
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return cli.ExitIOError
	}
	return cli.ExitInternalError
}
