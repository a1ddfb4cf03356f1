package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shpatch/internal/configloader"
	"github.com/yaklabco/shpatch/internal/logging"
	"github.com/yaklabco/shpatch/internal/ui/pretty"
	"github.com/yaklabco/shpatch/pkg/config"
	"github.com/yaklabco/shpatch/pkg/fsutil"
	"github.com/yaklabco/shpatch/pkg/reporter"
	"github.com/yaklabco/shpatch/pkg/runner"
)

type batchFlags struct {
	fixesPath string
	exclude   []string
	shebangs  bool
	jobs      int
	dryRun    bool
	backup    bool
	report    string
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Apply fixes to every script they target",
		Long:  batchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.fixesPath, "fixes", "f", "-",
		"path to the JSON fixes file, or - for stdin")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil,
		"glob patterns for files or directories to skip")
	cmd.Flags().BoolVar(&flags.shebangs, "shebangs", false,
		"also patch extensionless files with a shell shebang")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0,
		"number of files to patch concurrently (0 = number of CPUs)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"patch in memory and report, but write nothing")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"create a sidecar backup before rewriting each file")
	cmd.Flags().StringVar(&flags.report, "report", "",
		"emit a machine-readable report: text, json")

	return cmd
}

const batchLongDescription = `Apply fixes to every script they target.

The fix input carries a file name per diagnostic, as shellcheck emits
when run over multiple scripts. Scripts are discovered under the given
paths (default: the current directory), fixes are routed to the file
they name, and each file is patched in place independently.

Per-file failures do not stop the batch. The exit code is 1 when any
fix was rejected.

Examples:
  shellcheck -f json1 **/*.sh | shpatch batch
  shpatch batch -f fixes.json --dry-run scripts/
  shpatch batch -f fixes.json --backup -j 8 .`

func runBatch(cmd *cobra.Command, paths []string, flags *batchFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadBatchConfig(cmd, flags)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	fixes, err := loadFixes(cmd.InOrStdin(), flags.fixesPath)
	if err != nil {
		return fmt.Errorf("load fixes: %w", err)
	}
	logger.Debug("loaded fixes", logging.FieldFixes, len(fixes))

	ctx = logging.WithLogger(ctx, logger)
	result, err := runner.New(fixes).Run(ctx, runner.Options{
		Paths:          paths,
		ExcludeGlobs:   flags.exclude,
		DetectShebangs: flags.shebangs,
		Jobs:           flags.jobs,
		DryRun:         flags.dryRun,
		Backups: fsutil.BackupConfig{
			Enabled: cfg.Backups.Enabled,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	})
	if err != nil {
		return err
	}

	for _, outcome := range result.Files {
		if outcome.Err != nil {
			logger.Error("file failed", logging.FieldError, outcome.Err)
		}
	}

	stdout := cmd.OutOrStdout()
	if flags.report != "" {
		format, err := reporter.ParseFormat(flags.report)
		if err != nil {
			return err
		}
		rep, err := reporter.New(reporter.Options{
			Writer:     stdout,
			Format:     format,
			WorkingDir: workingDir(),
		})
		if err != nil {
			return err
		}
		if err := rep.Report(ctx, result); err != nil {
			return err
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, stdout))
		fmt.Fprint(stdout, styles.FormatRunResult(result))
	}

	if result.HasErrors() {
		return fmt.Errorf("%d files failed to patch", result.Stats.FilesErrored)
	}
	if result.HasRejections() {
		return ErrFixesRejected
	}
	return nil
}

// workingDir returns the current directory, or "" when it cannot be resolved.
func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// loadBatchConfig resolves configuration and folds CLI flags in.
func loadBatchConfig(cmd *cobra.Command, flags *batchFlags) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("get color flag: %w", err)
	}

	result, err := configloader.Load(configloader.LoadOptions{
		ExplicitPath: configPath,
		Apply: func(cfg *config.Config) {
			if cmd.Flags().Changed("color") {
				cfg.Color = colorMode
			}
			if flags.backup {
				cfg.Backups.Enabled = true
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return result.Config, nil
}
