package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shpatch/internal/configloader"
	"github.com/yaklabco/shpatch/internal/logging"
	"github.com/yaklabco/shpatch/internal/ui/pretty"
	"github.com/yaklabco/shpatch/pkg/config"
	"github.com/yaklabco/shpatch/pkg/fsutil"
	"github.com/yaklabco/shpatch/pkg/langdetect"
	"github.com/yaklabco/shpatch/pkg/patch"
)

// ErrFixesRejected is returned when some submitted fixes were rejected.
// It signals the exit code without being logged as a failure.
var ErrFixesRejected = errors.New("some fixes were rejected")

type applyFlags struct {
	fixesPath string
	format    string
	snippet   bool
	diff      bool
	inPlace   bool
	dryRun    bool
	backup    bool
	output    string
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [script]",
		Short: "Apply fix suggestions to a shell script",
		Long:  applyLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.fixesPath, "fixes", "f", "-",
		"path to the JSON fixes file, or - for stdin")
	cmd.Flags().StringVar(&flags.format, "format", "",
		"output format: full, snippet, diff")
	cmd.Flags().BoolVar(&flags.snippet, "snippet", false,
		"print only the lines touched by accepted fixes")
	cmd.Flags().BoolVar(&flags.diff, "diff", false,
		"print a unified diff instead of the patched text")
	cmd.Flags().BoolVarP(&flags.inPlace, "in-place", "i", false,
		"write the patched text back to the script")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"with --in-place, show the diff without writing")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"create a sidecar backup before writing in place")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write output to a file instead of stdout")

	return cmd
}

const applyLongDescription = `Apply fix suggestions to a shell script.

Fixes are read as JSON: either a flat array of fix objects or a report
object with a "comments" array where each comment carries a nested "fix".
Replacement positions are 1-based line/column pairs with tab stops of 8,
exactly as analysis tools report them.

Fixes are applied in input order. A fix whose edit ranges overlap an
already-accepted fix is rejected on its own; the rest of the batch
proceeds. When any fix is rejected the exit code is 1.

Examples:
  shellcheck -f json1 script.sh | shpatch apply script.sh
  shpatch apply --fixes fixes.json script.sh
  shpatch apply -f fixes.json --diff script.sh       # preview
  shpatch apply -f fixes.json -i --backup script.sh  # patch in place
  shpatch apply -f fixes.json --snippet script.sh    # touched lines only`

func runApply(cmd *cobra.Command, scriptPath string, flags *applyFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadApplyConfig(cmd, flags)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	content, info, err := fsutil.ReadFile(ctx, scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	if dialect := langdetect.Detect(scriptPath, content); dialect == "" {
		logger.Warn("input does not look like a shell script",
			logging.FieldPath, scriptPath)
	} else {
		logger.Debug("detected shell dialect",
			logging.FieldPath, scriptPath,
			logging.FieldLanguage, dialect)
	}

	fixes, err := loadFixes(cmd.InOrStdin(), flags.fixesPath)
	if err != nil {
		return fmt.Errorf("load fixes: %w", err)
	}
	logger.Debug("loaded fixes", logging.FieldFixes, len(fixes))

	session := patch.NewSession(string(content))
	outcome := session.ApplyFixes(fixes)
	logger.Debug("applied fixes",
		logging.FieldApplied, len(outcome.Applied),
		logging.FieldRejected, len(outcome.Rejected))

	if err := writeApplyOutput(ctx, cmd, session, outcome, scriptPath, content, info, cfg, flags); err != nil {
		return err
	}

	if len(outcome.Rejected) > 0 {
		return ErrFixesRejected
	}
	return nil
}

// loadApplyConfig resolves configuration and folds CLI flags in.
func loadApplyConfig(cmd *cobra.Command, flags *applyFlags) (*config.Config, error) {
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
			if flags.format != "" {
				cfg.Format = config.OutputFormat(flags.format)
			}
			if flags.snippet {
				cfg.Format = config.FormatSnippet
			}
			if flags.diff {
				cfg.Format = config.FormatDiff
			}
			if flags.backup {
				cfg.Backups.Enabled = true
			}
		},
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}
	return result.Config, nil
}

// loadFixes reads and decodes the fixes JSON from a file or stdin.
func loadFixes(stdin io.Reader, path string) ([]*patch.Fix, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return decodeFixes(data)
}

// decodeFixes accepts either a flat array of fix objects or a report
// wrapper with a "comments" array.
func decodeFixes(data []byte) ([]*patch.Fix, error) {
	var fixes []*patch.Fix
	if err := json.Unmarshal(data, &fixes); err == nil {
		return fixes, nil
	}

	var report struct {
		Comments []*patch.Fix `json:"comments"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse fixes JSON: %w", err)
	}
	return report.Comments, nil
}

func writeApplyOutput(
	ctx context.Context,
	cmd *cobra.Command,
	session *patch.Session,
	outcome *patch.Outcome,
	scriptPath string,
	content []byte,
	info *fsutil.FileInfo,
	cfg *config.Config,
	flags *applyFlags,
) error {
	stdout := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, stdout))

	result, err := session.Result()
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	if flags.inPlace {
		return writeInPlace(ctx, cmd, scriptPath, result, content, info, cfg, flags, styles, outcome)
	}

	var rendered string
	switch cfg.Format {
	case config.FormatSnippet:
		rendered, err = session.Snippet()
		if err != nil {
			return fmt.Errorf("render snippet: %w", err)
		}
	case config.FormatDiff:
		rendered = styles.FormatDiff(patch.GenerateDiff(scriptPath, string(content), result))
	default:
		rendered = result
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, []byte(rendered), 0); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, rendered)
	}

	fmt.Fprint(cmd.ErrOrStderr(), styles.FormatOutcome(outcome))
	return nil
}

// writeInPlace patches the script file itself, honoring dry-run, backups,
// and external modification detection.
func writeInPlace(
	ctx context.Context,
	cmd *cobra.Command,
	scriptPath string,
	result string,
	content []byte,
	info *fsutil.FileInfo,
	cfg *config.Config,
	flags *applyFlags,
	styles *pretty.Styles,
	outcome *patch.Outcome,
) error {
	logger := logging.Default()
	stderr := cmd.ErrOrStderr()

	diff := patch.GenerateDiff(scriptPath, string(content), result)

	if flags.dryRun {
		width := pretty.TerminalWidth(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), styles.Dim.Render(divider(width)))
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatDiff(diff))
		fmt.Fprint(stderr, styles.FormatOutcome(outcome))
		return nil
	}

	if diff == nil {
		logger.Info("no changes to write", logging.FieldPath, scriptPath)
		fmt.Fprint(stderr, styles.FormatOutcome(outcome))
		return nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return fmt.Errorf("check modification: %w", err)
	}
	if modified {
		return fmt.Errorf("refusing to write %s: file changed since it was read", scriptPath)
	}

	if cfg.Backups.Enabled {
		created, err := fsutil.CreateBackup(ctx, scriptPath, fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		})
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		logger.Debug("backup", logging.FieldPath, scriptPath, logging.FieldBackup, created)
	}

	if err := fsutil.WriteAtomic(ctx, scriptPath, []byte(result), info.Mode); err != nil {
		return fmt.Errorf("write script: %w", err)
	}

	fmt.Fprint(stderr, styles.FormatOutcome(outcome))
	return nil
}

func divider(width int) string {
	const maxDivider = 80
	if width > maxDivider {
		width = maxDivider
	}
	out := make([]byte, width)
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}
