package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shpatch/internal/logging"
	"github.com/yaklabco/shpatch/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [script]",
		Short: "Restore a script from its sidecar backup",
		Long: `Restore a script from the sidecar backup created by a previous
"shpatch apply --in-place --backup" run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args[0])
		},
	}
	return cmd
}

func runRestore(cmd *cobra.Command, scriptPath string) error {
	logger := logging.NewInteractive()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	restored, err := fsutil.RestoreBackup(ctx, scriptPath, fsutil.BackupModeSidecar)
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	if !restored {
		return fmt.Errorf("no backup found for %s", scriptPath)
	}

	logger.Info("restored from backup", logging.FieldPath, scriptPath)
	return nil
}
