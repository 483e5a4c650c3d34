// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pathogui/pathograde/internal/db"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Credential database utilities",
	}
	maintain := &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
		Long:  `Runs engine-specific maintenance tasks (VACUUM, OPTIMIZE TABLE, PRAGMA optimize).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skipIntegrity, _ := cmd.Flags().GetBool("skip-integrity")
			timeoutSec, _ := cmd.Flags().GetInt("timeout")
			out := cmd.OutOrStdout()
			if skipIntegrity {
				_, _ = fmt.Fprintln(out, i18n.T("cli.skip_integrity"))
			}

			ctx := cmd.Context()
			if timeoutSec > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
				defer cancel()
			}
			opts := db.MaintenanceOptions{SkipIntegrity: skipIntegrity}
			if err := db.RunDBMaintenance(ctx, appConfig.Database.Type, appConfig.Database.Dsn, opts); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.maintenance_failed"), err)
			}
			_, _ = fmt.Fprintln(out, i18n.T("cli.maintenance_done"))
			return nil
		},
	}
	maintain.Flags().Bool("skip-integrity", false, "Skip integrity_check (SQLite) during maintenance")
	maintain.Flags().Int("timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")
	cmd.AddCommand(maintain)
	return cmd
}
