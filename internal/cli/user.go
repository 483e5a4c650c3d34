// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"

	"github.com/pathogui/pathograde/internal/credentials"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage reviewer accounts",
	}

	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a reviewer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			defer pw.Zero()

			svc, err := openServices(appConfig)
			if err != nil {
				return errors.New(i18n.T("cli.error_open_store", err))
			}
			defer func() { _ = svc.Close() }()

			if err := svc.Credentials.AddUser(cmd.Context(), args[0], pw.Reveal()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.user_added", args[0]))
			return nil
		},
	}
	addPasswordFlag(add)

	verify := &cobra.Command{
		Use:   "verify <username>",
		Short: "Check a reviewer's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			defer pw.Zero()

			svc, err := openServices(appConfig)
			if err != nil {
				return errors.New(i18n.T("cli.error_open_store", err))
			}
			defer func() { _ = svc.Close() }()

			if err := authenticate(cmd, svc.Credentials, args[0], pw.Reveal()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.user_verified", args[0]))
			return nil
		},
	}
	addPasswordFlag(verify)

	list := &cobra.Command{
		Use:   "list",
		Short: "List reviewer accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(appConfig)
			if err != nil {
				return errors.New(i18n.T("cli.error_open_store", err))
			}
			defer func() { _ = svc.Close() }()

			names, err := svc.Credentials.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_users"))
				return nil
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.AddCommand(add, verify, list)
	return cmd
}

// authenticate verifies the password and collapses every authentication
// failure into one message.
func authenticate(cmd *cobra.Command, store *credentials.Store, username, password string) error {
	ok, err := store.VerifyUser(cmd.Context(), username, password)
	if errors.Is(err, credentials.ErrAuthFailed) || (err == nil && !ok) {
		return errors.New(i18n.T("cli.auth_failed"))
	}
	return err
}
