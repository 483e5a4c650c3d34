// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/security"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword returns the --password flag when given. Otherwise it prompts
// without echo on a terminal, or reads one line from a piped stdin.
func readPassword(cmd *cobra.Command) (security.Secret, error) {
	if cmd.Flags().Changed("password") {
		pw, _ := cmd.Flags().GetString("password")
		return security.FromString(pw), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), i18n.T("cli.password_prompt"))
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", i18n.T("cli.error_read_password"), err)
		}
		defer func() {
			for i := range b {
				b[i] = 0
			}
		}()
		return security.FromBytes(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("%s: %w", i18n.T("cli.error_read_password"), err)
	}
	return security.FromString(strings.TrimRight(line, "\r\n")), nil
}

func addPasswordFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
}
