// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/review"
	"github.com/spf13/cobra"
)

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Record one grading without the TUI",
		Long: `Verifies the reviewer's password and appends one judgment for the
given image to the reviewer's grading log.`,
		Args: cobra.NoArgs,
		RunE: runGrade,
	}
	cmd.Flags().String("user", "", "Reviewer username")
	cmd.Flags().String("image", "", "Image file name")
	cmd.Flags().String("primary", "", "Primary grade (3, 4, 5 or empty)")
	cmd.Flags().String("secondary", "", "Secondary grade (3, 4, 5 or empty)")
	cmd.Flags().String("x", "", "Viewport x coordinate")
	cmd.Flags().String("y", "", "Viewport y coordinate")
	cmd.Flags().String("comment", "", "Free-text comment")
	addPasswordFlag(cmd)
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func runGrade(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	image, _ := cmd.Flags().GetString("image")
	primaryIn, _ := cmd.Flags().GetString("primary")
	secondaryIn, _ := cmd.Flags().GetString("secondary")
	x, _ := cmd.Flags().GetString("x")
	y, _ := cmd.Flags().GetString("y")
	comment, _ := cmd.Flags().GetString("comment")

	primary, err := gradelog.ParseGrade(primaryIn)
	if err != nil {
		return fmt.Errorf("--primary: %w", err)
	}
	secondary, err := gradelog.ParseGrade(secondaryIn)
	if err != nil {
		return fmt.Errorf("--secondary: %w", err)
	}

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

	if err := authenticate(cmd, svc.Credentials, user, pw.Reveal()); err != nil {
		return err
	}

	names, err := svc.Images()
	if err != nil {
		return err
	}
	idx := slices.Index(names, image)
	if idx < 0 {
		return errors.New(i18n.T("cli.unknown_image", image, appConfig.Images.Dir))
	}

	// Go through the presenter so the CLI records exactly what the TUI would.
	p := review.New(user, names[idx:idx+1], svc.GradeLog)
	p.SetPrimary(primary)
	p.SetSecondary(secondary)
	if x != "" || y != "" {
		p.SetCoordinates(x, y)
	}
	p.SetComment(comment)
	if err := p.Dispatch(cmd.Context(), review.ActionSave); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.grade_saved", image, user, svc.GradeLog.Path(user)))
	return nil
}
