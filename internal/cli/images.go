// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/spf13/cobra"
)

func newImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "List the slide images offered for grading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(appConfig)
			if err != nil {
				return errors.New(i18n.T("cli.error_open_store", err))
			}
			defer func() { _ = svc.Close() }()

			names, err := svc.Images()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_images", appConfig.Images.Dir))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tSIZE\tDIMENSIONS\tTITLE")
			for _, n := range names {
				info, err := images.Describe(svc.FS, svc.ImagePath(n))
				if err != nil {
					return err
				}
				dims := "-"
				if info.Width > 0 {
					dims = fmt.Sprintf("%dx%d", info.Width, info.Height)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n, humanize.Bytes(uint64(info.Size)), dims, images.Title(n))
			}
			return w.Flush()
		},
	}
}
