// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli sets up the command-line interface for pathograde using the
// Cobra library. Running without a subcommand launches the TUI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/pathogui/pathograde/buildvars"
	"github.com/pathogui/pathograde/internal/app"
	"github.com/pathogui/pathograde/internal/config"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/pathogui/pathograde/internal/logging"
	"github.com/pathogui/pathograde/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const modulePath = "github.com/pathogui/pathograde"

var appConfig config.Config
var logFile *os.File

// openServices is replaced in tests that must not touch a real database.
var openServices = func(cfg config.Config) (*app.Services, error) {
	return app.New(cfg, nil)
}

// runTUI is replaced in tests.
var runTUI = tui.Run

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, configPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the defaults so users have a file to edit.
		if path, writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in a user file fall back to the built-in defaults.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults["database.dsn"].(string)
	}
	if appConfig.Results.Dir == "" {
		appConfig.Results.Dir = defaults["results.dir"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logging.SetDebug(true)
	} else if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		logging.Warnf("ignoring log level %q: %v", appConfig.Log.Level, err)
	}
	if appConfig.Log.File != "" && logFile == nil {
		f, err := os.OpenFile(appConfig.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		logging.SetOutput(f)
	}

	i18n.Init(appConfig.Language)
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// Execute runs the CLI entrypoint.
func Execute() error {
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()
	return NewRootCmd().Execute()
}

// NewRootCmd creates and configures a new root cobra command. Tests call it
// repeatedly to get isolated command trees.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathograde",
		Short: "Pathograde grades pathology slide images.",
		Long: `Pathograde lets a logged-in reviewer step through slide images and
record primary and secondary grades, viewport coordinates and a comment.
Every judgment is appended to a per-user CSV log.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE:              runInteractive,
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("language", "", `UI language ("en", "de")`)
	cmd.PersistentFlags().String("database.type", "", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", "", "Database connection string (DSN)")
	cmd.PersistentFlags().String("images.dir", "", "Directory holding the slide images")
	cmd.PersistentFlags().String("results.dir", "", "Directory receiving the grading logs")

	cmd.AddCommand(
		newUserCmd(),
		newImagesCmd(),
		newGradeCmd(),
		newLogCmd(),
		newDBCmd(),
		newVersionCmd(),
	)
	return cmd
}

func runInteractive(cmd *cobra.Command, args []string) error {
	svc, err := openServices(appConfig)
	if err != nil {
		return errors.New(i18n.T("cli.error_open_store", err))
	}
	defer func() { _ = svc.Close() }()

	imgs, err := svc.Images()
	if err != nil {
		return err
	}
	if len(imgs) == 0 {
		logging.Warnf("no images found in %s", appConfig.Images.Dir)
	}

	// The TUI owns the terminal; without a log file diagnostics are dropped.
	if logFile == nil {
		logging.SetOutput(io.Discard)
		defer logging.SetOutput(os.Stderr)
	}

	return runTUI(tui.Options{
		Auth:   svc.Credentials,
		Log:    svc.GradeLog,
		Images: imgs,
		Describe: func(name string) (images.Info, error) {
			return images.Describe(svc.FS, svc.ImagePath(name))
		},
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "version: %s\n", v)
			_, _ = fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				_, _ = fmt.Fprintf(out, "built: %s\n", d)
			}
			return nil
		},
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	var b strings.Builder
	b.WriteString(v)
	if c != "" && c != "dev" {
		b.WriteString(" (" + c + ")")
	}
	if d != "" {
		b.WriteString(" built: " + d)
	}
	return b.String()
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := buildvars.Commit
	resolvedDate := buildvars.Date

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our version as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && buildvars.Commit != "dev" && buildvars.Commit != "" {
		resolvedVersion = buildvars.Commit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
