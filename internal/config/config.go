// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads pathograde settings from defaults, config files,
// .env files, PATHOGRADE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RuntimeOS is the operating system used for config path resolution.
var RuntimeOS = runtime.GOOS

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Images   ImagesConfig   `mapstructure:"images" yaml:"images"`
	Results  ResultsConfig  `mapstructure:"results" yaml:"results"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Language string         `mapstructure:"language" yaml:"language"`
}

// DatabaseConfig selects the credential store backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// ImagesConfig describes the image source directory.
type ImagesConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	Extension string `mapstructure:"extension" yaml:"extension"`
}

// ResultsConfig describes where grading logs are written.
type ResultsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the built-in configuration values keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":    "sqlite",
		"database.dsn":     "./pathograde.db",
		"images.dir":       "../Data",
		"images.prefix":    "S",
		"images.extension": ".tif",
		"results.dir":      "./Results",
		"log.level":        "info",
		"log.file":         "",
		"language":         "en",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch RuntimeOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Pathograde")
		default:
			configDir = "/etc/pathograde"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "pathograde")
	}

	return filepath.Join(configDir, "pathograde.yaml"), nil
}

// LoadConfig merges defaults, config files, .env, environment and flags
// into a T. A missing config file is reported as viper.ConfigFileNotFoundError
// together with the otherwise fully populated value.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("pathograde")
	v.SetConfigType("yaml")

	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
		notFound = err
	}

	if err := loadDotEnv(".env"); err != nil {
		return c, err
	}

	v.SetEnvPrefix("pathograde")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// loadDotEnv imports variables from path when the file exists. Variables
// already present in the environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// WriteConfigFile persists c to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return path, nil
}
