// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kittenmods/ksatool/internal/issue"
	"github.com/kittenmods/ksatool/pkg/platform"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "ksatool"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. KSATOOL_INSTALL_DIR.
	EnvPrefix = "KSATOOL"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the ksatool configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DataDir returns the default directory for ksatool's data files such as the
// builds cache. Windows uses the roaming %APPDATA%, macOS uses
// ~/Library/Application Support and Linux/others use $XDG_DATA_HOME
// (defaulting to ~/.local/share).
func DataDir() (string, error) {
	if dataDirOverride != "" {
		return dataDirOverride, nil
	}
	return dataDirFor(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func dataDirFor(goos string, getenv func(string) string, homeDir func() (string, error)) (string, error) {
	home := func() (string, error) {
		dir, err := homeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return dir, nil
	}

	var dataDir string

	switch goos {
	case platform.Windows:
		dataDir = getenv("APPDATA")
		if dataDir == "" {
			dataDir = filepath.Join(getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		h, err := home()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(h, "Library", "Application Support")
	default:
		dataDir = getenv("XDG_DATA_HOME")
		if dataDir == "" {
			h, err := home()
			if err != nil {
				return "", err
			}
			dataDir = filepath.Join(h, ".local", "share")
		}
	}

	return filepath.Join(dataDir, AppName), nil
}

// ResolvedDataDir returns cfg.DataDir when set and the platform data
// directory otherwise.
func ResolvedDataDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.DataDir != "" {
		return string(cfg.DataDir), nil
	}
	return DataDir()
}

// FilePath returns the config file that opts selects, whether or not it
// exists.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the file that was read, or "" when only
// defaults and the environment applied.
func loadWithOptions(ctx context.Context, fsys afero.Fs, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("install_dir", defaults.InstallDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// An explicit --config path is used exclusively and must exist.
	if opts.ConfigFilePath != "" {
		if !fileExists(fsys, opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'ksatool config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(fsys, v, opts.ConfigFilePath); err != nil {
			return nil, "", cueLoadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath, err := FilePath(opts)
		if err != nil {
			return nil, "", err
		}

		localCuePath := ConfigFileName + "." + ConfigFileExt
		for _, candidate := range []string{cuePath, localCuePath} {
			if !fileExists(fsys, candidate) {
				continue
			}
			if err := loadCUEIntoViper(fsys, v, candidate); err != nil {
				return nil, "", cueLoadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check KSATOOL_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func cueLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'ksatool config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// fileExists checks if a file exists and is not a directory
func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the file opts
// selects. An existing file is left untouched unless force is set. It returns
// the path and whether a file was written.
func CreateDefaultConfig(fsys afero.Fs, opts LoadOptions, force bool) (string, bool, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	cfgPath, err := FilePath(opts)
	if err != nil {
		return "", false, err
	}

	if !force && fileExists(fsys, cfgPath) {
		return cfgPath, false, nil
	}

	if err := fsys.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := afero.WriteFile(fsys, cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// ksatool configuration file\n")
	sb.WriteString("// Run 'ksatool config --help' for the available settings.\n\n")

	if cfg.DataDir != "" {
		fmt.Fprintf(&sb, "data_dir: %q\n", cfg.DataDir)
	}
	if cfg.InstallDir != "" {
		fmt.Fprintf(&sb, "install_dir: %q\n", cfg.InstallDir)
	}
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
