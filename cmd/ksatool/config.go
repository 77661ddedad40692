// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kittenmods/ksatool/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the `ksatool config` command tree.
func newConfigCommand(c *cli) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ksatool configuration",
		Long: `Manage ksatool configuration.

Configuration is stored in:
  - Linux: ~/.config/ksatool/config.cue
  - macOS: ~/Library/Application Support/ksatool/config.cue
  - Windows: %APPDATA%\ksatool\config.cue

KSATOOL_* environment variables (for example KSATOOL_INSTALL_DIR) override
the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(c, cmd)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			path, written, err := config.CreateDefaultConfig(c.app.Fs, s.opts, force)
			if err != nil {
				return c.app.fail(s, err)
			}
			if !written {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("Configuration already exists: ")+path)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created configuration: ")+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			path, err := config.FilePath(s.opts)
			if err != nil {
				return c.app.fail(s, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			out := cmd.OutOrStdout()

			switch dumpFormat {
			case "cue":
				_, err := fmt.Fprint(out, config.GenerateCUE(s.cfg))
				return err
			case formatTOML:
				return toml.NewEncoder(out).Encode(s.cfg)
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.cfg)
			default:
				return fmt.Errorf("unknown format %q (valid: cue, toml, json)", dumpFormat)
			}
		},
	}
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "cue", "output format (cue, toml, json)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(c *cli, cmd *cobra.Command) error {
	s := c.session(cmd)
	out := cmd.OutOrStdout()
	cfg := s.cfg

	source := s.cfgPath
	if source == "" {
		source = "(defaults)"
	}

	dataDir, err := config.ResolvedDataDir(cfg)
	if err != nil {
		dataDir = "(unavailable)"
	}

	installDir := cfg.InstallDir.String()
	if installDir == "" {
		installDir = "(not set)"
	}

	fmt.Fprintln(out, TitleStyle.Render("Configuration"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, field("Source", source))
	fmt.Fprintln(out, field("Data directory", dataDir))
	fmt.Fprintln(out, field("Install directory", installDir))
	fmt.Fprintln(out, field("Log level", cfg.LogLevel.String()))
	fmt.Fprintln(out, field("Color scheme", cfg.UI.ColorScheme.String()))
	fmt.Fprintln(out, field("Verbose", fmt.Sprint(cfg.UI.Verbose)))
	return nil
}
