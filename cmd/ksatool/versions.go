// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/kittenmods/ksatool/internal/catalog"
	"github.com/kittenmods/ksatool/internal/game"
	"github.com/kittenmods/ksatool/internal/issue"
	"github.com/kittenmods/ksatool/pkg/gameversion"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	formatText   = "text"
	formatJSON   = "json"
	formatTOML   = "toml"
	formatBuilds = "builds"
)

var versionFormats = []string{formatText, formatJSON, formatTOML, formatBuilds}

// tomlVersions is the TOML shape of a version listing.
type tomlVersions struct {
	Versions []gameversion.Version `toml:"versions"`
}

func newVersionsCommand(c *cli) *cobra.Command {
	var format string

	versionsCmd := &cobra.Command{
		Use:   "versions",
		Short: "List every known game build",
		Long: `List every known game build.

The list comes from the downloaded builds cache when present and from the
dataset bundled with ksatool otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			return writeVersions(cmd.OutOrStdout(), format, s.game.KnownVersions())
		},
	}
	versionsCmd.PersistentFlags().StringVarP(&format, "format", "f", formatText, "output format (text, json, toml, builds)")

	versionsCmd.AddCommand(&cobra.Command{
		Use:   "embedded",
		Short: "List the builds bundled with ksatool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			return writeVersions(cmd.OutOrStdout(), format, s.game.EmbeddedGameVersions())
		},
	})

	versionsCmd.AddCommand(&cobra.Command{
		Use:   "import <builds.json>",
		Short: "Replace the known builds with a builds document",
		Long: `Parse a builds document ({"builds": {"<label>": "<version>"}}) and store its
versions as the builds cache. Entries that are not valid versions are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersionsImport(c, cmd, args[0])
		},
	})

	versionsCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the builds cache path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			path := s.game.CachePath()
			if path == "" {
				return c.app.fail(s, game.ErrNoDataDir)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return versionsCmd
}

func runVersionsImport(c *cli, cmd *cobra.Command, file string) error {
	s := c.session(cmd)

	data, err := afero.ReadFile(c.app.Fs, file)
	if err != nil {
		return c.app.fail(s, issue.WrapWithContext(err, "read builds document", file))
	}

	versions, err := s.game.ImportBuilds(data)
	switch {
	case errors.Is(err, game.ErrNoBuilds):
		return c.app.fail(s, issue.NewErrorContext().
			WithOperation("import builds").
			WithResource(file).
			WithIssue(issue.BuildsDocumentInvalidId).
			Wrap(err).
			BuildError())
	case errors.Is(err, fs.ErrPermission):
		return c.app.fail(s, issue.NewErrorContext().
			WithOperation("import builds").
			WithResource(s.game.CachePath()).
			WithIssue(issue.PermissionDeniedId).
			Wrap(err).
			BuildError())
	case err != nil:
		return c.app.fail(s, issue.NewErrorContext().
			WithOperation("import builds").
			WithResource(s.game.CachePath()).
			WithIssue(issue.CacheWriteFailedId).
			Wrap(err).
			BuildError())
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("Imported %d builds", len(versions)))+" into "+CmdStyle.Render(s.game.CachePath()))
	return nil
}

func newBuildsCommand(c *cli) *cobra.Command {
	var format string

	buildsCmd := &cobra.Command{
		Use:   "builds",
		Short: "Work with builds documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the versions of a builds document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)

			data, err := afero.ReadFile(c.app.Fs, args[0])
			if err != nil {
				return c.app.fail(s, issue.WrapWithContext(err, "read builds document", args[0]))
			}
			return writeVersions(cmd.OutOrStdout(), format, s.game.ParseBuildsJSON(data))
		},
	}
	parseCmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, toml, builds)")
	buildsCmd.AddCommand(parseCmd)

	return buildsCmd
}

// writeVersions renders versions in one of versionFormats.
func writeVersions(w io.Writer, format string, versions []gameversion.Version) error {
	switch format {
	case formatText:
		for _, v := range versions {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	case formatTOML:
		return toml.NewEncoder(w).Encode(tomlVersions{Versions: versions})
	case formatBuilds:
		return catalog.EncodeBuildsDocument(w, versions)
	default:
		return fmt.Errorf("unknown format %q (valid: %v)", format, versionFormats)
	}
}
