// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/kittenmods/ksatool/internal/game"
	"github.com/kittenmods/ksatool/internal/issue"

	"github.com/spf13/cobra"
)

func newModsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mods [install-dir]",
		Short: "List the mods installed in the game",
		Long: `List the mod folders in the game's Content directory.

Folders shipped with the game are not listed. With --verbose the list is
also written to the log the way it is reported before the game starts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)

			dir, err := s.installDir(args)
			if err != nil {
				return c.app.fail(s, err)
			}

			mods, err := s.game.InstalledMods(game.NewInstance(dir))
			if err != nil {
				return c.app.fail(s, issue.NewErrorContext().
					WithOperation("list mods").
					WithResource(dir).
					WithIssue(issue.GameNotFoundId).
					Wrap(err).
					BuildError())
			}

			if s.verbose {
				s.game.LogLoadedMods(mods)
			}
			for _, name := range mods {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
