// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/kittenmods/ksatool/internal/game"

	"github.com/spf13/cobra"
)

func newInfoCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info [install-dir]",
		Short: "Show game metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session(cmd)
			out := cmd.OutOrStdout()
			g := s.game

			fmt.Fprintln(out, TitleStyle.Render("Kitten Space Agency")+SubtitleStyle.Render(" ("+game.ShortName+")"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, field("First release", game.FirstReleaseDate.Format("2006-01-02")))
			fmt.Fprintln(out, field("Anchor files", strings.Join(g.InstanceAnchorFiles(), ", ")))
			fmt.Fprintln(out, field("Mod directory", game.PrimaryModDirectoryRelative))
			fmt.Fprintln(out, field("Compatible file", game.CompatibleVersionsFile))
			fmt.Fprintln(out, field("Repository", CmdStyle.Render(game.DefaultRepositoryURL)))
			fmt.Fprintln(out, field("Repository list", CmdStyle.Render(game.RepositoryListURL)))
			fmt.Fprintln(out, field("Bug tracker", CmdStyle.Render(game.MetadataBugtrackerURL)))
			fmt.Fprintln(out, field("Support", CmdStyle.Render(game.ModSupportURL)))

			// The installation is optional here; without one only static data is shown.
			if dir, err := s.installDir(args); err == nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, field("Game directory", dir))
				fmt.Fprintln(out, field("Game found", fmt.Sprint(g.GameInFolder(dir))))
				if v, ok := g.DetectVersion(dir); ok {
					fmt.Fprintln(out, field("Installed build", v.String()))
				}
				fmt.Fprintln(out, field("Launch", strings.Join(g.DefaultCommandLines(dir), "; ")))
			}

			if s.verbose {
				fmt.Fprintln(out)
				fmt.Fprintln(out, SubtitleStyle.Render("Stock folders:"))
				for _, folder := range g.StockFolders() {
					fmt.Fprintln(out, VerboseStyle.Render("  "+folder))
				}
			}
			return nil
		},
	}
}
