// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// cli is the state shared by the commands of one root command.
type cli struct {
	app   *App
	flags globalFlags
	sess  *session
}

// session returns the invocation's session, loading it on first use.
func (c *cli) session(cmd *cobra.Command) *session {
	if c.sess == nil {
		c.sess = c.app.newSession(cmd.Context(), &c.flags)
	}
	return c.sess
}

// NewRootCommand builds the ksatool command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	c := &cli{app: app}

	rootCmd := &cobra.Command{
		Use:   "ksatool",
		Short: "Kitten Space Agency build and version tool",
		Long: TitleStyle.Render("ksatool") + SubtitleStyle.Render(" - Kitten Space Agency build and version tool") + `

ksatool detects the build of a Kitten Space Agency installation and keeps
the list of known game builds that mod metadata is checked against.

` + SubtitleStyle.Render("Examples:") + `
  ksatool detect ~/Games/KSA      Show the installed build
  ksatool versions                List every known build
  ksatool versions import b.json  Replace the known builds with a builds document
  ksatool info                    Show game metadata and URLs`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&c.flags.configFile, "config", "", "config file (default is $HOME/.config/ksatool/config.cue)")

	rootCmd.AddCommand(newDetectCommand(c))
	rootCmd.AddCommand(newVersionsCommand(c))
	rootCmd.AddCommand(newBuildsCommand(c))
	rootCmd.AddCommand(newModsCommand(c))
	rootCmd.AddCommand(newInfoCommand(c))
	rootCmd.AddCommand(newConfigCommand(c))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs ksatool with production dependencies and exits the process
// with the command's status on failure. It is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
