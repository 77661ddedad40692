// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kittenmods/ksatool/internal/issue"
	"github.com/kittenmods/ksatool/internal/watch"

	"github.com/spf13/cobra"
)

func newDetectCommand(c *cli) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "detect [install-dir]",
		Short: "Detect the installed game build",
		Long: `Detect the build of a Kitten Space Agency installation.

The build is read from the most recently modified JSON descriptor in
content/Versions. Without an argument the configured install_dir is used.

With --watch the command keeps running and prints the build again every time
the descriptors change, until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(c, cmd, args, follow)
		},
	}

	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "keep running and report build changes")

	return cmd
}

func runDetect(c *cli, cmd *cobra.Command, args []string, follow bool) error {
	s := c.session(cmd)
	out := cmd.OutOrStdout()

	dir, err := s.installDir(args)
	if err != nil {
		return c.app.fail(s, err)
	}

	if !s.game.GameInFolder(dir) {
		s.logger.Warn("directory has no game executable", "dir", dir, "anchors", s.game.InstanceAnchorFiles())
	}

	if s.verbose {
		if path, ok := s.game.LatestDescriptor(dir); ok {
			fmt.Fprintln(out, VerboseStyle.Render("descriptor: "+path))
		}
	}

	version, ok := s.game.DetectVersion(dir)
	if !ok && !follow {
		return c.app.fail(s, issue.NewErrorContext().
			WithOperation("detect game version").
			WithResource(dir).
			WithIssue(issue.VersionNotDetectedId).
			Wrap(errors.New("no readable build descriptor")).
			BuildError())
	}
	if !follow {
		fmt.Fprintln(out, version)
		return nil
	}

	printDetected(out, version, ok)
	return watchDetect(cmd.Context(), c, s, dir, out)
}

// watchDetect reports the detected build after every descriptor change until
// ctx is cancelled.
func watchDetect(ctx context.Context, c *cli, s *session, dir string, out io.Writer) error {
	w, err := watch.New(watch.Config{
		InstallRoot: dir,
		Logger:      s.logger,
		OnChange: func(context.Context, []string) error {
			version, ok := s.game.DetectVersion(dir)
			printDetected(out, version, ok)
			return nil
		},
	})
	if err != nil {
		return c.app.fail(s, issue.NewErrorContext().
			WithOperation("watch game installation").
			WithResource(dir).
			WithIssue(issue.GameNotFoundId).
			Wrap(err).
			BuildError())
	}

	s.logger.Info("watching for build changes", "dir", w.Root())
	return w.Run(ctx)
}

func printDetected(out io.Writer, version fmt.Stringer, ok bool) {
	if !ok {
		fmt.Fprintln(out, WarningStyle.Render("no build detected"))
		return
	}
	fmt.Fprintln(out, version)
}
