// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kittenmods/ksatool/internal/config"
	"github.com/kittenmods/ksatool/internal/game"
	"github.com/kittenmods/ksatool/internal/issue"
	"github.com/kittenmods/ksatool/pkg/platform"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer; every Cobra handler receives the App and builds its
	// per-invocation session from it.
	App struct {
		Config        ConfigProvider
		Fs            afero.Fs
		DetectSandbox func() platform.SandboxType
		stdout        io.Writer
		stderr        io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config        ConfigProvider
		Fs            afero.Fs
		DetectSandbox func() platform.SandboxType
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configFile string
		verbose    bool
	}

	// session is the state a single command invocation works with.
	session struct {
		cfg     *config.Config
		cfgPath string
		opts    config.LoadOptions
		verbose bool
		logger  *log.Logger
		game    *game.KSA
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Config == nil {
		deps.Config = config.NewProviderFs(deps.Fs)
	}
	if deps.DetectSandbox == nil {
		deps.DetectSandbox = platform.DetectSandbox
	}

	return &App{
		Config:        deps.Config,
		Fs:            deps.Fs,
		DetectSandbox: deps.DetectSandbox,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
}

// newSession loads configuration and builds the logger and game adapter.
// A configuration that fails to load is reported as a warning and the
// defaults are used instead, so that commands such as 'config init' still
// work.
func (a *App) newSession(ctx context.Context, flags *globalFlags) *session {
	opts := config.LoadOptions{ConfigFilePath: flags.configFile}

	loaded, err := config.LoadWithPath(ctx, a.Config, opts)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		loaded = config.Loaded{Config: config.DefaultConfig()}
	}
	cfg := loaded.Config

	s := &session{
		cfg:     cfg,
		cfgPath: loaded.Path,
		opts:    opts,
		verbose: flags.verbose || cfg.UI.Verbose,
	}

	level, err := log.ParseLevel(cfg.LogLevel.String())
	if err != nil {
		level = log.InfoLevel
	}
	if s.verbose {
		level = log.DebugLevel
	}
	s.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})

	dataDir, err := config.ResolvedDataDir(cfg)
	if err != nil {
		s.logger.Warn("no data directory; the builds cache is disabled", "err", err)
		dataDir = ""
	}

	s.game = game.New(game.Options{
		Fs:      a.Fs,
		DataDir: dataDir,
		Logger:  s.logger,
		Sandbox: a.DetectSandbox(),
	})
	return s
}

// installDir picks the game directory for commands that take an optional
// directory argument: the argument, then install_dir, then the platform
// default.
func (s *session) installDir(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if s.cfg.InstallDir != "" {
		return s.cfg.InstallDir.String(), nil
	}
	if dir, ok := s.game.DefaultInstallDir(); ok {
		return dir, nil
	}

	return "", issue.NewErrorContext().
		WithOperation("locate the game").
		WithSuggestion("Pass the installation directory as an argument").
		WithSuggestion("Set install_dir in your configuration").
		WithIssue(issue.GameNotFoundId).
		Wrap(errors.New("no installation directory given")).
		BuildError()
}

// issueStyle maps the configured color scheme to a glamour style.
func (s *session) issueStyle() string {
	return s.cfg.UI.ColorScheme.String()
}

// fail renders the help page linked to err, if any, and returns the error
// wrapped in an ExitError with status 1.
func (a *App) fail(s *session, err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if page := ae.HelpPage(); page != nil {
			if rendered, rerr := page.Render(s.issueStyle()); rerr == nil {
				fmt.Fprint(a.stderr, rendered)
			}
		} else if ae.HasSuggestions() {
			fmt.Fprintln(a.stderr, formatErrorForDisplay(ae, s.verbose))
		}
	}
	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
