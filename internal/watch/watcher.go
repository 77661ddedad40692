// SPDX-License-Identifier: MPL-2.0

// Package watch follows a game installation's version descriptors and fires a
// debounced callback when they change.
//
// Only the descriptor directory and its ancestors inside the installation are
// registered with fsnotify, so a patch that recreates content/Versions is seen
// without watching the whole game tree. Events inside the debounce window are
// coalesced so the callback fires once with the full set of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period before the callback fires. Game
// launchers rewrite several descriptors in quick succession during an update.
const defaultDebounce = 500 * time.Millisecond

// ErrAlreadyStarted is returned when Run is called a second time.
var ErrAlreadyStarted = errors.New("watch: Run called more than once")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// InstallRoot is the game installation directory. It must exist.
		InstallRoot string

		// Dirs are the directories, relative to InstallRoot, to register.
		// Missing directories are added when they are created later, as long
		// as their parent is registered. Empty means DefaultDirs.
		Dirs []string

		// Patterns are doublestar glob patterns, relative to InstallRoot, that
		// select which paths trigger callbacks. Empty means DefaultPatterns.
		Patterns []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values fall back to 500ms.
		Debounce time.Duration

		// OnChange is called after the debounce window closes with the sorted,
		// deduplicated list of changed paths (slash-separated, relative to
		// InstallRoot). A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives diagnostics. nil discards them.
		Logger *log.Logger
	}

	// Watcher monitors the descriptor directory of one installation. Run must
	// be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		root     string
		dirs     []string
		patterns []string
		debounce time.Duration
		logger   *log.Logger
		started  atomic.Bool
	}
)

// DefaultDirs returns the directories watched when Config.Dirs is empty.
func DefaultDirs() []string {
	return []string{".", "content", "content/Versions"}
}

// DefaultPatterns returns the patterns used when Config.Patterns is empty.
// The descriptor directory itself is included so its removal or creation is
// reported.
func DefaultPatterns() []string {
	return []string{"content/Versions", "content/Versions/*.json"}
}

// New creates a Watcher for cfg.InstallRoot and registers every configured
// directory that already exists.
func New(cfg Config) (*Watcher, error) {
	if cfg.InstallRoot == "" {
		return nil, errors.New("watch: install root is required")
	}
	root, err := filepath.Abs(cfg.InstallRoot)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve install root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", root)
	}

	dirs := cfg.Dirs
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pat)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		dirs:     normalizeDirs(dirs),
		patterns: patterns,
		debounce: debounce,
		logger:   logger,
	}

	for _, rel := range w.dirs {
		w.maybeAddDir(filepath.Join(root, filepath.FromSlash(rel)))
	}
	if len(w.fsw.WatchList()) == 0 {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close watcher after init failure", "err", closeErr)
		}
		return nil, fmt.Errorf("watch: nothing to watch under %s", root)
	}

	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
		stopped atomic.Bool
	)

	// fire may run after Run has returned because it is scheduled with
	// time.AfterFunc; stopped covers returns on fatal errors, where ctx is
	// still live. Overlapping callbacks are skipped and retried.
	fire := func() {
		if stopped.Load() || ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous callback still running, retrying")
			mu.Lock()
			if timer != nil && !stopped.Load() {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil && !stopped.Load() {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("change callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		stopped.Store(true)
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify watcher", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			// A patch may recreate the descriptor directory; pick it up again.
			if evt.Has(fsnotify.Create) && slices.Contains(w.dirs, rel) {
				w.maybeAddDir(evt.Name)
			}

			if !w.matches(rel) {
				continue
			}
			w.logger.Debug("descriptor event", "path", rel, "op", evt.Op.String())

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// Root returns the absolute installation directory being watched.
func (w *Watcher) Root() string {
	return w.root
}

// maybeAddDir registers path if it is an existing directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("watch directory", "dir", path, "err", err)
	}
}

// matches reports whether rel matches at least one configured pattern.
func (w *Watcher) matches(rel string) bool {
	for _, pat := range w.patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func normalizeDirs(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.ToSlash(filepath.Clean(d)))
	}
	return out
}
