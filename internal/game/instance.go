// SPDX-License-Identifier: MPL-2.0

package game

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kittenmods/ksatool/pkg/platform"

	"github.com/spf13/afero"
)

// Instance is a game directory managed by ksatool.
type Instance struct {
	GameDir  string
	StateDir string
}

// NewInstance returns the Instance rooted at gameDir with ksatool's state
// kept in its default subdirectory.
func NewInstance(gameDir string) Instance {
	return Instance{
		GameDir:  gameDir,
		StateDir: filepath.Join(gameDir, StateDirName),
	}
}

// GameInFolder reports whether dir contains any instance anchor file.
func (g *KSA) GameInFolder(dir string) bool {
	for _, anchor := range instanceAnchorFiles {
		if ok, err := afero.Exists(g.fs, filepath.Join(dir, anchor)); err == nil && ok {
			return true
		}
	}
	return false
}

// PrimaryModDirectory returns the normalized mod directory of gameDir.
func (g *KSA) PrimaryModDirectory(gameDir string) string {
	return normalizePath(filepath.Join(gameDir, PrimaryModDirectoryRelative))
}

// IsReservedDirectory reports whether path is one of the directories that
// mods must never be installed into or removed: the game directory itself,
// ksatool's state directory and the primary mod directory.
func (g *KSA) IsReservedDirectory(inst Instance, path string) bool {
	p := normalizePath(path)
	return p == normalizePath(inst.GameDir) ||
		p == normalizePath(inst.StateDir) ||
		p == g.PrimaryModDirectory(inst.GameDir)
}

// DefaultCommandLines returns the command lines that start the game in
// gameDir. On macOS the app bundle executable is used when gameDir contains
// it; otherwise the Unix form applies. Inside a Flatpak or Snap sandbox the
// command is wrapped to run on the host.
func (g *KSA) DefaultCommandLines(gameDir string) []string {
	var argv []string
	switch {
	case g.goos == platform.Darwin && g.hasMacBundle(gameDir):
		argv = []string{macExecutable}
	case platform.IsUnix(g.goos):
		argv = []string{"./" + g.launchAnchor(gameDir), "-single-instance"}
	default:
		argv = []string{g.launchAnchor(gameDir), "-single-instance"}
	}
	return []string{strings.Join(platform.HostCommand(g.sandbox, argv), " ")}
}

func (g *KSA) hasMacBundle(gameDir string) bool {
	ok, err := afero.Exists(g.fs, filepath.Join(gameDir, filepath.FromSlash(macExecutable)))
	return err == nil && ok
}

// launchAnchor picks the first anchor file present in gameDir, falling back
// to the first anchor when none is.
func (g *KSA) launchAnchor(gameDir string) string {
	for _, anchor := range instanceAnchorFiles {
		if ok, err := afero.Exists(g.fs, filepath.Join(gameDir, anchor)); err == nil && ok {
			return anchor
		}
	}
	return instanceAnchorFiles[0]
}

// LogLoadedMods reports the mods that will be active for the next game start.
func (g *KSA) LogLoadedMods(names []string) {
	g.logger.Info(fmt.Sprintf("Loaded %s mods:", ShortName))
	for _, name := range names {
		g.logger.Info("   " + name)
	}
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
