// SPDX-License-Identifier: MPL-2.0

package game

import (
	"fmt"

	"github.com/kittenmods/ksatool/internal/catalog"
	"github.com/kittenmods/ksatool/pkg/gameversion"
)

// DetectVersion returns the build installed in gameDir.
func (g *KSA) DetectVersion(gameDir string) (gameversion.Version, bool) {
	return g.scanner.DetectVersion(gameDir)
}

// LatestDescriptor returns the descriptor DetectVersion reads for gameDir.
func (g *KSA) LatestDescriptor(gameDir string) (string, bool) {
	return g.scanner.LatestDescriptor(gameDir)
}

// KnownVersions returns every known build: the cached download if present,
// otherwise the bundled dataset. The list is read once per adapter.
func (g *KSA) KnownVersions() []gameversion.Version {
	return g.catalog.KnownVersions()
}

// EmbeddedGameVersions returns the builds in the bundled dataset, the same
// file KnownVersions falls back to.
func (g *KSA) EmbeddedGameVersions() []gameversion.Version {
	data, ok := g.bundledSource().Read()
	if !ok {
		return []gameversion.Version{}
	}
	return catalog.ParseBuildsJSON(data)
}

// ParseBuildsJSON converts a builds document, dropping invalid entries.
func (g *KSA) ParseBuildsJSON(data []byte) []gameversion.Version {
	return catalog.ParseBuildsJSON(data)
}

// DefaultCompatibleVersions returns the versions a new instance accepts in
// addition to its installed build. KSA builds are not yet versioned in a way
// mods can target, so every build is accepted.
func (g *KSA) DefaultCompatibleVersions(gameversion.Version) []gameversion.Version {
	return []gameversion.Version{gameversion.Any()}
}

// ImportBuilds parses a builds document and stores its versions as the cache
// file. Adapters whose KnownVersions has already run keep their loaded list.
func (g *KSA) ImportBuilds(data []byte) ([]gameversion.Version, error) {
	if g.dataDir == "" {
		return nil, ErrNoDataDir
	}

	versions := catalog.ParseBuildsJSON(data)
	if len(versions) == 0 {
		return nil, ErrNoBuilds
	}

	if err := catalog.WriteCache(g.fs, g.CachePath(), versions); err != nil {
		return nil, fmt.Errorf("failed to import builds: %w", err)
	}
	g.logger.Debug("builds imported", "path", g.CachePath(), "versions", len(versions))
	return versions, nil
}

func (g *KSA) bundledSource() catalog.EmbeddedSource {
	return catalog.EmbeddedSource{FS: g.bundled, Name: catalog.BundledBuildsFile}
}

func (g *KSA) versionSources() []catalog.Source {
	sources := make([]catalog.Source, 0, 3)
	if path := g.CachePath(); path != "" {
		sources = append(sources, catalog.FileSource{Fs: g.fs, Path: path})
	}
	return append(sources, g.bundledSource(), catalog.EmptySource{})
}

