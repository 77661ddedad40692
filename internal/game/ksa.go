// SPDX-License-Identifier: MPL-2.0

package game

import (
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/kittenmods/ksatool/internal/buildscan"
	"github.com/kittenmods/ksatool/internal/catalog"
	"github.com/kittenmods/ksatool/pkg/platform"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// ShortName is the abbreviation used in metadata and logs.
	ShortName = "KSA"

	// PrimaryModDirectoryRelative is where mods are installed, relative to
	// the game directory.
	PrimaryModDirectoryRelative = "Content"

	// CompatibleVersionsFile stores the user's extra compatible versions
	// inside an instance.
	CompatibleVersionsFile = "compatible_ksa_versions.json"

	// CacheFileName is the downloaded builds list inside the data directory.
	CacheFileName = "builds-ksa.json"

	// StateDirName is ksatool's own directory inside a game directory.
	StateDirName = "ksatool"

	// DefaultRepositoryURL is the metadata archive for KSA mods.
	DefaultRepositoryURL = "https://github.com/KSP-CKAN/KSA-CKAN-meta/archive/main.tar.gz"
	// RepositoryListURL lists alternative metadata repositories.
	RepositoryListURL = "https://raw.githubusercontent.com/KSP-CKAN/KSA-CKAN-meta/main/repositories.json"
	// MetadataBugtrackerURL is where metadata problems are reported.
	MetadataBugtrackerURL = "https://github.com/KSP-CKAN/KSA-NetKAN/issues/new/choose"
	// ModSupportURL is the community help forum.
	ModSupportURL = "https://forums.ahwoo.com/forums/guides-and-help.19"

	macInstallDir = "/Applications/Kitten Space Agency"
	macExecutable = "./KSA.app/Contents/MacOS/KSA"
)

// FirstReleaseDate is the date of the first public KSA build.
var FirstReleaseDate = time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)

var (
	instanceAnchorFiles = []string{"KSA.exe"}

	stockFolders = []string{
		"Content",
		"Content/Core",
		"Content/Fonts",
		"Content/Sample",
		"Content/Shaders",
		"Content/Versions",
		"cs",
		"de",
		"es",
		"fr",
		"it",
		"ja",
		"ko",
		"pl",
		"pt-BR",
		"ru",
		"tr",
		"zh-Hans",
		"zh-Hant",
	}
)

type (
	// Options configures a KSA adapter. Zero values select the host
	// filesystem, the bundled dataset and the current OS.
	Options struct {
		Fs      afero.Fs
		DataDir string
		Bundled fs.FS
		Logger  *log.Logger
		GOOS    string
		Sandbox platform.SandboxType
	}

	// KSA is the Kitten Space Agency game adapter.
	KSA struct {
		fs      afero.Fs
		dataDir string
		bundled fs.FS
		logger  *log.Logger
		goos    string
		sandbox platform.SandboxType
		scanner *buildscan.Scanner
		catalog *catalog.Catalog
	}
)

// New creates a KSA adapter. The known-version catalog is built here but not
// read until KnownVersions is first called.
func New(opts Options) *KSA {
	g := &KSA{
		fs:      opts.Fs,
		dataDir: opts.DataDir,
		bundled: opts.Bundled,
		logger:  opts.Logger,
		goos:    opts.GOOS,
		sandbox: opts.Sandbox,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.bundled == nil {
		g.bundled = catalog.Bundled
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.goos == "" {
		g.goos = runtime.GOOS
	}

	g.scanner = buildscan.New(g.fs, buildscan.WithLogger(g.logger))
	g.catalog = catalog.New(g.versionSources(), catalog.WithLogger(g.logger))
	return g
}

// InstanceAnchorFiles lists files whose presence marks a game directory.
func (g *KSA) InstanceAnchorFiles() []string { return slices.Clone(instanceAnchorFiles) }

// StockFolders lists directories shipped with the game, relative to the
// game directory and separated by "/".
func (g *KSA) StockFolders() []string { return slices.Clone(stockFolders) }

// CachePath returns the location of the downloaded builds list, or "" when
// the adapter has no data directory.
func (g *KSA) CachePath() string {
	if g.dataDir == "" {
		return ""
	}
	return filepath.Join(g.dataDir, CacheFileName)
}

// DefaultInstallDir returns the conventional install location on hosts that
// have one. Only macOS does.
func (g *KSA) DefaultInstallDir() (string, bool) {
	if g.goos != platform.Darwin {
		return "", false
	}
	if ok, err := afero.DirExists(g.fs, macInstallDir); err != nil || !ok {
		return "", false
	}
	return macInstallDir, true
}
