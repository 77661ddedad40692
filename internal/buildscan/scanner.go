// SPDX-License-Identifier: MPL-2.0

package buildscan

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kittenmods/ksatool/pkg/gameversion"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// DescriptorPattern selects build descriptor files inside VersionsDir.
	DescriptorPattern = "*.json"

	// buildField is the descriptor key holding the build identifier.
	buildField = "build"
)

// utf8BOM prefixes descriptors written by Windows tools.
var utf8BOM = []byte("\xef\xbb\xbf")

// VersionsDir is the descriptor directory relative to an installation root.
var VersionsDir = filepath.Join("content", "Versions")

type (
	// Scanner locates and reads build descriptors. It holds no state between
	// calls; every DetectVersion re-reads the filesystem.
	Scanner struct {
		fs     afero.Fs
		logger *log.Logger
	}

	// Option configures a Scanner.
	Option func(*Scanner)
)

// WithLogger attaches a logger used for debug tracing of descriptor selection.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner reading from fsys. A nil fsys reads the host filesystem.
func New(fsys afero.Fs, opts ...Option) *Scanner {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	s := &Scanner{fs: fsys}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetectVersion returns the build of the installation at installRoot.
// The boolean is false when no descriptor exists or the newest one does not
// carry a parseable build.
func (s *Scanner) DetectVersion(installRoot string) (gameversion.Version, bool) {
	path, ok := s.LatestDescriptor(installRoot)
	if !ok {
		return gameversion.Version{}, false
	}

	build, ok := s.readBuild(path)
	if !ok {
		return gameversion.Version{}, false
	}

	v, ok := gameversion.TryParse(build)
	if !ok {
		s.debug("build field is not a version", "path", path, "build", build)
		return gameversion.Version{}, false
	}
	return v, true
}

// LatestDescriptor returns the path of the most recently modified descriptor
// under installRoot. Files sharing the newest UTC modification time are
// resolved in favor of the lexically smallest file name.
func (s *Scanner) LatestDescriptor(installRoot string) (string, bool) {
	dir := filepath.Join(installRoot, VersionsDir)

	info, err := s.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		s.debug("versions directory not present", "dir", dir)
		return "", false
	}

	// afero.ReadDir returns entries sorted by name, which fixes the tie-break.
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.debug("versions directory unreadable", "dir", dir, "err", err)
		return "", false
	}

	var latest os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(DescriptorPattern, entry.Name()); !matched {
			continue
		}
		if latest == nil || entry.ModTime().UTC().After(latest.ModTime().UTC()) {
			latest = entry
		}
	}

	if latest == nil {
		s.debug("no build descriptors", "dir", dir)
		return "", false
	}

	path := filepath.Join(dir, latest.Name())
	s.debug("selected build descriptor", "path", path, "modified", latest.ModTime().UTC())
	return path, true
}

// readBuild extracts the build field from a descriptor. String values are
// returned as-is and numeric values by their literal text; anything else,
// including read and syntax errors, yields false.
func (s *Scanner) readBuild(path string) (string, bool) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.debug("descriptor unreadable", "path", path, "err", err)
		return "", false
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var descriptor map[string]json.RawMessage
	if err := json.Unmarshal(data, &descriptor); err != nil {
		s.debug("descriptor is not a JSON object", "path", path, "err", err)
		return "", false
	}

	raw, ok := descriptor[buildField]
	if !ok {
		s.debug("descriptor has no build field", "path", path)
		return "", false
	}

	var build string
	if err := json.Unmarshal(raw, &build); err == nil {
		return build, true
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil && number != "" {
		return number.String(), true
	}

	s.debug("build field is not a string", "path", path)
	return "", false
}

func (s *Scanner) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
