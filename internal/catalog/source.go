// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"io/fs"

	"github.com/spf13/afero"
)

type (
	// Source supplies raw catalog content. Read reports false when the source
	// is absent, which lets the catalog move on to the next source.
	Source interface {
		Read() ([]byte, bool)
		String() string
	}

	// FileSource reads a file such as the user's cache. A missing or
	// unreadable file is absent, and so is a directory at Path.
	FileSource struct {
		Fs   afero.Fs
		Path string
	}

	// EmbeddedSource reads a dataset packaged with the program.
	EmbeddedSource struct {
		FS   fs.FS
		Name string
	}

	// EmptySource is always present and always empty. It terminates a chain
	// so that the catalog resolves even when every real source is missing.
	EmptySource struct{}
)

// Read implements Source.
func (s FileSource) Read() ([]byte, bool) {
	fsys := s.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	info, err := fsys.Stat(s.Path)
	if err != nil || info.IsDir() {
		return nil, false
	}

	data, err := afero.ReadFile(fsys, s.Path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// String implements fmt.Stringer.
func (s FileSource) String() string { return "file " + s.Path }

// Read implements Source.
func (s EmbeddedSource) Read() ([]byte, bool) {
	if s.FS == nil {
		return nil, false
	}

	data, err := fs.ReadFile(s.FS, s.Name)
	if err != nil {
		return nil, false
	}
	return data, true
}

// String implements fmt.Stringer.
func (s EmbeddedSource) String() string { return "bundled " + s.Name }

// Read implements Source.
func (EmptySource) Read() ([]byte, bool) { return []byte{}, true }

// String implements fmt.Stringer.
func (EmptySource) String() string { return "empty" }
