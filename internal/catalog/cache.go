// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/kittenmods/ksatool/pkg/gameversion"

	"github.com/spf13/afero"
)

// WriteCache stores versions at path as a JSON array of version strings, the
// shape FileSource reads back. The file is written to a temporary sibling and
// renamed into place so a concurrent reader never observes a partial file.
func WriteCache(fsys afero.Fs, path string, versions []gameversion.Version) (err error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	entries := make([]string, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, v.String())
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version cache: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := afero.TempFile(fsys, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write version cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write version cache: %w", err)
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace version cache: %w", err)
	}
	return nil
}
