// SPDX-License-Identifier: MPL-2.0

package game

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// InstalledMods lists the mod folders in the primary mod directory of
// inst, in name order. Stock folders and reserved directories are skipped.
func (g *KSA) InstalledMods(inst Instance) ([]string, error) {
	modDir := filepath.Join(inst.GameDir, PrimaryModDirectoryRelative)

	entries, err := afero.ReadDir(g.fs, modDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mod directory %s: %w", modDir, err)
	}

	mods := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if slices.Contains(stockFolders, path.Join(PrimaryModDirectoryRelative, entry.Name())) {
			continue
		}
		if g.IsReservedDirectory(inst, filepath.Join(modDir, entry.Name())) {
			continue
		}
		mods = append(mods, entry.Name())
	}
	return mods, nil
}
