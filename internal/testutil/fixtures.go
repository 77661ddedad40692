// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// DescriptorTime is the reference modification time used by fixtures.
// Offsets from it keep ordering tests independent of the wall clock.
var DescriptorTime = time.Date(2025, 11, 14, 12, 0, 0, 0, time.UTC)

// WriteFile writes content to path on fsys, creating parent directories, and
// sets its modification time to mtime.
func WriteFile(t testing.TB, fsys afero.Fs, path, content string, mtime time.Time) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := fsys.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set times on %s: %v", path, err)
	}
}

// WriteDescriptor writes a build descriptor {"build": build} named name into
// the content/Versions directory of installRoot and returns its path.
func WriteDescriptor(t testing.TB, fsys afero.Fs, installRoot, name, build string, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(installRoot, "content", "Versions", name)
	WriteFile(t, fsys, path, fmt.Sprintf(`{"build": %q, "channel": "release"}`, build), mtime)
	return path
}
