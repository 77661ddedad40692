// SPDX-License-Identifier: MPL-2.0

package config

// Directory overrides for tests. os.UserHomeDir() doesn't reliably respect
// HOME on every platform (e.g., macOS in CI).
var (
	configDirOverride string
	dataDirOverride   string
)

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	dataDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetDataDirOverride sets a custom data directory path.
func SetDataDirOverride(dir string) {
	dataDirOverride = dir
}
