// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/kittenmods/ksatool/internal/testutil"
	"github.com/kittenmods/ksatool/pkg/platform"
)

// These tests mutate package-level overrides and the environment, so they
// do not run in parallel.

func TestDirOverrides(t *testing.T) {
	t.Cleanup(Reset)

	SetConfigDirOverride("/override/config")
	SetDataDirOverride("/override/data")

	if got, _ := ConfigDir(); got != "/override/config" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got, _ := DataDir(); got != "/override/data" {
		t.Errorf("DataDir() = %q", got)
	}
	if got, _ := ResolvedDataDir(DefaultConfig()); got != "/override/data" {
		t.Errorf("ResolvedDataDir(defaults) = %q", got)
	}

	Reset()
	if got, _ := ConfigDir(); got == "/override/config" {
		t.Error("Reset() did not clear the config dir override")
	}
}

func TestXDGDirs(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG directories apply to Linux and other Unix systems")
	}
	t.Cleanup(Reset)
	Reset()

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	if got, _ := ConfigDir(); got != filepath.Join("/xdg/config", AppName) {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got, _ := DataDir(); got != filepath.Join("/xdg/data", AppName) {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestXDGFallbackToHome(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG directories apply to Linux and other Unix systems")
	}
	t.Cleanup(Reset)
	Reset()

	t.Cleanup(testutil.SetHomeDir(t, "/home/kitten"))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_DATA_HOME"))

	if got, _ := ConfigDir(); got != "/home/kitten/.config/ksatool" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got, _ := DataDir(); got != "/home/kitten/.local/share/ksatool" {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestDataDirFor(t *testing.T) {
	t.Parallel()

	home := func() (string, error) { return "/home/kitten", nil }
	env := func(vars map[string]string) func(string) string {
		return func(key string) string { return vars[key] }
	}

	tests := []struct {
		name string
		goos string
		vars map[string]string
		want string
	}{
		{
			name: "windows roaming appdata",
			goos: platform.Windows,
			vars: map[string]string{"APPDATA": `C:\Users\kitten\AppData\Roaming`, "LOCALAPPDATA": `C:\Users\kitten\AppData\Local`},
			want: filepath.Join(`C:\Users\kitten\AppData\Roaming`, AppName),
		},
		{
			name: "windows without APPDATA",
			goos: platform.Windows,
			vars: map[string]string{"USERPROFILE": `C:\Users\kitten`},
			want: filepath.Join(`C:\Users\kitten`, "AppData", "Roaming", AppName),
		},
		{
			name: "darwin",
			goos: platform.Darwin,
			want: filepath.Join("/home/kitten", "Library", "Application Support", AppName),
		},
		{
			name: "linux XDG",
			goos: platform.Linux,
			vars: map[string]string{"XDG_DATA_HOME": "/xdg/data"},
			want: filepath.Join("/xdg/data", AppName),
		},
		{
			name: "linux default",
			goos: platform.Linux,
			want: filepath.Join("/home/kitten", ".local", "share", AppName),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dataDirFor(tt.goos, env(tt.vars), home)
			if err != nil {
				t.Fatalf("dataDirFor() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("dataDirFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataDirFor_NoHome(t *testing.T) {
	t.Parallel()

	noHome := func() (string, error) { return "", errors.New("no home") }
	if _, err := dataDirFor(platform.Linux, func(string) string { return "" }, noHome); err == nil {
		t.Error("dataDirFor() should fail without a home directory")
	}
}
