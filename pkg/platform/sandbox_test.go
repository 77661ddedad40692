// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	missing := func(string) error { return fs.ErrNotExist }
	present := func(string) error { return nil }
	noEnv := func(string) string { return "" }
	snapEnv := func(key string) string {
		if key == "SNAP_NAME" {
			return "ksatool"
		}
		return ""
	}

	tests := []struct {
		name string
		env  func(string) string
		stat func(string) error
		want SandboxType
	}{
		{"no sandbox", noEnv, missing, SandboxNone},
		{"flatpak", noEnv, present, SandboxFlatpak},
		{"snap", snapEnv, missing, SandboxSnap},
		{"flatpak wins over snap", snapEnv, present, SandboxFlatpak},
		{"stat error other than not-exist", noEnv, func(string) error { return errors.New("denied") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := detectSandboxFrom(tt.env, tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSandbox_Cached(t *testing.T) {
	t.Parallel()

	if first, second := DetectSandbox(), DetectSandbox(); first != second {
		t.Errorf("DetectSandbox() changed between calls: %q then %q", first, second)
	}
}

func TestHostCommand(t *testing.T) {
	t.Parallel()

	argv := []string{"./KSA.exe", "-single-instance"}

	tests := []struct {
		st   SandboxType
		want []string
	}{
		{SandboxNone, argv},
		{SandboxFlatpak, []string{"flatpak-spawn", "--host", "./KSA.exe", "-single-instance"}},
		{SandboxSnap, []string{"snap", "run", "--shell", "./KSA.exe", "-single-instance"}},
		{SandboxType("unknown"), argv},
	}

	for _, tt := range tests {
		if got := HostCommand(tt.st, argv); !slices.Equal(got, tt.want) {
			t.Errorf("HostCommand(%q) = %v, want %v", tt.st, got, tt.want)
		}
	}
}

func TestIsUnix(t *testing.T) {
	t.Parallel()

	if IsUnix(Windows) {
		t.Error("IsUnix(windows) = true")
	}
	for _, goos := range []string{Linux, Darwin, "freebsd"} {
		if !IsUnix(goos) {
			t.Errorf("IsUnix(%q) = false", goos)
		}
	}
}
