// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"slices"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// INVARIANT: detectSandboxFrom MUST NOT panic; sync.OnceValue re-panics on
// every call after a panicking first call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. The result
// is cached for the lifetime of the process.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostCommand prefixes argv so that it runs on the host rather than inside
// the sandbox st. Outside a sandbox argv is returned unchanged.
func HostCommand(st SandboxType, argv []string) []string {
	var prefix []string
	switch st {
	case SandboxFlatpak:
		prefix = []string{"flatpak-spawn", "--host"}
	case SandboxSnap:
		prefix = []string{"snap", "run", "--shell"}
	case SandboxNone:
		return argv
	default:
		return argv
	}
	return slices.Concat(prefix, argv)
}

// detectSandboxFrom takes its lookups as parameters so tests need not touch
// process-wide state.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// Flatpak takes precedence; /.flatpak-info exists in every Flatpak sandbox.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
