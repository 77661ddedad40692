// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsUnix reports whether goos launches programs through a POSIX shell path
// such as ./KSA.exe.
func IsUnix(goos string) bool {
	return goos != Windows
}
