// SPDX-License-Identifier: MPL-2.0

// Package platform holds host-specific facts ksatool needs when it talks
// about a game installation: OS names and the application sandbox, if any,
// that a launch command has to escape.
package platform
