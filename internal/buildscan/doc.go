// SPDX-License-Identifier: MPL-2.0

// Package buildscan detects the installed game build by inspecting the build
// descriptor files shipped inside an installation.
//
// The game writes one JSON descriptor per build into <root>/content/Versions.
// The newest descriptor (by modification time) names the running build in its
// "build" field. Every failure along the way, including a missing directory,
// unreadable files or malformed JSON, is reported as "not found" rather than
// as an error.
package buildscan
