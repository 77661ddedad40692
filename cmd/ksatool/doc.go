// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the ksatool command-line interface.
//
// The Cobra command tree is built by NewRootCommand around an App, the
// composition root that owns configuration loading, the filesystem and the
// output streams. Execute runs the tree through fang.
package cmd
