// SPDX-License-Identifier: MPL-2.0

// Package issue provides ksatool's user-facing error reporting.
//
// Issues are Markdown help pages keyed by Id and rendered with glamour when a
// command fails in a way the user can fix. ActionableError carries the
// operation, the resource and suggestions for errors that are printed inline.
package issue
