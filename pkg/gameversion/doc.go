// SPDX-License-Identifier: MPL-2.0

// Package gameversion implements the game build version value used across ksatool.
//
// A Version is either a dotted build number with one to four components
// (major[.minor[.patch[.build]]]) or the wildcard "any", which is compatible
// with every other version. Versions are plain comparable values: they can be
// used as map keys and compared with ==.
package gameversion
