// SPDX-License-Identifier: MPL-2.0

// Package game describes Kitten Space Agency to the rest of ksatool.
//
// A KSA value bundles the static facts about the game (short name, anchor
// files, stock folders, metadata URLs) with the three version services:
// detecting the installed build, listing every known build, and converting
// builds documents. The services are delegated to buildscan and catalog;
// this package only decides which files they read.
package game
