// SPDX-License-Identifier: MPL-2.0

package game

import "errors"

var (
	// ErrNoBuilds is returned when an imported builds document yields no
	// usable version.
	ErrNoBuilds = errors.New("builds document contains no valid versions")

	// ErrNoDataDir is returned when an operation needs the data directory but
	// the adapter was created without one.
	ErrNoDataDir = errors.New("no data directory configured")
)
