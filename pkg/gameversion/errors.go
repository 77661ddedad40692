// SPDX-License-Identifier: MPL-2.0

package gameversion

import (
	"errors"
	"fmt"
)

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid game version")

// InvalidVersionError is returned when a string cannot be parsed into a Version.
type InvalidVersionError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid game version %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid game version %q", e.Value)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
