// SPDX-License-Identifier: MPL-2.0

package gameversion

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const (
	// AnyString is the textual form of the wildcard version.
	AnyString = "any"

	// MaxComponents is the number of dotted components a build number may carry.
	MaxComponents = 4
)

// versionRegex matches major[.minor[.patch[.build]]] with an optional "v" prefix.
var versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?$`)

// Version is a parsed game build version.
//
// The zero value is not a valid version; use IsZero to detect it.
type Version struct {
	parts   [MaxComponents]int
	defined int
	any     bool
}

// Any returns the wildcard version.
func Any() Version {
	return Version{any: true}
}

// Parse parses a version string such as "1.2", "2025.11.14.2641" or "any".
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, AnyString) {
		return Any(), nil
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return Version{}, &InvalidVersionError{Value: s}
	}

	var v Version
	for i, m := range matches[1:] {
		if m == "" {
			break
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return Version{}, &InvalidVersionError{Value: s, Reason: "component " + strconv.Itoa(i+1) + " out of range"}
		}
		v.parts[i] = n
		v.defined++
	}

	return v, nil
}

// TryParse parses s and reports whether it was a valid version.
func TryParse(s string) (Version, bool) {
	v, err := Parse(s)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// MustParse is like Parse but panics on invalid input. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsAny reports whether v is the wildcard version.
func (v Version) IsAny() bool { return v.any }

// IsZero reports whether v is the zero value (neither a build number nor the wildcard).
func (v Version) IsZero() bool { return !v.any && v.defined == 0 }

// Major returns the first component and whether it is defined.
func (v Version) Major() (int, bool) { return v.component(0) }

// Minor returns the second component and whether it is defined.
func (v Version) Minor() (int, bool) { return v.component(1) }

// Patch returns the third component and whether it is defined.
func (v Version) Patch() (int, bool) { return v.component(2) }

// Build returns the fourth component and whether it is defined.
func (v Version) Build() (int, bool) { return v.component(3) }

func (v Version) component(i int) (int, bool) {
	if i >= v.defined {
		return 0, false
	}
	return v.parts[i], true
}

// String returns the canonical text form: "any" for the wildcard, otherwise
// the defined components joined by dots. The zero value renders as "".
func (v Version) String() string {
	if v.any {
		return AnyString
	}

	var sb strings.Builder
	for i := range v.defined {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(v.parts[i]))
	}
	return sb.String()
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to or
// after other. Components are compared left to right and an undefined component
// sorts before any defined one, so "1.2" < "1.2.0". The wildcard compares equal
// to everything.
func (v Version) Compare(other Version) int {
	if v.any || other.any {
		return 0
	}

	for i := range MaxComponents {
		a, aok := v.component(i)
		b, bok := other.component(i)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Equal reports whether v and other compare equal. The wildcard equals every
// version, including the zero Version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Compatible reports whether other satisfies v. The wildcard on either side is
// compatible with anything; otherwise every component defined in v must be
// present and equal in other, so "1.2" accepts "1.2.7" but not "1.3".
func (v Version) Compatible(other Version) bool {
	if v.any || other.any {
		return true
	}
	if v.IsZero() || other.IsZero() {
		return false
	}

	for i := range v.defined {
		b, ok := other.component(i)
		if !ok || b != v.parts[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalJSON accepts a JSON string or a JSON number. Numbers are read
// through their literal text so that a bare 2641 decodes as build "2641".
func (v *Version) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return &InvalidVersionError{Value: string(trimmed), Reason: "expected a string or number"}
		}
		return v.UnmarshalText([]byte(n.String()))
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return &InvalidVersionError{Value: string(trimmed), Reason: err.Error()}
	}
	return v.UnmarshalText([]byte(s))
}
