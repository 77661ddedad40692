// SPDX-License-Identifier: MPL-2.0

// Package catalog provides the list of every game build ksatool knows about.
//
// The list is resolved once per Catalog from an ordered chain of sources
// (normally the user's cache file, then the dataset bundled into the binary).
// The first source that is present wins. Missing, unreadable or malformed
// data never surfaces as an error: the catalog degrades to an empty list.
//
// Two on-disk shapes are understood. The cache file is a JSON array of version
// strings; a builds document is an object {"builds": {"<label>": "<version>"}}.
// ParseBuildsDocument converts the latter, dropping the labels and any entry
// whose version does not parse.
package catalog
