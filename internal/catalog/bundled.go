// SPDX-License-Identifier: MPL-2.0

package catalog

import "embed"

// BundledBuildsFile names the Kitten Space Agency builds document packaged in
// Bundled. Game adapters bind their known-version fallback and their embedded
// version list to this one name.
const BundledBuildsFile = "builds-ksa.json"

// Bundled holds the builds documents shipped inside the binary.
//
//go:embed builds-ksa.json
var Bundled embed.FS
