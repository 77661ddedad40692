// SPDX-License-Identifier: MPL-2.0

// Command ksatool detects Kitten Space Agency builds and manages the list of
// known game versions.
package main

import cmd "github.com/kittenmods/ksatool/cmd/ksatool"

func main() {
	cmd.Execute()
}
