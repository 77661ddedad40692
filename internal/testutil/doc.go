// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv,
// MustUnsetenv, SetHomeDir) and game installation fixtures built on afero
// (WriteDescriptor, WriteFile) so scanner and catalog tests can run against an
// in-memory filesystem with controlled modification times.
package testutil
