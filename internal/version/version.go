// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version string.
package version

// Version is overridden at build time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
