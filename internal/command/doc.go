// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package command defines the CLI command set for dr-rds-share-snapshot.
// It wires flags, validators, and actions for the share and copy
// subcommands.
package command
