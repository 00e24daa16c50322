// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements the RDS snapshot lifecycle used by both
// commands: instance selection, re-encrypting copies, cross-account sharing,
// availability waiting, and retention pruning.
package snapshot
