// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package output renders the end-of-run report in text, json, or yaml.
package output
