//go:build windows

// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package hooks

import "io/fs"

// Windows does not model Unix execute bits; any regular file is considered
// executable (spec §4.G).
func isExecutable(_ fs.FileInfo) bool {
	return true
}
