//go:build !windows

// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package hooks

import "io/fs"

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
