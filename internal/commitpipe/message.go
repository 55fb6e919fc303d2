// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package commitpipe

import "strings"

// Prettify strips `#`-prefixed comment lines and trims trailing whitespace,
// matching `git commit`'s own cleanup of an edited commit message (spec
// §4.J step 2).
func Prettify(message string) string {
	lines := strings.Split(message, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), " \t\n\r")
}
