// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package hooks

import "strings"

// PrePushRef is one ref update line fed to the pre-push hook's stdin
// (spec §3, §6). A missing oid renders as forty zeros.
type PrePushRef struct {
	LocalRef  string
	LocalOid  string // empty means "missing" (create/delete)
	RemoteRef string
	RemoteOid string
}

const zeroOid = "0000000000000000000000000000000000000000"

func formatOid(oid string) string {
	if oid == "" {
		return zeroOid
	}
	return oid
}

// Line renders one pre-push stdin line, "<local-ref> <local-oid> <remote-ref> <remote-oid>",
// without the trailing newline (PrePushStdin adds it).
func (r PrePushRef) Line() string {
	return r.LocalRef + " " + formatOid(r.LocalOid) + " " + r.RemoteRef + " " + formatOid(r.RemoteOid)
}

// PrePushStdin builds the full stdin payload for a pre-push hook run.
func PrePushStdin(updates []PrePushRef) []byte {
	var b strings.Builder
	for _, u := range updates {
		b.WriteString(u.Line())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// PrePushArgs builds the argv for a pre-push hook: remote name and URL. If
// remote is empty, the URL is passed for both (spec §6).
func PrePushArgs(remote, url string) []string {
	if remote == "" {
		return []string{url, url}
	}
	return []string{remote, url}
}
