// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package asyncjob

// BasicAuth holds HTTP(S) basic-auth credentials for fetch/push jobs.
type BasicAuth struct {
	Username string
	Password string
}

// SigningKey holds a raw SSH private key used to sign commits (spec §5
// "SSH signing key"; wired through to internal/commitpipe's use of
// golang.org/x/crypto/ssh).
type SigningKey struct {
	Raw []byte
}

// Credentials is an immutable bundle of optional auth material a job may
// need (spec §4.F: "optional basic-auth plus optional SSH signing key,
// immutable after construction"). Both fields may be nil.
type Credentials struct {
	Basic   *BasicAuth
	Signing *SigningKey
}

// NewCredentials copies basic and signing into a new immutable bundle; the
// caller's originals may be discarded or mutated afterward without effect.
func NewCredentials(basic *BasicAuth, signing *SigningKey) Credentials {
	var c Credentials
	if basic != nil {
		b := *basic
		c.Basic = &b
	}
	if signing != nil {
		raw := make([]byte, len(signing.Raw))
		copy(raw, signing.Raw)
		c.Signing = &SigningKey{Raw: raw}
	}
	return c
}
