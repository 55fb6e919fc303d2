// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package wizard

import "errors"

// ValidateCommitMessage rejects an empty commit message, mirroring the
// teacher's wizard validators (pkg/wizard/validators.go): plain functions
// a huh field's Validate hook calls, kept separate so they're testable
// without driving the interactive form.
func ValidateCommitMessage(s string) error {
	if s == "" {
		return errors.New("commit message cannot be empty")
	}
	return nil
}
