// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package commithelper runs user-defined named shell commands that assist
// composing a commit message (spec §3 CommitHelper, §5 "Supplemented
// features"). Grounded on original_source/src/commit_helpers.rs: commands
// run through a shell (so pipes/redirects/template substitution work,
// unlike the teacher's pkg/hooks.ParseCommand which deliberately forbids
// shell features), using internal/procexec for capture and timeout instead
// of a bare os/exec call.
package commithelper

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gizzahub/asyncgit/internal/procexec"
)

// Helper is one configured commit helper (spec §3 CommitHelper).
type Helper struct {
	Name        string
	ShellCommand string
	Description string
	Hotkey      rune
	TimeoutSecs uint
}

// DefaultTimeout matches the original implementation's 30s default.
const DefaultTimeout = 30 * time.Second

// TemplateContext supplies the values substituted into a helper's
// ShellCommand before it runs.
type TemplateContext struct {
	StagedDiff  string
	StagedFiles []string
	BranchName  string
}

func (c TemplateContext) expand(command string) string {
	replacer := strings.NewReplacer(
		"{staged_diff}", c.StagedDiff,
		"{staged_files}", strings.Join(c.StagedFiles, "\n"),
		"{branch_name}", c.BranchName,
	)
	return replacer.Replace(command)
}

// FindByHotkey returns the index of the helper bound to the given hotkey,
// or -1 if none matches.
func FindByHotkey(helpers []Helper, hotkey rune) int {
	for i, h := range helpers {
		if h.Hotkey == hotkey {
			return i
		}
	}
	return -1
}

// Run executes h's shell command with template substitution
// applied, returning its trimmed stdout. A non-zero exit or empty output is
// an error, matching the original implementation.
func Run(ctx context.Context, h Helper, tmpl TemplateContext, dir string) (string, error) {
	timeout := DefaultTimeout
	if h.TimeoutSecs > 0 {
		timeout = time.Duration(h.TimeoutSecs) * time.Second
	}

	command := tmpl.expand(h.ShellCommand)

	shell, args := shellInvocation(command)
	result, err := procexec.Run(ctx, procexec.Spec{
		Path:    shell,
		Args:    args,
		Dir:     dir,
		Timeout: timeout,
	})
	if err != nil {
		return "", err
	}
	if result.TimedOut {
		return "", fmt.Errorf("commit helper %q timed out after %s", h.Name, timeout)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("commit helper %q failed: %s", h.Name, strings.TrimSpace(result.Stderr))
	}

	out := strings.TrimSpace(result.Stdout)
	if out == "" {
		return "", fmt.Errorf("commit helper %q returned empty output", h.Name)
	}
	return out, nil
}

func shellInvocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}
