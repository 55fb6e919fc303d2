// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package hooks

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/gizzahub/asyncgit/internal/procexec"
)

// shPath is the POSIX-style shell used to re-spawn a hook that lacks a
// shebang (Unix ENOEXEC fallback) or, on Windows, to run every hook.
var shPath = "/bin/sh"

// RunAt spawns the resolved hook directly. On Unix, if the OS reports the
// script lacks a shebang (ENOEXEC) it retries via `/bin/sh <hook>`. On
// Windows it always spawns through the configured shell with -c, quoting
// the hook path with single quotes and escaping embedded single quotes
// (spec §4.H).
func RunAt(ctx context.Context, paths Paths, args []string, stdin []byte, timeout time.Duration) (Result, error) {
	if runtime.GOOS == "windows" {
		return runViaShell(ctx, paths, args, stdin, timeout)
	}

	result, err := procexec.Run(ctx, procexec.Spec{
		Path:    paths.Hook,
		Args:    args,
		Dir:     paths.WorkDir,
		Stdin:   stdin,
		Timeout: timeout,
	})
	if err != nil && procexec.IsExecFormatError(err) {
		result, err = procexec.Run(ctx, procexec.Spec{
			Path:    shPath,
			Args:    append([]string{paths.Hook}, args...),
			Dir:     paths.WorkDir,
			Stdin:   stdin,
			Timeout: timeout,
		})
	}
	if err != nil {
		return Result{}, err
	}
	return toResult(paths.Hook, result), nil
}

func runViaShell(ctx context.Context, paths Paths, args []string, stdin []byte, timeout time.Duration) (Result, error) {
	const replacement = `'\''`
	quoted := "'" + strings.ReplaceAll(paths.Hook, "'", replacement) + "'"

	shellArgs := append([]string{quoted}, args...)
	result, err := procexec.Run(ctx, procexec.Spec{
		Path:    shPath,
		Args:    []string{"-c", strings.Join(shellArgs, " ")},
		Dir:     paths.WorkDir,
		Stdin:   stdin,
		Timeout: timeout,
	})
	if err != nil {
		return Result{}, err
	}
	return toResult(paths.Hook, result), nil
}

func toResult(hookPath string, r procexec.Result) Result {
	if r.TimedOut {
		return Result{Kind: TimedOut, Stdout: r.Stdout, Stderr: r.Stderr, HookPath: hookPath}
	}
	return Result{Kind: Ran, ExitCode: r.ExitCode, Stdout: r.Stdout, Stderr: r.Stderr, HookPath: hookPath}
}
