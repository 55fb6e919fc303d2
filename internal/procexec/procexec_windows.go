//go:build windows

// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package procexec

import (
	"os/exec"
	"syscall"
)

// createNoWindow suppresses the console window a spawned console
// application would otherwise pop up (spec §4.H).
const createNoWindow = 0x08000000

func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= createNoWindow
}

// killProcessGroup kills the child process. Windows process groups are not
// modeled the way Unix process groups are; killing the direct child is the
// best effort available without job objects.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
