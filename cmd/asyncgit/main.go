// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package main is the entry point for the asyncgit terminal UI.
package main

import (
	"github.com/gizzahub/asyncgit/cmd/asyncgit/cmd"
)

// version is set during build time via ldflags.
var version = "dev"

func main() {
	cmd.Execute(version)
}
