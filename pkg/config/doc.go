// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package config resolves the app config/cache directories and loads the
// three persisted user files spec §6 names: key_config.yaml, theme.yaml,
// and commit_helpers.yaml. Grounded on the teacher's pkg/config (Paths,
// NewPaths, YAML load-via-Manager pattern), trimmed from its 5-layer
// profile/project precedence system (not part of this spec) down to the
// single-directory, three-file shape spec §6 describes, with YAML in place
// of the original's RON syntax (no maintained Go RON parser exists in the
// examples; gopkg.in/yaml.v3, already a teacher dependency, is the nearest
// idiomatic substitute — see DESIGN.md).
package config
