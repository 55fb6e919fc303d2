// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/gizzahub/asyncgit/pkg/config"
)

// keyMap translates pkg/config.KeyConfig's chord-string bindings (spec §6
// "key_config.ron") into bubbles/key.Binding values Update can match
// against, rather than comparing tea.KeyMsg.String() literals directly.
type keyMap struct {
	Quit key.Binding
}

// newKeyMap builds a keyMap from cfg, falling back to no bound keys for an
// action the file doesn't mention (key.Matches then never fires for it).
func newKeyMap(cfg config.KeyConfig) keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys(cfg.Bindings["quit"]...)),
	}
}

// SetKeyConfig replaces the model's key bindings, for callers that load
// key_config.yaml after constructing the Model (cmd/asyncgit does this
// once config.LoadKeyConfig returns).
func (m *Model) SetKeyConfig(cfg config.KeyConfig) {
	m.keys = newKeyMap(cfg)
}
