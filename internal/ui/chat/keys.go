// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
//
// This file defines keyboard bindings for the chat interface. The input line
// holds focus permanently, so every chord avoids plain printable keys.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit    key.Binding
	ToggleTag key.Binding // alt+N toggles the Nth tag chip
	ClearTags key.Binding
	Reset     key.Binding
	Reload    key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		ToggleTag: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
			key.WithHelp("M-1..5", "toggle recipient"),
		),
		ClearTags: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "clear recipients"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reset conversation"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "refresh history"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "scroll up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "go to bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleTag, k.Reset, k.Quit}
}

// FullHelp returns all bindings grouped for a help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollUp, k.ScrollDn, k.Top, k.Bottom},
		{k.Submit, k.ToggleTag, k.ClearTags, k.Reset, k.Reload, k.Quit},
	}
}
