// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
//
// The view is a Bubble Tea model: all state transitions happen inside Update
// in response to messages, so the optimistic-send reconciliation is atomic
// with respect to rendering. A send appends the user message and one loading
// placeholder per selected tag, then a single SendFinishedMsg either resolves
// the placeholders into real replies or rolls them back and raises the error
// banner.
//
// # Key Types
//
//   - Model: the Bubble Tea model owning the conversation, tag selection,
//     input line, viewport and error banner
//   - KeyMap: keyboard bindings
//   - HistoryLoadedMsg, SendFinishedMsg, ResetFinishedMsg: async operation
//     results delivered back into the event loop
//
// # Usage
//
//	m := chat.New(client, cfg, theme)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package chat
