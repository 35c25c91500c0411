// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tandem-tui/internal/api"
)

// =============================================================================
// API COMMANDS
// =============================================================================

// fetchHistoryCmd loads the full conversation history from the server.
func fetchHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		history, err := client.History(context.Background())
		return HistoryLoadedMsg{History: history, Err: err}
	}
}

// sendCmd posts a message and reports the outcome tagged with the optimistic
// message's temporary ID. The client enforces the send timeout internally.
func sendCmd(client *api.Client, tempID, content string, tags []string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Send(context.Background(), content, tags)
		return SendFinishedMsg{TempID: tempID, Result: result, Err: err}
	}
}

// resetCmd clears the server-side conversation.
func resetCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		return ResetFinishedMsg{Err: client.Reset(context.Background())}
	}
}
