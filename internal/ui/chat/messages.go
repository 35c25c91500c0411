// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
//
// This file defines the Bubble Tea message types used by the chat view. Each
// async API operation reports back through exactly one message type, so every
// state transition in Update is whole: there is no partially-applied send.
package chat

import (
	"github.com/jeranaias/tandem-tui/internal/api"
	"github.com/jeranaias/tandem-tui/internal/config"
	"github.com/jeranaias/tandem-tui/internal/model"
)

// =============================================================================
// API RESULT MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the initial history fetch result.
type HistoryLoadedMsg struct {
	History []*model.Message
	Err     error
}

// SendFinishedMsg delivers the outcome of a send. TempID identifies which
// optimistic user message the result belongs to, so a stale result cannot be
// applied against a newer conversation state.
type SendFinishedMsg struct {
	TempID string
	Result *api.SendResult
	Err    error
}

// ResetFinishedMsg delivers the outcome of a conversation reset.
type ResetFinishedMsg struct {
	Err error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly reloaded configuration from the file
// watcher into the event loop.
type ConfigReloadedMsg struct {
	Config *config.Config
}
