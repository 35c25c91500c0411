// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the tandem TUI.
//
// # Key Types
//
//   - ErrorBanner: single-slot failure surface, replaced on each new failure
//     and dismissed by the next user action
//   - TagBar: recipient chips with selection-order badges
//
// Components are pure render helpers plus small state holders; the chat model
// owns them and drives all state transitions through its Update loop.
package components
