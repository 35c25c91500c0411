// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing the group chat: messages, participants, recipient tags,
// and the conversation sequence with its optimistic-update reconciliation
// operations.
//
// # Key Types
//
//   - Message: Single chat entry with author, role, content and timestamp
//   - Conversation: Append-only message sequence with atomic send reconciliation
//   - Participant: Display metadata for an author (name, color group)
//   - Tag: Recipient selector in "@name" form
//   - Selection: Order-preserving set of selected recipient tags
//
// # Usage
//
// Drive a send through its optimistic lifecycle:
//
//	conv := model.NewConversation()
//	user, _ := conv.BeginSend("hello", []model.Tag{"@gpt"}, time.Now())
//	// ... network round-trip ...
//	conv.ResolveSend(user.ID, serverID, replies) // or conv.RollbackSend()
package model
