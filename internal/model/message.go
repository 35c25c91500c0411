// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role is the coarse layout classification of a message, independent of its
// author. User messages align opposite assistant messages.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// AUTHOR TYPE
// =============================================================================

// Author identifies the participant that wrote a message. The set is open:
// the server may introduce authors this build does not know about, and the
// UI falls back to neutral styling for them.
type Author string

const (
	AuthorUser   Author = "user"
	AuthorGPT    Author = "gpt"
	AuthorClaude Author = "claude"
)

// String returns the string representation of the author.
func (a Author) String() string {
	return string(a)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// TempIDPrefix marks client-generated message identifiers. A temporary ID is
// replaced in place by the server-issued one once a send is acknowledged.
const TempIDPrefix = "tmp-"

// ErrorMarker is the reserved content prefix the backend uses for replies
// that represent an upstream provider failure rather than a normal answer.
// Such messages are styled as errors regardless of author.
const ErrorMarker = "(error from"

// Message represents a single entry in the conversation.
type Message struct {
	ID      string `json:"id"`
	Author  Author `json:"author"`
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// TS is the creation time in unix milliseconds. Client-assigned for
	// optimistic entries, server-assigned for confirmed ones. Display only;
	// never used for conflict resolution.
	TS int64 `json:"ts"`

	// IsLoading marks a placeholder awaiting a real reply. Never present on
	// confirmed messages and never serialized.
	IsLoading bool `json:"-"`
}

// NewUserMessage creates an optimistic user message with a temporary ID.
func NewUserMessage(content string, now time.Time) *Message {
	return &Message{
		ID:      tempID(),
		Author:  AuthorUser,
		Role:    RoleUser,
		Content: content,
		TS:      now.UnixMilli(),
	}
}

// NewPlaceholder creates a loading placeholder attributed to the given
// author, shown while that participant's reply is pending.
func NewPlaceholder(author Author, ts time.Time) *Message {
	return &Message{
		ID:        tempID(),
		Author:    author,
		Role:      RoleAssistant,
		TS:        ts.UnixMilli(),
		IsLoading: true,
	}
}

// IsTemporary reports whether the message still carries a client-generated ID.
func (m *Message) IsTemporary() bool {
	return strings.HasPrefix(m.ID, TempIDPrefix)
}

// IsError reports whether the content carries the reserved error marker.
func (m *Message) IsError() bool {
	return strings.HasPrefix(m.Content, ErrorMarker)
}

// Time returns the message timestamp as a time.Time.
func (m *Message) Time() time.Time {
	return time.UnixMilli(m.TS)
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// tempID creates a client-side message ID with the temporary prefix.
func tempID() string {
	return TempIDPrefix + uuid.NewString()
}
