// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered message sequence for rendering.
//
// The sequence is append-only: existing entries are never reordered. The only
// in-place mutations are the atomic reconciliation operations below, each of
// which the view observes as a single state transition.
type Conversation struct {
	Messages []*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{Messages: make([]*Message, 0)}
}

// ReplaceAll replaces the entire sequence, used when loading server history.
func (c *Conversation) ReplaceAll(msgs []*Message) {
	c.Messages = make([]*Message, len(msgs))
	copy(c.Messages, msgs)
}

// Append adds messages to the end of the sequence.
func (c *Conversation) Append(msgs ...*Message) {
	c.Messages = append(c.Messages, msgs...)
}

// Clear empties the sequence, used after a successful reset.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
}

// GetMessageByID returns a message by its ID, or nil.
func (c *Conversation) GetMessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LoadingCount returns the number of loading placeholders in the sequence.
func (c *Conversation) LoadingCount() int {
	n := 0
	for _, msg := range c.Messages {
		if msg.IsLoading {
			n++
		}
	}
	return n
}

// =============================================================================
// SEND RECONCILIATION
// =============================================================================

// BeginSend appends the optimistic entries for a send: one user message and
// one loading placeholder per tag, in tag order. Placeholder timestamps are
// offset monotonically past the user message so the entries sort after it.
// All entries land in one append; an observer sees either "before send" or
// "after placeholders appended", never a partial set.
//
// Returns the optimistic user message so the caller can track its temporary
// ID through ResolveSend.
func (c *Conversation) BeginSend(content string, tags []Tag, now time.Time) *Message {
	batch := make([]*Message, 0, len(tags)+1)

	user := NewUserMessage(content, now)
	batch = append(batch, user)

	for i, tag := range tags {
		batch = append(batch, NewPlaceholder(tag.Author(), now.Add(time.Duration(i+1)*time.Millisecond)))
	}

	c.Append(batch...)
	return user
}

// ResolveSend reconciles the sequence against a successful send response:
// every loading placeholder is removed, the temporary user-message ID is
// replaced by the server-issued one (matched by the temporary ID, not by
// content), and the reply sequence is appended. Applied as one transition.
//
// The reply count is whatever the server returned; no strict match against
// the placeholder count is assumed.
func (c *Conversation) ResolveSend(tempID, serverID string, replies []*Message) {
	kept := c.withoutLoading()
	for _, msg := range kept {
		if msg.ID == tempID {
			msg.ID = serverID
			break
		}
	}
	c.Messages = append(kept, replies...)
}

// RollbackSend removes every loading placeholder after a failed send. The
// optimistic user message is retained; see the failed-send note in DESIGN.md.
func (c *Conversation) RollbackSend() {
	c.Messages = c.withoutLoading()
}

// withoutLoading returns the sequence minus loading placeholders, preserving
// order.
func (c *Conversation) withoutLoading() []*Message {
	kept := make([]*Message, 0, len(c.Messages))
	for _, msg := range c.Messages {
		if !msg.IsLoading {
			kept = append(kept, msg)
		}
	}
	return kept
}
