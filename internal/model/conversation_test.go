// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"testing"
	"time"
)

// =============================================================================
// SEND RECONCILIATION TESTS
// =============================================================================

func TestBeginSend_AppendsUserThenPlaceholdersInTagOrder(t *testing.T) {
	conv := NewConversation()
	conv.Append(&Message{ID: "m1", Author: AuthorGPT, Role: RoleAssistant, Content: "earlier"})

	now := time.Now()
	user := conv.BeginSend("hi both", []Tag{"@gpt", "@claude"}, now)

	if conv.MessageCount() != 4 {
		t.Fatalf("MessageCount = %d, want 4", conv.MessageCount())
	}
	if conv.Messages[1] != user {
		t.Error("user message should follow existing entries")
	}
	if conv.LoadingCount() != 2 {
		t.Errorf("LoadingCount = %d, want 2", conv.LoadingCount())
	}

	// Placeholders follow the user message in tag order.
	if conv.Messages[2].Author != AuthorGPT || conv.Messages[3].Author != AuthorClaude {
		t.Errorf("placeholder order = [%s, %s], want [gpt, claude]",
			conv.Messages[2].Author, conv.Messages[3].Author)
	}

	// Timestamps are monotonically offset past the user message.
	if !(user.TS < conv.Messages[2].TS && conv.Messages[2].TS < conv.Messages[3].TS) {
		t.Errorf("timestamps not monotonic: user=%d p1=%d p2=%d",
			user.TS, conv.Messages[2].TS, conv.Messages[3].TS)
	}
}

func TestResolveSend_RemovesPlaceholdersPatchesIDAppendsReplies(t *testing.T) {
	conv := NewConversation()
	user := conv.BeginSend("question", []Tag{"@gpt", "@claude"}, time.Now())
	tempID := user.ID

	replies := []*Message{
		{ID: "r1", Author: AuthorGPT, Role: RoleAssistant, Content: "from gpt", TS: 100},
		{ID: "r2", Author: AuthorClaude, Role: RoleAssistant, Content: "from claude", TS: 101},
	}
	conv.ResolveSend(tempID, "srv-42", replies)

	if conv.LoadingCount() != 0 {
		t.Errorf("LoadingCount = %d, want 0 after resolve", conv.LoadingCount())
	}
	if user.ID != "srv-42" {
		t.Errorf("user message ID = %q, want server-issued srv-42", user.ID)
	}
	if user.IsTemporary() {
		t.Error("resolved user message should no longer be temporary")
	}

	n := conv.MessageCount()
	if n != 3 {
		t.Fatalf("MessageCount = %d, want 3 (user + 2 replies)", n)
	}
	if conv.Messages[n-2].ID != "r1" || conv.Messages[n-1].ID != "r2" {
		t.Errorf("replies not appended in order: got [%s, %s]",
			conv.Messages[n-2].ID, conv.Messages[n-1].ID)
	}
}

func TestResolveSend_MatchesByTempIDNotContent(t *testing.T) {
	conv := NewConversation()
	// Two entries with identical content; only the temp one is patched.
	conv.Append(&Message{ID: "srv-1", Author: AuthorUser, Role: RoleUser, Content: "same"})
	user := conv.BeginSend("same", nil, time.Now())

	conv.ResolveSend(user.ID, "srv-2", nil)

	if conv.Messages[0].ID != "srv-1" {
		t.Errorf("confirmed entry mutated: ID = %q", conv.Messages[0].ID)
	}
	if user.ID != "srv-2" {
		t.Errorf("optimistic entry ID = %q, want srv-2", user.ID)
	}
}

func TestResolveSend_ToleratesReplyCountMismatch(t *testing.T) {
	conv := NewConversation()
	user := conv.BeginSend("q", []Tag{"@gpt", "@claude"}, time.Now())

	// Server answered for one participant only.
	conv.ResolveSend(user.ID, "srv-9", []*Message{
		{ID: "r1", Author: AuthorGPT, Role: RoleAssistant, Content: "partial"},
	})

	if conv.LoadingCount() != 0 {
		t.Error("all placeholders should be removed regardless of reply count")
	}
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", conv.MessageCount())
	}
}

func TestRollbackSend_KeepsOptimisticUserMessage(t *testing.T) {
	conv := NewConversation()
	conv.Append(&Message{ID: "m1", Author: AuthorGPT, Role: RoleAssistant, Content: "old"})
	user := conv.BeginSend("lost send", []Tag{"@gpt"}, time.Now())

	conv.RollbackSend()

	if conv.LoadingCount() != 0 {
		t.Error("rollback should remove every loading placeholder")
	}
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[1] != user {
		t.Error("optimistic user message should survive rollback")
	}
	if !user.IsTemporary() {
		t.Error("rolled-back user message keeps its temporary ID")
	}
}

// =============================================================================
// SEQUENCE TESTS
// =============================================================================

func TestReplaceAll(t *testing.T) {
	conv := NewConversation()
	conv.Append(&Message{ID: "stale"})

	history := []*Message{{ID: "h1"}, {ID: "h2"}}
	conv.ReplaceAll(history)

	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].ID != "h1" || conv.Messages[1].ID != "h2" {
		t.Error("history order not preserved")
	}
}

func TestClear(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("x", []Tag{"@gpt"}, time.Now())
	conv.Clear()
	if !conv.IsEmpty() {
		t.Error("Clear should empty the sequence")
	}
}

func TestGetMessageByID(t *testing.T) {
	conv := NewConversation()
	conv.Append(&Message{ID: "a"}, &Message{ID: "b"})

	if got := conv.GetMessageByID("b"); got == nil || got.ID != "b" {
		t.Error("GetMessageByID(b) should find the message")
	}
	if conv.GetMessageByID("missing") != nil {
		t.Error("GetMessageByID(missing) should return nil")
	}
}
