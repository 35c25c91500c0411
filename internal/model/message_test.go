// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := NewUserMessage("hello", now)

	if !msg.IsTemporary() {
		t.Errorf("new user message ID %q should carry the temporary prefix", msg.ID)
	}
	if msg.Author != AuthorUser {
		t.Errorf("Author = %q, want %q", msg.Author, AuthorUser)
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.TS != now.UnixMilli() {
		t.Errorf("TS = %d, want %d", msg.TS, now.UnixMilli())
	}
	if msg.IsLoading {
		t.Error("user message should not be flagged as loading")
	}
}

func TestNewPlaceholder(t *testing.T) {
	now := time.Now()
	msg := NewPlaceholder(AuthorClaude, now)

	if !msg.IsLoading {
		t.Error("placeholder should be flagged as loading")
	}
	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.Author != AuthorClaude {
		t.Errorf("Author = %q, want %q", msg.Author, AuthorClaude)
	}
	if !msg.IsTemporary() {
		t.Error("placeholder should carry a temporary ID")
	}
}

func TestTempIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := tempID()
		if seen[id] {
			t.Fatalf("duplicate temporary ID %q", id)
		}
		seen[id] = true
	}
}

func TestMessage_IsError(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"provider error reply", "(error from Gpt: timeout after 20000ms)", true},
		{"normal reply", "Sure, here is the answer.", false},
		{"marker mid-content", "oops (error from Gpt: x)", false},
		{"empty content", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := &Message{Content: tc.content}
			if got := msg.IsError(); got != tc.want {
				t.Errorf("IsError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := &Message{Content: "héllo wörld, this is a long message"}
	got := msg.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview(10) = %q, want 10 runes", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview(10) = %q, want ellipsis suffix", got)
	}

	short := &Message{Content: "hi"}
	if short.Preview(10) != "hi" {
		t.Errorf("short content should be returned unchanged")
	}
}

func TestMessage_JSONDoesNotCarryLoadingFlag(t *testing.T) {
	msg := NewPlaceholder(AuthorGPT, time.Now())
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "IsLoading") || strings.Contains(string(data), "isLoading") {
		t.Errorf("loading flag leaked into JSON: %s", data)
	}
}
