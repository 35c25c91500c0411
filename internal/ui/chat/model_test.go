// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tandem-tui/internal/api"
	"github.com/jeranaias/tandem-tui/internal/config"
	"github.com/jeranaias/tandem-tui/internal/model"
	"github.com/jeranaias/tandem-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := api.NewClient(nil)
	m := New(client, config.Default(), styles.NewTheme())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func altKey(digit rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{digit}, Alt: true}
}

// submit drives a full optimistic submit for the given content and tags.
func submit(t *testing.T, m Model, content string, tagDigits ...rune) Model {
	t.Helper()
	for _, d := range tagDigits {
		updated, _ := m.Update(altKey(d))
		m = updated.(Model)
	}
	m.input.SetValue(content)
	updated, _ := m.Update(keyEnter())
	return updated.(Model)
}

// =============================================================================
// SEND FLOW TESTS
// =============================================================================

func TestSubmit_AppendsUserAndPlaceholdersInTagOrder(t *testing.T) {
	// Claude first, then GPT: placeholder order must follow selection order.
	m := submit(t, newTestModel(t), "hello", '2', '1')

	msgs := m.conversation.Messages
	require.Len(t, msgs, 3)

	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.True(t, msgs[0].IsTemporary())

	assert.True(t, msgs[1].IsLoading)
	assert.Equal(t, model.AuthorClaude, msgs[1].Author)
	assert.True(t, msgs[2].IsLoading)
	assert.Equal(t, model.AuthorGPT, msgs[2].Author)

	// Placeholders sort after the user message.
	assert.Greater(t, msgs[1].TS, msgs[0].TS)
	assert.Greater(t, msgs[2].TS, msgs[1].TS)

	assert.True(t, m.sending)
	assert.Equal(t, msgs[0].ID, m.pendingTempID)
	assert.Empty(t, m.input.Value(), "input clears on submit")
}

func TestSubmit_RefusedWithoutContentOrTags(t *testing.T) {
	m := newTestModel(t)

	// No tags selected.
	m.input.SetValue("hello")
	updated, _ := m.Update(keyEnter())
	m = updated.(Model)
	assert.True(t, m.conversation.IsEmpty())
	assert.False(t, m.sending)

	// Tag selected, whitespace-only content.
	updated, _ = m.Update(altKey('1'))
	m = updated.(Model)
	m.input.SetValue("   ")
	updated, _ = m.Update(keyEnter())
	m = updated.(Model)
	assert.True(t, m.conversation.IsEmpty())
	assert.False(t, m.sending)
}

func TestSubmit_RefusedWhileSending(t *testing.T) {
	m := submit(t, newTestModel(t), "first", '1')
	require.Equal(t, 2, m.conversation.MessageCount())

	m.input.SetValue("second")
	updated, _ := m.Update(keyEnter())
	m = updated.(Model)

	assert.Equal(t, 2, m.conversation.MessageCount(), "second submit must be refused mid-flight")
}

func TestSendFinished_SuccessResolvesPlaceholders(t *testing.T) {
	m := submit(t, newTestModel(t), "hello", '1', '2')
	tempID := m.pendingTempID

	replies := []*model.Message{
		{ID: "r1", Author: model.AuthorGPT, Role: model.RoleAssistant, Content: "hi", TS: 100},
		{ID: "r2", Author: model.AuthorClaude, Role: model.RoleAssistant, Content: "hey", TS: 101},
	}
	updated, _ := m.Update(SendFinishedMsg{
		TempID: tempID,
		Result: &api.SendResult{UserMessageID: "srv-1", Replies: replies},
	})
	m = updated.(Model)

	msgs := m.conversation.Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, 0, m.conversation.LoadingCount(), "placeholders removed")
	assert.Equal(t, "srv-1", msgs[0].ID, "temporary ID replaced by server ID")
	assert.Equal(t, "r1", msgs[1].ID)
	assert.Equal(t, "r2", msgs[2].ID)
	assert.False(t, m.sending)
	assert.False(t, m.banner.Visible())
}

func TestSendFinished_FailureRollsBackAndRaisesBanner(t *testing.T) {
	m := submit(t, newTestModel(t), "hello", '1')
	tempID := m.pendingTempID

	updated, _ := m.Update(SendFinishedMsg{TempID: tempID, Err: errors.New("boom")})
	m = updated.(Model)

	msgs := m.conversation.Messages
	require.Len(t, msgs, 1, "placeholders removed, optimistic user message kept")
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.True(t, msgs[0].IsTemporary(), "failed send keeps the temporary ID")
	assert.False(t, m.sending)
	assert.True(t, m.banner.Visible())
	assert.Contains(t, m.banner.Message(), "Send failed")
}

func TestSendFinished_StaleResultIgnored(t *testing.T) {
	m := submit(t, newTestModel(t), "hello", '1')
	before := m.conversation.MessageCount()

	updated, _ := m.Update(SendFinishedMsg{TempID: "tmp-other", Err: errors.New("boom")})
	m = updated.(Model)

	assert.Equal(t, before, m.conversation.MessageCount())
	assert.True(t, m.sending, "in-flight send stays tracked")
	assert.False(t, m.banner.Visible())
}

// =============================================================================
// TAG SELECTION TESTS
// =============================================================================

func TestToggleTag_TwiceRemoves(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(altKey('1'))
	m = updated.(Model)
	assert.True(t, m.selection.Contains("@gpt"))

	updated, _ = m.Update(altKey('1'))
	m = updated.(Model)
	assert.False(t, m.selection.Contains("@gpt"))
}

func TestToggleTag_OutOfRangeIgnored(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(altKey('9'))
	m = updated.(Model)
	assert.True(t, m.selection.IsEmpty())
}

func TestClearTags_EmptiesSelection(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(altKey('1'))
	m = updated.(Model)
	updated, _ = m.Update(altKey('2'))
	m = updated.(Model)
	require.Equal(t, 2, m.selection.Len())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m = updated.(Model)
	assert.True(t, m.selection.IsEmpty())
}

func TestSelection_PersistsAcrossSend(t *testing.T) {
	m := submit(t, newTestModel(t), "hello", '1')
	updated, _ := m.Update(SendFinishedMsg{
		TempID: m.pendingTempID,
		Result: &api.SendResult{UserMessageID: "srv-1"},
	})
	m = updated.(Model)
	assert.True(t, m.selection.Contains("@gpt"), "selection survives a completed send")
}

// =============================================================================
// HISTORY / RESET TESTS
// =============================================================================

func TestHistoryLoaded_ReplacesConversation(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{History: []*model.Message{
		{ID: "m1", Author: model.AuthorUser, Role: model.RoleUser, Content: "hi", TS: 1},
	}})
	m = updated.(Model)

	assert.False(t, m.loadingHistory)
	assert.Equal(t, 1, m.conversation.MessageCount())
}

func TestHistoryLoaded_ErrorRaisesBanner(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{Err: errors.New("connection refused")})
	m = updated.(Model)

	assert.True(t, m.banner.Visible())
	assert.True(t, m.conversation.IsEmpty())
}

func TestResetFinished_SuccessClears(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{History: []*model.Message{
		{ID: "m1", Author: model.AuthorUser, Role: model.RoleUser, Content: "hi", TS: 1},
	}})
	m = updated.(Model)

	updated, _ = m.Update(ResetFinishedMsg{})
	m = updated.(Model)
	assert.True(t, m.conversation.IsEmpty())
}

func TestResetFinished_SuccessClearsEarlierBanner(t *testing.T) {
	// A history-fetch failure can land while a reset is in flight; the
	// successful reset must wipe that banner along with the conversation.
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{Err: errors.New("connection refused")})
	m = updated.(Model)
	require.True(t, m.banner.Visible())

	updated, _ = m.Update(ResetFinishedMsg{})
	m = updated.(Model)
	assert.True(t, m.conversation.IsEmpty())
	assert.False(t, m.banner.Visible(), "reset success must clear the error state")
}

func TestResetFinished_ErrorKeepsConversation(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{History: []*model.Message{
		{ID: "m1", Author: model.AuthorUser, Role: model.RoleUser, Content: "hi", TS: 1},
	}})
	m = updated.(Model)

	updated, _ = m.Update(ResetFinishedMsg{Err: errors.New("boom")})
	m = updated.(Model)
	assert.Equal(t, 1, m.conversation.MessageCount())
	assert.True(t, m.banner.Visible())
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_ShowsPendingMessagePreview(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{})
	m = updated.(Model)
	m = submit(t, m, "what is the capital of France?", '1')
	bar := m.renderStatusBar()
	assert.Contains(t, bar, "waiting for replies")
	assert.Contains(t, bar, "what is the capital")
}

// =============================================================================
// BANNER DISMISSAL TESTS
// =============================================================================

func TestBanner_DismissedOnNextKeypress(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(HistoryLoadedMsg{Err: errors.New("boom")})
	m = updated.(Model)
	require.True(t, m.banner.Visible())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	assert.False(t, m.banner.Visible())
}

// =============================================================================
// CONFIG RELOAD TESTS
// =============================================================================

func TestConfigReloaded_SwapsClientOnBaseURLChange(t *testing.T) {
	m := newTestModel(t)
	cfg := config.Default()
	cfg.BaseURL = "http://other:9000"

	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = updated.(Model)
	assert.Equal(t, "http://other:9000", m.client.BaseURL())
}
