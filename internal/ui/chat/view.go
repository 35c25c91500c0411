// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
//
// This file renders the chat layout: header, message viewport, recipient tag
// bar, input line and status bar, with the error banner pushed in above the
// tag bar when visible.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tandem-tui/internal/model"
	"github.com/jeranaias/tandem-tui/internal/ui/styles"
	"github.com/jeranaias/tandem-tui/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

// chromeHeight returns the vertical space everything but the viewport needs.
func (m Model) chromeHeight() int {
	h := 3 // header
	h += 3 // tag bar chips carry borders
	h += 2 // input with top border
	h += 1 // status bar
	if m.banner.Visible() {
		h += lipgloss.Height(m.banner.Render(m.theme, m.width))
	}
	return h
}

// syncViewportHeight resizes the viewport after chrome changes, such as the
// banner appearing or going away.
func (m *Model) syncViewportHeight() {
	if !m.ready {
		return
	}
	h := m.height - m.chromeHeight()
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// bubbleWidth returns the maximum content width of a message bubble.
func (m Model) bubbleWidth() int {
	w := m.width * 7 / 10
	if w < 30 {
		w = 30
	}
	return w
}

// updateViewport re-renders the conversation into the viewport.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.syncViewportHeight()
	m.viewport.SetContent(m.renderMessages())
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the complete chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Starting tandem..."
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
	}

	if m.banner.Visible() {
		sections = append(sections, m.banner.Render(m.theme, m.width))
	}

	sections = append(sections,
		m.tagBar.Render(m.theme, &m.selection),
		m.renderInput(),
		m.renderStatusBar(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader draws the title bar. The origin is truncated to keep the
// header on one line in narrow terminals.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("tandem")

	origin := m.client.BaseURL()
	room := m.width - util.StringWidth("tandem") - 12
	if room < 0 {
		room = 0
	}
	subtitle := m.theme.HeaderSubtitle.Render(" · " + util.TruncateWidth(origin, room))

	return m.theme.Header.Width(m.width - 2).Render(title + subtitle)
}

// renderInput draws the input line.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// renderStatusBar draws the bottom status line: activity on the left,
// shortcuts on the right.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.loadingHistory:
		left = m.spinner.View() + m.theme.ThinkingText.Render("loading history")
	case m.sending:
		status := "waiting for replies"
		if pending := m.conversation.GetMessageByID(m.pendingTempID); pending != nil {
			status += " to \"" + pending.Preview(24) + "\""
		}
		left = m.spinner.View() + m.theme.ThinkingText.Render(status)
	case m.resetting:
		left = m.spinner.View() + m.theme.ThinkingText.Render("resetting")
	default:
		left = m.theme.ShortcutDesc.Render("ready")
	}

	// Narrow terminals get the activity indicator only.
	var right string
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		shortcuts := make([]string, 0, 4)
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			shortcuts = append(shortcuts,
				m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
		}
		right = strings.Join(shortcuts, "  ")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// renderMessages renders the conversation for the viewport.
func (m Model) renderMessages() string {
	if m.conversation.IsEmpty() {
		empty := m.theme.ThinkingText.Render("No messages yet. Pick a recipient and say something.")
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, empty)
	}

	blocks := make([]string, 0, m.conversation.MessageCount())
	for _, msg := range m.conversation.Messages {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n")
}

// renderMessage renders a single conversation entry: an author/time label
// line followed by the styled bubble. User messages sit on the right,
// everything else on the left.
func (m Model) renderMessage(msg *model.Message) string {
	p := model.LookupParticipant(msg.Author)

	label := m.theme.AuthorLabel.Foreground(m.theme.AccentFor(p.Group.String())).Render(p.DisplayName)
	ts := m.theme.Timestamp.Render(" " + msg.Time().Format("15:04"))
	header := label + ts

	var body string
	switch {
	case msg.IsLoading:
		body = m.theme.LoadingBubble.MaxWidth(m.bubbleWidth()).
			Render(m.spinner.View() + "thinking...")
	case msg.IsError():
		body = m.theme.ErrorReply.MaxWidth(m.bubbleWidth()).Render(msg.Content)
	default:
		body = m.theme.Bubble(p.Group.String()).MaxWidth(m.bubbleWidth()).
			Render(m.renderContent(msg))
	}

	block := lipgloss.JoinVertical(lipgloss.Left, header, body)

	if msg.Role == model.RoleUser {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, block)
}

// renderContent renders message content, applying markdown to assistant
// replies when enabled.
func (m Model) renderContent(msg *model.Message) string {
	if msg.Role != model.RoleAssistant || !m.cfg.UI.Markdown || m.renderer == nil {
		return msg.Content
	}
	out, err := m.renderer.Render(msg.Content)
	if err != nil {
		return msg.Content
	}
	return strings.TrimRight(out, "\n")
}
