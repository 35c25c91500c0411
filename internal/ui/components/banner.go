// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the tandem TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tandem-tui/internal/ui/styles"
	"github.com/jeranaias/tandem-tui/internal/util"
)

// =============================================================================
// ERROR BANNER
// =============================================================================

// ErrorBanner holds at most one failure notice. A new failure replaces the
// previous one; the banner does not queue. It stays visible until dismissed,
// which the chat model does on the next user action.
type ErrorBanner struct {
	message string
	visible bool
}

// Show replaces the banner content with a new failure message.
func (b *ErrorBanner) Show(message string) {
	b.message = message
	b.visible = true
}

// Dismiss hides the banner.
func (b *ErrorBanner) Dismiss() {
	b.visible = false
	b.message = ""
}

// Visible reports whether the banner has something to show.
func (b *ErrorBanner) Visible() bool {
	return b.visible
}

// Message returns the current failure message.
func (b *ErrorBanner) Message() string {
	return b.message
}

// Render draws the banner at the given width. Returns "" when hidden.
func (b *ErrorBanner) Render(theme *styles.Theme, width int) string {
	if !b.visible {
		return ""
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	icon := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true).
		Render(styles.StatusIndicators.Error + " ")

	message := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Render(wrapText(b.message, maxWidth-6))

	hint := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("press any key to dismiss")

	content := icon + message + "\n" + hint

	return theme.ErrorBanner.MaxWidth(maxWidth).Render(content)
}

// wrapText performs simple word wrapping for banner messages, measuring in
// display columns so wide characters do not overflow the border.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder

	for _, word := range words {
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case util.StringWidth(current.String())+1+util.StringWidth(word) <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}
