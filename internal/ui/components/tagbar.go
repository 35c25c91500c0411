// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the tandem TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tandem-tui/internal/model"
	"github.com/jeranaias/tandem-tui/internal/ui/styles"
)

// =============================================================================
// TAG BAR
// =============================================================================

// TagBar renders the taggable participants as chips. A selected chip carries
// a numeric badge showing its position in selection order, since tag order
// decides reply order.
type TagBar struct {
	tags []model.Tag
}

// NewTagBar creates a tag bar offering the given tags.
func NewTagBar(tags []model.Tag) TagBar {
	return TagBar{tags: tags}
}

// Tags returns the offered tags in display order.
func (tb TagBar) Tags() []model.Tag {
	return tb.tags
}

// TagAt returns the tag at the given display index, or "" if out of range.
func (tb TagBar) TagAt(i int) model.Tag {
	if i < 0 || i >= len(tb.tags) {
		return ""
	}
	return tb.tags[i]
}

// Render draws the chips reflecting the current selection.
func (tb TagBar) Render(theme *styles.Theme, sel *model.Selection) string {
	if len(tb.tags) == 0 {
		return ""
	}

	chips := make([]string, 0, len(tb.tags)+1)
	label := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("to:")
	chips = append(chips, label)

	for i, tag := range tb.tags {
		text := fmt.Sprintf("%d %s", i+1, tag.Display())
		if pos := sel.Position(tag); pos > 0 {
			badge := theme.TagOrderBadge.Render(fmt.Sprintf("#%d", pos))
			chips = append(chips, theme.TagChipSelected.Render(text)+badge)
		} else {
			chips = append(chips, theme.TagChip.Render(text))
		}
	}

	return strings.Join(chips, " ")
}
