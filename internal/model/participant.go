// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "strings"

// =============================================================================
// PARTICIPANT REGISTRY
// =============================================================================

// ColorGroup selects which style family a participant's messages use.
// The mapping from group to concrete colors lives in the styles package.
type ColorGroup int

const (
	GroupNeutral ColorGroup = iota // Unknown authors
	GroupUser                      // The human participant
	GroupGPT                       // GPT replies
	GroupClaude                    // Claude replies
)

// String names the group for style lookup.
func (g ColorGroup) String() string {
	switch g {
	case GroupUser:
		return "user"
	case GroupGPT:
		return "gpt"
	case GroupClaude:
		return "claude"
	default:
		return "neutral"
	}
}

// Participant holds the fixed display metadata for an author.
type Participant struct {
	Author      Author
	DisplayName string
	Group       ColorGroup
}

// Participants is the registry of known authors. Authors outside this map
// fall back to a neutral presentation with the raw identifier as the name.
var Participants = map[Author]Participant{
	AuthorUser:   {Author: AuthorUser, DisplayName: "You", Group: GroupUser},
	AuthorGPT:    {Author: AuthorGPT, DisplayName: "GPT", Group: GroupGPT},
	AuthorClaude: {Author: AuthorClaude, DisplayName: "Claude", Group: GroupClaude},
}

// LookupParticipant returns the display metadata for an author, falling back
// to a neutral participant named by the raw identifier.
func LookupParticipant(a Author) Participant {
	if p, ok := Participants[a]; ok {
		return p
	}
	return Participant{Author: a, DisplayName: string(a), Group: GroupNeutral}
}

// =============================================================================
// RECIPIENT TAGS
// =============================================================================

// TagMarker is the reserved prefix character of a recipient tag. Tags travel
// to the server in marker form; the marker is stripped for display only.
const TagMarker = "@"

// Tag is a recipient selector in "@name" form.
type Tag string

// Taggable lists the AI participants a message can be addressed to, in the
// order they are offered in the UI.
var Taggable = []Tag{"@gpt", "@claude"}

// String returns the tag in wire form, marker included.
func (t Tag) String() string {
	return string(t)
}

// Author returns the participant identifier the tag addresses.
func (t Tag) Author() Author {
	return Author(strings.TrimPrefix(string(t), TagMarker))
}

// Display returns the tag's participant display name, marker stripped.
func (t Tag) Display() string {
	return LookupParticipant(t.Author()).DisplayName
}

// =============================================================================
// TAG SELECTION
// =============================================================================

// Selection is the order-preserving set of recipient tags chosen for the next
// send. Selection order is significant: it is displayed and transmitted as-is.
type Selection struct {
	tags []Tag
}

// Toggle adds the tag to the end of the selection if absent, or removes it,
// preserving the relative order of the remainder.
func (s *Selection) Toggle(t Tag) {
	for i, existing := range s.tags {
		if existing == t {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return
		}
	}
	s.tags = append(s.tags, t)
}

// Contains reports whether the tag is currently selected.
func (s *Selection) Contains(t Tag) bool {
	for _, existing := range s.tags {
		if existing == t {
			return true
		}
	}
	return false
}

// Position returns the 1-based selection order of the tag, or 0 if absent.
func (s *Selection) Position(t Tag) int {
	for i, existing := range s.tags {
		if existing == t {
			return i + 1
		}
	}
	return 0
}

// Tags returns the selected tags in selection order. The returned slice is a
// copy; callers may hold it across later toggles.
func (s *Selection) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Strings returns the selection in wire form for transmission.
func (s *Selection) Strings() []string {
	out := make([]string, len(s.tags))
	for i, t := range s.tags {
		out[i] = string(t)
	}
	return out
}

// IsEmpty reports whether no tags are selected.
func (s *Selection) IsEmpty() bool {
	return len(s.tags) == 0
}

// Len returns the number of selected tags.
func (s *Selection) Len() int {
	return len(s.tags)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.tags = nil
}
