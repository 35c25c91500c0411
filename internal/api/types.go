// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tandem chat backend.
package api

import "github.com/jeranaias/tandem-tui/internal/model"

// =============================================================================
// WIRE TYPES
// =============================================================================

// historyResponse is the body of GET /api/history.
type historyResponse struct {
	History []*model.Message `json:"history"`
}

// sendRequest is the body of POST /api/send. Tags travel in marker form
// ("@gpt") and in selection order.
type sendRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// wireReply is a reply entry as the server sends it. The wire form carries no
// role field; every reply is an assistant message.
type wireReply struct {
	ID      string       `json:"id"`
	Author  model.Author `json:"author"`
	Content string       `json:"content"`
	TS      int64        `json:"ts"`
}

// sendResponse is the body of POST /api/send on success.
type sendResponse struct {
	OK            bool        `json:"ok"`
	UserMessageID string      `json:"userMessageId"`
	Replies       []wireReply `json:"replies"`
}

// =============================================================================
// RESULTS
// =============================================================================

// SendResult is the server's acknowledgment of a send: the identifier issued
// for the stored user message plus the ordered reply sequence. One reply per
// requested tag is expected but not assumed.
type SendResult struct {
	UserMessageID string
	Replies       []*model.Message
}

// message converts a wire reply into a display message, stamping the
// assistant role the wire form omits.
func (r wireReply) message() *model.Message {
	return &model.Message{
		ID:      r.ID,
		Author:  r.Author,
		Role:    model.RoleAssistant,
		Content: r.Content,
		TS:      r.TS,
	}
}
