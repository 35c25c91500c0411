// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tandem chat backend.
//
// This package wraps the three backend operations — fetch history, send
// message, reset conversation — behind typed methods on Client. It owns
// request construction, the send timeout, and error normalization.
//
// # Key Types
//
//   - Client: HTTP client for the chat API
//   - ClientError: Categorized error with cause chain
//   - SendResult: Server acknowledgment of a send (user message ID + replies)
//
// # Usage
//
//	client := api.NewClient(&api.ClientConfig{BaseURL: "http://localhost:8001"})
//	history, err := client.History(ctx)
//	result, err := client.Send(ctx, "hello", []string{"@gpt"})
//	err = client.Reset(ctx)
//
// All failures — transport, non-2xx status, decode — surface as a single
// error value with a human-readable message; callers do not branch on the
// category.
package api
