// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tandem.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation. An optional file watcher
// picks up edits to the active config file so a running client can follow a
// backend address change without a restart.
//
// Configuration file locations (in order of precedence):
//   - ~/.tandem/config.toml
//   - ~/.tandem/config.json
//   - Built-in defaults
//
// Environment overrides (applied last):
//   - TANDEM_BASE_URL
//   - TANDEM_SEND_TIMEOUT_SECS
package config
