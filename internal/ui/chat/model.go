// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the tandem TUI.
//
// This file implements the Bubble Tea model and its Update loop. All state
// lives here and changes only inside Update, which keeps the optimistic-send
// transitions atomic with respect to rendering.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tandem-tui/internal/api"
	"github.com/jeranaias/tandem-tui/internal/config"
	"github.com/jeranaias/tandem-tui/internal/model"
	"github.com/jeranaias/tandem-tui/internal/ui/components"
	"github.com/jeranaias/tandem-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	client *api.Client
	cfg    *config.Config
	theme  *styles.Theme
	keys   KeyMap

	conversation *model.Conversation
	selection    model.Selection
	tagBar       components.TagBar
	banner       components.ErrorBanner

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Markdown renderer for assistant replies, rebuilt on resize.
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	loadingHistory bool
	sending        bool
	resetting      bool

	// pendingTempID identifies the in-flight send; a SendFinishedMsg carrying
	// a different ID is stale and must not touch the conversation.
	pendingTempID string
}

// New creates the chat model. The initial history fetch is issued from Init.
func New(client *api.Client, cfg *config.Config, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 0
	input.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	return Model{
		client:         client,
		cfg:            cfg,
		theme:          theme,
		keys:           DefaultKeyMap(),
		conversation:   model.NewConversation(),
		tagBar:         components.NewTagBar(model.Taggable),
		input:          input,
		spinner:        sp,
		loadingHistory: true,
	}
}

// Conversation exposes the conversation for tests.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Init starts the input cursor blink, spinner and initial history fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		fetchHistoryCmd(m.client),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update processes Bubble Tea messages and drives all state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.busy() {
			m.updateViewport()
			return m, cmd
		}
		return m, nil

	case HistoryLoadedMsg:
		m.loadingHistory = false
		if msg.Err != nil {
			m.banner.Show("Failed to load history: " + errorText(msg.Err))
			m.syncViewportHeight()
			return m, nil
		}
		m.conversation.ReplaceAll(msg.History)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case SendFinishedMsg:
		return m.handleSendFinished(msg)

	case ResetFinishedMsg:
		m.resetting = false
		if msg.Err != nil {
			m.banner.Show("Reset failed: " + errorText(msg.Err))
			m.syncViewportHeight()
			return m, nil
		}
		// A successful reset clears the error state too: a banner raised by
		// an overlapping operation must not outlive the wiped conversation.
		m.conversation.Clear()
		m.banner.Dismiss()
		m.updateViewport()
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize recomputes the layout and rebuilds the markdown renderer for
// the new wrap width.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	viewportHeight := msg.Height - m.chromeHeight()
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}

	m.input.Width = msg.Width - 6

	wrap := m.bubbleWidth() - 4
	if wrap < 20 {
		wrap = 20
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleKey routes keyboard input. Any keypress dismisses a visible error
// banner before it does anything else.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.banner.Visible() {
		m.banner.Dismiss()
		m.syncViewportHeight()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.ToggleTag):
		return m.handleToggleTag(msg)

	case key.Matches(msg, m.keys.ClearTags):
		m.selection.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		if m.sending || m.resetting {
			return m, nil
		}
		m.resetting = true
		return m, tea.Batch(resetCmd(m.client), m.spinner.Tick)

	case key.Matches(msg, m.keys.Reload):
		if m.sending || m.loadingHistory {
			return m, nil
		}
		m.loadingHistory = true
		return m, tea.Batch(fetchHistoryCmd(m.client), m.spinner.Tick)

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleToggleTag flips the selection state of the chip addressed by alt+N.
func (m Model) handleToggleTag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if !strings.HasPrefix(s, "alt+") {
		return m, nil
	}
	idx := int(s[len(s)-1] - '1')
	tag := m.tagBar.TagAt(idx)
	if tag == "" {
		return m, nil
	}
	m.selection.Toggle(tag)
	return m, nil
}

// handleSubmit runs the optimistic send. Submission is refused while a send
// is already in flight, when the trimmed content is empty, or when no
// recipient is selected.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.selection.IsEmpty() {
		return m, nil
	}

	userMsg := m.conversation.BeginSend(content, m.selection.Tags(), time.Now())
	m.pendingTempID = userMsg.ID
	m.sending = true
	m.input.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		sendCmd(m.client, userMsg.ID, content, m.selection.Strings()),
		m.spinner.Tick,
	)
}

// handleSendFinished reconciles the conversation against the send outcome in
// a single transition: resolve on success, roll back on failure.
func (m Model) handleSendFinished(msg SendFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.TempID != m.pendingTempID {
		// Stale result from a send the conversation no longer tracks.
		return m, nil
	}
	m.sending = false
	m.pendingTempID = ""

	if msg.Err != nil {
		m.conversation.RollbackSend()
		m.banner.Show("Send failed: " + errorText(msg.Err))
		m.updateViewport()
		return m, nil
	}

	m.conversation.ResolveSend(msg.TempID, msg.Result.UserMessageID, msg.Result.Replies)
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleConfigReloaded swaps in the new configuration. A base URL change
// takes effect by replacing the API client; in-flight requests finish against
// the old origin.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	if msg.Config.BaseURL != m.cfg.BaseURL || msg.Config.SendTimeoutSecs != m.cfg.SendTimeoutSecs {
		m.client = api.NewClient(&api.ClientConfig{
			BaseURL:     msg.Config.BaseURL,
			SendTimeout: time.Duration(msg.Config.SendTimeoutSecs) * time.Second,
		})
	}
	m.cfg = msg.Config
	m.updateViewport()
	return m, nil
}

// busy reports whether any async operation is in flight.
func (m Model) busy() bool {
	return m.sending || m.resetting || m.loadingHistory
}

// errorText flattens a client error into a banner-sized message.
func errorText(err error) string {
	if api.IsTimeout(err) {
		return "the request timed out; the replies may still arrive on the server. Refresh with C-g."
	}
	return err.Error()
}
