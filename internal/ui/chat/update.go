// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/godbot-tui/internal/api"
	"github.com/jeranaias/godbot-tui/internal/config"
	"github.com/jeranaias/godbot-tui/internal/logging"
	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/store"
	"github.com/jeranaias/godbot-tui/internal/ui/components"
)

// Update is the single entry point for every event in the TUI.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)

	case PersonasLoadedMsg:
		m.state.ReplacePersonas(msg.Personas)
		m.syncStatusBar()
		return m, nil

	case SessionsLoadedMsg:
		m.state.ReplaceSessions(msg.Sessions)
		m.syncSidebar()
		return m, nil

	case MessagesLoadedMsg:
		if m.state.ReplaceMessages(msg.SessionID, msg.Messages) {
			m.refreshTranscript()
		}
		return m, nil

	case LoadFailedMsg:
		logging.L().Warn("fetch failed", zap.String("what", msg.What), zap.Error(msg.Err))
		// A failed overlay fetch closes the overlay; the error toast shows on
		// the main screen instead of a panel stuck on "loading...".
		switch {
		case msg.What == "dashboard" && m.overlay == OverlayDashboard:
			m.state.CloseDashboard()
			m.overlay = OverlayNone
		case msg.What == "insights" && m.overlay == OverlayInsights:
			m.state.CloseInsights()
			m.overlay = OverlayNone
		}
		m.toasts.AddError(api.UserMessage(msg.Err, "Could not load "+msg.What))
		return m, components.ToastTickCmd()

	case SendResultMsg:
		return m.handleSendResult(msg)

	case SendFailedMsg:
		m.state.FailSend()
		m.refreshTranscript()
		m.syncStatusBar()
		switch {
		case api.IsTimeout(msg.Err):
			m.toasts.AddError("The backend took too long to answer; your message was not sent")
		case api.IsBackendDown(msg.Err):
			m.toasts.AddError("Cannot reach the GodBot backend; your message was not sent")
		default:
			m.toasts.AddError(api.UserMessage(msg.Err, "Message could not be sent"))
		}
		return m, components.ToastTickCmd()

	case SessionDeletedMsg:
		m.state.RemoveSession(msg.SessionID)
		m.syncSidebar()
		m.refreshTranscript()
		m.toasts.AddSuccess("Session deleted")
		return m, tea.Batch(loadSessionsCmd(m.client), components.ToastTickCmd())

	case DeleteFailedMsg:
		if api.IsNotFound(msg.Err) {
			// The backend no longer knows the session; converge the local list.
			m.state.RemoveSession(msg.SessionID)
			m.syncSidebar()
			m.refreshTranscript()
			m.toasts.AddStatus("Session was already deleted")
			return m, tea.Batch(loadSessionsCmd(m.client), components.ToastTickCmd())
		}
		m.toasts.AddError(api.UserMessage(msg.Err, "Could not delete session"))
		return m, components.ToastTickCmd()

	case StatusTickMsg:
		return m, tea.Batch(loadStatusCmd(m.client), statusTickCmd(m.pollInterval))

	case StatusLoadedMsg:
		m.state.ReplaceStatus(msg.Status)
		m.statusBar.SetStatus(msg.Status)
		return m, nil

	case StatusFailedMsg:
		// Poll failures never surface; the bar just goes stale.
		logging.L().Debug("status poll failed", zap.Error(msg.Err))
		return m, nil

	case DashboardLoadedMsg:
		// A snapshot landing after the overlay closed is discarded.
		if m.overlay == OverlayDashboard {
			m.state.OpenDashboard(msg.Snapshot)
		}
		return m, nil

	case InsightsLoadedMsg:
		if m.overlay == OverlayInsights {
			m.state.OpenInsights(msg.Insights)
		}
		return m, nil

	case AckResultMsg:
		if msg.Err != nil {
			m.state.UnmarkInsightReviewed(msg.InsightID)
			m.toasts.AddError(api.UserMessage(msg.Err, "Could not acknowledge insight"))
			return m, components.ToastTickCmd()
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.toasts.AddError("Export failed: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("Exported to " + msg.Path)
		}
		return m, components.ToastTickCmd()

	case ArchiveWrittenMsg:
		// Already logged by the command; the conversation is unaffected.
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)

	case components.ToastTickMsg:
		if len(m.toasts.Tick()) > 0 {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Sending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	sidebarWidth := 30
	if m.width < 80 {
		sidebarWidth = 22
	}
	m.sidebar.SetSize(sidebarWidth, m.height-4)
	m.statusBar.SetWidth(m.width)
	m.dashboard.SetSize(m.width, m.height)
	m.insights.SetSize(m.width, m.height)

	chatWidth := m.width - sidebarWidth - 2
	if !m.ready {
		m.viewport = newTranscriptViewport(chatWidth, m.height-7)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = m.height - 7
	}
	m.input.Width = chatWidth - 6
	m.refreshTranscript()
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.confirmDelete != nil {
		return m.handleDeleteConfirmKey(msg)
	}
	if m.overlay != OverlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.FocusNext):
		return m.toggleFocus()

	case key.Matches(msg, m.keyMap.NewSession):
		m.state.StartNewSession()
		m.syncSidebar()
		m.refreshTranscript()
		m.focusInput()
		return m, nil

	case key.Matches(msg, m.keyMap.CyclePersona):
		m.cyclePersona()
		return m, nil

	case key.Matches(msg, m.keyMap.Dashboard):
		m.overlay = OverlayDashboard
		return m, loadDashboardCmd(m.client)

	case key.Matches(msg, m.keyMap.Insights):
		m.overlay = OverlayInsights
		m.insights.Reset()
		return m, loadInsightsCmd(m.client)

	case key.Matches(msg, m.keyMap.Export):
		return m.exportCurrent()
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()
	case key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.CursorUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.CursorDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		sess, ok := m.sidebar.Selected()
		if !ok {
			return m, nil
		}
		m.state.SelectSession(sess)
		m.syncSidebar()
		m.refreshTranscript()
		m.focusInput()
		return m, loadMessagesCmd(m.client, sess.ID)

	case key.Matches(msg, m.keyMap.Delete):
		if sess, ok := m.sidebar.Selected(); ok {
			m.confirmDelete = &sess
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := *m.confirmDelete
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = nil
		return m, deleteSessionCmd(m.client, target.ID)
	case "n", "N", "esc":
		m.confirmDelete = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Close) {
		return m.closeOverlay()
	}

	if m.overlay == OverlayInsights {
		insights := m.state.Insights()
		switch {
		case key.Matches(msg, m.keyMap.Up):
			m.insights.CursorUp()
		case key.Matches(msg, m.keyMap.Down):
			m.insights.CursorDown(len(insights))
		case key.Matches(msg, m.keyMap.Submit):
			return m.acknowledgeSelected(insights)
		}
	}
	return m, nil
}

func (m Model) closeOverlay() (tea.Model, tea.Cmd) {
	switch m.overlay {
	case OverlayDashboard:
		m.state.CloseDashboard()
	case OverlayInsights:
		m.state.CloseInsights()
	}
	m.overlay = OverlayNone
	return m, nil
}

// =============================================================================
// SEND FLOW
// =============================================================================

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	sessionID := ""
	if current := m.state.Current(); current != nil {
		sessionID = current.ID
	}

	pending := model.NewPendingUserMessage(m.input.Value(), sessionID, m.state.PersonaID())
	if pending.IsEmpty() || !m.state.BeginSend(pending) {
		// Blank input or a send already in flight.
		return m, nil
	}

	m.input.Reset()
	m.refreshTranscript()
	m.syncStatusBar()

	req := api.ChatRequest{
		Message:   pending.Content,
		SessionID: sessionID,
		PersonaID: m.state.PersonaID(),
		Tier:      m.state.Tier(),
	}
	return m, tea.Batch(sendChatCmd(m.client, req), m.spinner.Tick)
}

func (m Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	assistant := msg.Response.AssistantMessage()
	outcome := m.state.CompleteSend(msg.DispatchedSession, assistant)
	m.syncStatusBar()

	if outcome == store.SendStale {
		return m, nil
	}

	m.refreshTranscript()

	var cmds []tea.Cmd
	if cmd := m.archiveLastExchange(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if outcome == store.SendAdopted {
		// First send created a server session; pull the authoritative list.
		m.syncSidebar()
		cmds = append(cmds, loadSessionsCmd(m.client))
	}
	return m, tea.Batch(cmds...)
}

// archiveLastExchange persists the confirmed user/assistant pair that
// CompleteSend just appended.
func (m Model) archiveLastExchange() tea.Cmd {
	if m.arc == nil {
		return nil
	}
	messages := m.state.Messages()
	if len(messages) < 2 {
		return nil
	}
	user := messages[len(messages)-2]
	assistant := messages[len(messages)-1]
	if user.Role != model.RoleUser || assistant.Role != model.RoleAssistant {
		return nil
	}
	return archiveExchangeCmd(m.arc, user, assistant)
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusInput {
		m.focus = FocusSidebar
		m.input.Blur()
		m.sidebar.SetFocused(true)
		return *m, nil
	}
	m.focusInput()
	return *m, nil
}

func (m *Model) focusInput() {
	m.focus = FocusInput
	m.sidebar.SetFocused(false)
	m.input.Focus()
}

func (m *Model) cyclePersona() {
	personas := m.state.Personas()
	if len(personas) < 2 {
		return
	}
	current := m.state.PersonaID()
	for i, p := range personas {
		if p.ID == current {
			m.state.SelectPersona(personas[(i+1)%len(personas)].ID)
			break
		}
	}
	m.syncStatusBar()
}

func (m Model) exportCurrent() (tea.Model, tea.Cmd) {
	current := m.state.Current()
	messages := m.state.Messages()
	if current == nil || len(messages) == 0 {
		m.toasts.AddStatus("Nothing to export")
		return m, components.ToastTickCmd()
	}
	return m, exportTranscriptCmd(m.exportFormat, m.exportDir, *current, messages)
}

// applyConfig picks up the settings that are safe to change while the TUI
// runs: backend connection, poll interval, tier, and export format. Persona
// and theme changes apply on the next start.
func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	m.client = api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:    cfg.Server.BaseURL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Server.MaxRetries,
	})
	m.pollInterval = time.Duration(cfg.Server.StatusPollSecs) * time.Second
	m.state.SetTier(cfg.Chat.Tier)
	m.exportFormat = strings.ToLower(cfg.Export.Format)
	m.exportDir = cfg.Export.Dir
	m.syncStatusBar()
	return m, nil
}

func (m *Model) acknowledgeSelected(insights []model.Insight) (tea.Model, tea.Cmd) {
	selected, ok := m.insights.Selected(insights)
	if !ok || selected.Reviewed {
		return *m, nil
	}
	// Optimistic: mark reviewed now, roll back if the POST fails.
	m.state.MarkInsightReviewed(selected.ID)
	return *m, acknowledgeInsightCmd(m.client, selected.ID)
}

func (m *Model) syncSidebar() {
	m.sidebar.SetSessions(m.state.Sessions())
	currentID := ""
	if current := m.state.Current(); current != nil {
		currentID = current.ID
	}
	m.sidebar.SetCurrent(currentID)
}

func (m *Model) syncStatusBar() {
	if persona := m.state.ActivePersona(); persona != nil {
		m.statusBar.SetPersona(persona.Icon().Indicator() + " " + persona.Name)
	}
	m.statusBar.SetTier(m.state.Tier())
	m.statusBar.SetSending(m.state.Sending())
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focus == FocusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
