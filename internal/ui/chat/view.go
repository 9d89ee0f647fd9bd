// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/ui/components"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
)

func newTranscriptViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "starting godbot..."
	}

	switch m.overlay {
	case OverlayDashboard:
		return m.centerOverlay(m.dashboard.View(m.state.Dashboard()))
	case OverlayInsights:
		return m.centerOverlay(m.insights.View(m.state.Insights()))
	}

	chat := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderComposer(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), chat)

	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		screen = lipgloss.JoinVertical(lipgloss.Left,
			body,
			components.RenderToasts(toasts, m.width),
			m.statusBar.View(),
		)
	}
	return screen
}

func (m Model) centerOverlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	title := "GodBot"
	if current := m.state.Current(); current != nil {
		title = current.Name
	} else {
		title = "New conversation"
	}
	return styles.Title.Render(" " + title)
}

func (m Model) renderComposer() string {
	frame := styles.InputBox
	if m.focus == FocusInput {
		frame = styles.InputBoxFocused
	}

	var lines []string
	if m.confirmDelete != nil {
		lines = append(lines, components.RenderDeleteConfirm(m.confirmDelete.Name))
	}
	composer := m.input.View()
	if m.state.Sending() {
		composer = m.spinner.View() + " " + composer
	}
	lines = append(lines, frame.Width(m.viewport.Width-2).Render(composer))
	lines = append(lines, m.renderHints())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHints() string {
	var parts []string
	for _, b := range m.keyMap.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return styles.Help.Render(strings.Join(parts, "  "))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript re-renders the message list into the viewport and keeps
// the view pinned to the newest message.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	messages := m.state.Messages()
	if len(messages) == 0 {
		return styles.Help.Render("\n  Say something to start the conversation.")
	}

	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMessage(msg model.Message) string {
	label := styles.UserLabel
	if msg.Role == model.RoleAssistant {
		label = styles.AssistantLabel
	}

	var b strings.Builder
	b.WriteString(label.Render(msg.Role.DisplayName()))
	if !msg.Timestamp.IsZero() {
		b.WriteString(styles.Timestamp.Render("  " + msg.Timestamp.Format("15:04")))
	}
	if msg.Pending {
		b.WriteString(styles.Timestamp.Render("  " + styles.StatusIndicators.Pending + " sending"))
	}
	b.WriteString("\n")

	content := msg.Content
	if msg.Role == model.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	if msg.Pending {
		content = styles.PendingMessage.Render(content)
	}
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}
