// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// SHARED COMPONENT STYLES
// =============================================================================

// Title - pane headers and the app title.
var Title = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// Sidebar - session list pane border.
var Sidebar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// SidebarFocused - session list pane border when focused.
var SidebarFocused = Sidebar.
	BorderForeground(Cyan)

// SelectedItem - highlighted row in lists.
var SelectedItem = lipgloss.NewStyle().
	Background(SelectionBg).
	Foreground(TextPrimary).
	Bold(true)

// UserLabel - "You" speaker label in the transcript.
var UserLabel = lipgloss.NewStyle().
	Foreground(UserFg).
	Bold(true)

// AssistantLabel - "GodBot" speaker label in the transcript.
var AssistantLabel = lipgloss.NewStyle().
	Foreground(AssistantFg).
	Bold(true)

// PendingMessage - optimistic messages awaiting server confirmation.
var PendingMessage = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// Timestamp - message timestamps and other fine print.
var Timestamp = lipgloss.NewStyle().
	Foreground(TextMuted)

// InputBox - the composer border.
var InputBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// InputBoxFocused - the composer border when focused.
var InputBoxFocused = InputBox.
	BorderForeground(Cyan)

// StatusBar - the bottom status line.
var StatusBar = lipgloss.NewStyle().
	Background(SurfaceDim).
	Foreground(TextSecondary).
	Padding(0, 1)

// Overlay window for dashboard and insight views.
var Modal = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Purple).
	Padding(1, 2)

// Help - keybinding hints.
var Help = lipgloss.NewStyle().
	Foreground(TextMuted)
