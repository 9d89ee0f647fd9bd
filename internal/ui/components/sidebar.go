// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
	"github.com/jeranaias/godbot-tui/internal/util"
)

// =============================================================================
// SESSION SIDEBAR
// =============================================================================

// Sidebar renders the session list pane. The cursor is a view concern; the
// active session comes from the conversation state.
type Sidebar struct {
	sessions  []model.Session
	cursor    int
	currentID string
	width     int
	height    int
	focused   bool
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{width: 28}
}

// SetSize sets the pane dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused toggles keyboard focus highlighting.
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// SetSessions replaces the listed sessions and clamps the cursor.
func (s *Sidebar) SetSessions(sessions []model.Session) {
	s.sessions = sessions
	if s.cursor >= len(sessions) {
		s.cursor = len(sessions) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// SetCurrent marks the session whose conversation is on screen.
func (s *Sidebar) SetCurrent(sessionID string) {
	s.currentID = sessionID
}

// CursorUp moves the cursor up one row.
func (s *Sidebar) CursorUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// CursorDown moves the cursor down one row.
func (s *Sidebar) CursorDown() {
	if s.cursor < len(s.sessions)-1 {
		s.cursor++
	}
}

// Selected returns the session under the cursor, or false when the list is
// empty.
func (s *Sidebar) Selected() (model.Session, bool) {
	if len(s.sessions) == 0 {
		return model.Session{}, false
	}
	return s.sessions[s.cursor], true
}

// View renders the pane.
func (s *Sidebar) View() string {
	innerWidth := s.width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Sessions"))
	b.WriteString("\n")

	if len(s.sessions) == 0 {
		b.WriteString(styles.Help.Render("no sessions yet"))
	}

	visible := s.visibleWindow()
	for i, sess := range visible.sessions {
		idx := visible.offset + i
		b.WriteString("\n")
		b.WriteString(s.renderRow(sess, idx, innerWidth))
	}

	frame := styles.Sidebar
	if s.focused {
		frame = styles.SidebarFocused
	}
	if s.height > 0 {
		frame = frame.Height(s.height - 2)
	}
	return frame.Width(s.width - 2).Render(b.String())
}

func (s *Sidebar) renderRow(sess model.Session, idx, width int) string {
	marker := "  "
	if sess.ID == s.currentID {
		marker = styles.StatusIndicators.Active + " "
	}

	name := util.TruncateWidth(sess.Name, width-8)
	line := marker + name
	meta := strconv.Itoa(sess.MessageCount) + " " + sess.Age()
	line += "\n   " + styles.Timestamp.Render(util.TruncateWidth(meta, width-3))

	if idx == s.cursor && s.focused {
		return styles.SelectedItem.Render(line)
	}
	return line
}

type window struct {
	sessions []model.Session
	offset   int
}

// visibleWindow keeps the cursor on screen when the list outgrows the pane.
// Each session takes two rows.
func (s *Sidebar) visibleWindow() window {
	rows := (s.height - 4) / 2
	if rows <= 0 || len(s.sessions) <= rows {
		return window{sessions: s.sessions}
	}
	offset := s.cursor - rows/2
	if offset < 0 {
		offset = 0
	}
	if offset+rows > len(s.sessions) {
		offset = len(s.sessions) - rows
	}
	return window{sessions: s.sessions[offset : offset+rows], offset: offset}
}

// RenderDeleteConfirm renders the inline confirmation shown before a session
// is deleted.
func RenderDeleteConfirm(name string) string {
	return lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true).
		Render("Delete \"" + util.TruncateRunes(name, 30) + "\"? (y/n)")
}
