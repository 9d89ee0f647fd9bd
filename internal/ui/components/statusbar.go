// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
	"github.com/jeranaias/godbot-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom status line: backend health, active persona,
// tier, and send state.
type StatusBar struct {
	width   int
	status  *model.SystemStatus
	persona string
	tier    string
	sending bool
}

// NewStatusBar creates a status bar with no backend status yet.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetStatus replaces the displayed backend status.
func (s *StatusBar) SetStatus(status *model.SystemStatus) {
	s.status = status
}

// SetPersona sets the active persona name.
func (s *StatusBar) SetPersona(name string) {
	s.persona = name
}

// SetTier sets the subscription tier label.
func (s *StatusBar) SetTier(tier string) {
	s.tier = tier
}

// SetSending marks whether a chat request is in flight.
func (s *StatusBar) SetSending(sending bool) {
	s.sending = sending
}

// View renders the status line.
func (s *StatusBar) View() string {
	var parts []string

	parts = append(parts, s.renderHealth())

	if s.persona != "" {
		parts = append(parts, s.persona)
	}
	if s.tier != "" {
		parts = append(parts, "tier:"+s.tier)
	}
	if s.status != nil {
		if s.status.FusionMode != "" {
			parts = append(parts, "fusion:"+s.status.FusionMode)
		}
		if s.status.TotalMessages > 0 {
			parts = append(parts, strconv.Itoa(s.status.TotalMessages)+" msgs")
		}
		if age := s.statusAge(); age != "" {
			parts = append(parts, age)
		}
	}
	if s.sending {
		parts = append(parts, styles.StatusIndicators.Pending+" sending")
	}

	line := strings.Join(parts, "  |  ")
	if s.width > 0 {
		line = util.TruncateWidth(line, s.width-2)
	}
	return styles.StatusBar.Render(line)
}

// renderHealth shows backend, LLM, and DB connectivity at a glance.
func (s *StatusBar) renderHealth() string {
	if s.status == nil {
		return styles.StatusIndicators.Pending + " connecting"
	}

	var b strings.Builder
	if s.status.Healthy() {
		b.WriteString(styles.StatusIndicators.Success)
	} else {
		b.WriteString(styles.StatusIndicators.Error)
	}
	b.WriteString(" llm:")
	b.WriteString(onOff(s.status.LLMConnected))
	b.WriteString(" db:")
	b.WriteString(onOff(s.status.DBConnected))
	return b.String()
}

// statusAge labels stale polls so a frozen backend is visible.
func (s *StatusBar) statusAge() string {
	if s.status.FetchedAt.IsZero() {
		return ""
	}
	age := time.Since(s.status.FetchedAt)
	if age < 90*time.Second {
		return ""
	}
	return styles.StatusIndicators.Warning + " stale " + age.Round(time.Minute).String()
}

func onOff(connected bool) string {
	if connected {
		return "up"
	}
	return "down"
}
