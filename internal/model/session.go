// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// SESSION
// =============================================================================

// ProvisionalSessionName is the display name given to a session adopted from
// a first send, before the session list refresh delivers the authoritative
// entity.
const ProvisionalSessionName = "New Session"

// Session is a persisted conversation thread owned by the backend. The
// client creates sessions implicitly: sending without a current session makes
// the backend open one, and the returned id is adopted as current.
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PersonaID    string    `json:"persona_id,omitempty"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// ProvisionalSession builds the placeholder session adopted after a first
// send creates a session server-side. The real name and count arrive with
// the next session-list refresh.
func ProvisionalSession(id, personaID string) Session {
	return Session{
		ID:           id,
		Name:         ProvisionalSessionName,
		PersonaID:    personaID,
		MessageCount: 2,
		UpdatedAt:    time.Now(),
	}
}

// Age returns a coarse human-readable time since the session was last
// updated, for the sidebar.
func (s *Session) Age() string {
	if s.UpdatedAt.IsZero() {
		return ""
	}
	d := time.Since(s.UpdatedAt)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return itoa(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return itoa(int(d.Hours())) + "h"
	default:
		return itoa(int(d.Hours()/24)) + "d"
	}
}

// itoa avoids pulling fmt into the hot render path.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
