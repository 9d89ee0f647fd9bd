// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "GodBot"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a session.
//
// Messages arrive two ways: fetched from the backend (server-assigned ID) or
// inserted optimistically before the send round-trip completes (local ID,
// Pending=true). A pending message is removed from the list if its send fails.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	PersonaID string    `json:"persona_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Fusion metadata, present on assistant messages only.
	FusionMode  string   `json:"fusion_mode,omitempty"`
	ModelsUsed  []string `json:"models_used,omitempty"`
	CreditsUsed float64  `json:"credits_used,omitempty"`

	// Pending marks an optimistic insert that the backend has not yet
	// confirmed. Never persisted.
	Pending bool `json:"-"`
}

// NewPendingUserMessage creates the optimistic user message inserted before
// the send request is dispatched. The ID is local-only; the backend assigns
// its own identifier to the persisted copy.
func NewPendingUserMessage(content, sessionID, personaID string) Message {
	return Message{
		ID:        "local_" + uuid.NewString(),
		SessionID: sessionID,
		Role:      RoleUser,
		Content:   content,
		PersonaID: personaID,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

// IsLocal reports whether the message carries a client-generated ID.
func (m *Message) IsLocal() bool {
	return strings.HasPrefix(m.ID, "local_")
}

// Preview returns a truncated single-line preview of the message content.
func (m *Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Content, "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(strings.TrimSpace(m.Content)) == 0
}
