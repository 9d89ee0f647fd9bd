// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of POST /api/chat. SessionID absent means "create a
// new session for this exchange"; the response carries the id the backend
// assigned.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	PersonaID string `json:"persona_id,omitempty"`
	Tier      string `json:"tier,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the assistant's reply to a chat request.
type ChatResponse struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	PersonaID   string    `json:"persona_id"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	FusionMode  string    `json:"fusion_mode,omitempty"`
	ModelsUsed  []string  `json:"models_used,omitempty"`
	CreditsUsed float64   `json:"credits_used,omitempty"`
}

// AssistantMessage converts the response into the message appended to the
// conversation list.
func (r *ChatResponse) AssistantMessage() model.Message {
	return model.Message{
		ID:          r.ID,
		SessionID:   r.SessionID,
		Role:        model.RoleAssistant,
		Content:     r.Content,
		PersonaID:   r.PersonaID,
		Timestamp:   r.Timestamp,
		FusionMode:  r.FusionMode,
		ModelsUsed:  r.ModelsUsed,
		CreditsUsed: r.CreditsUsed,
	}
}

// insightFeed wraps GET /api/dreamchain's response envelope.
type insightFeed struct {
	Insights []model.Insight `json:"insights"`
}

// apiError is the backend's error envelope. Detail, when present, is shown
// to the user verbatim.
type apiError struct {
	Detail string `json:"detail"`
}
