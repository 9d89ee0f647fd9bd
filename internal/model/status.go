// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// SYSTEM STATUS
// =============================================================================

// SystemStatus is a point-in-time snapshot of backend health and usage
// counters. Each poll replaces the whole snapshot; fields are never merged
// across polls.
type SystemStatus struct {
	Status         string `json:"status,omitempty"`
	LLMConnected   bool   `json:"llm_connected"`
	DBConnected    bool   `json:"db_connected"`
	ActiveSessions int    `json:"active_sessions,omitempty"`
	TotalMessages  int    `json:"total_messages"`
	PersonasCount  int    `json:"personas_count,omitempty"`
	FusionMode     string `json:"fusion_mode,omitempty"`

	// FetchedAt is set by the client when the snapshot lands, so the status
	// bar can show poll age. Not part of the wire shape.
	FetchedAt time.Time `json:"-"`
}

// Healthy reports whether the backend can serve chat: both the LLM and the
// database must be reachable.
func (s *SystemStatus) Healthy() bool {
	return s.LLMConnected && s.DBConnected
}

// =============================================================================
// DASHBOARD SNAPSHOT
// =============================================================================

// Usage summarizes credit consumption for the current billing window.
type Usage struct {
	CreditsUsed  float64 `json:"credits_used"`
	CreditsLimit float64 `json:"credits_limit"`
	Tier         string  `json:"tier,omitempty"`
}

// TierInfo describes the account's access tier.
type TierInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ModelUsage is one row of the per-model utilization breakdown.
type ModelUsage struct {
	Model    string  `json:"model"`
	Requests int     `json:"requests"`
	Credits  float64 `json:"credits"`
}

// CostComparison contrasts actual spend against the single-model baseline.
type CostComparison struct {
	Actual   float64 `json:"actual"`
	Baseline float64 `json:"baseline"`
}

// DashboardSnapshot is the opaque, read-mostly projection shown in the
// dashboard overlay. It is fetched when the overlay opens and discarded when
// it closes; nothing in it is cached across opens.
type DashboardSnapshot struct {
	Usage           Usage          `json:"usage"`
	TierInfo        TierInfo       `json:"tier_info"`
	ModelBreakdown  []ModelUsage   `json:"model_breakdown"`
	CostComparison  CostComparison `json:"cost_comparison"`
	EfficiencyScore float64        `json:"efficiency_score"`
	EmotionalBond   float64        `json:"emotional_bond"`
}

// =============================================================================
// DREAMCHAIN INSIGHTS
// =============================================================================

// Insight is a backend-generated DreamChain suggestion. Reviewed is the only
// field the client mutates, optimistically on acknowledgement.
type Insight struct {
	ID          string  `json:"id"`
	Type        string  `json:"type,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Reviewed    bool    `json:"reviewed"`
}

// PriorityMarker returns the ASCII marker rendered before the insight title.
func (i *Insight) PriorityMarker() string {
	switch i.Priority {
	case "high", "critical":
		return "[!]"
	case "medium":
		return "[~]"
	default:
		return "[ ]"
	}
}
