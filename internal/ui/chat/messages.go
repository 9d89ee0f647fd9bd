// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Bubble Tea message types for the chat view. Every asynchronous result
// (API responses, poll ticks, archive writes) arrives through one of these,
// so all state transitions happen inside Update.
package chat

import (
	"time"

	"github.com/jeranaias/godbot-tui/internal/api"
	"github.com/jeranaias/godbot-tui/internal/config"
	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// BOOTSTRAP AND REFRESH
// =============================================================================

// PersonasLoadedMsg delivers the persona roster.
type PersonasLoadedMsg struct {
	Personas []model.Persona
}

// SessionsLoadedMsg delivers the authoritative session list.
type SessionsLoadedMsg struct {
	Sessions []model.Session
}

// MessagesLoadedMsg delivers the full message list for one session.
type MessagesLoadedMsg struct {
	SessionID string
	Messages  []model.Message
}

// LoadFailedMsg reports a failed fetch of personas, sessions, or messages.
type LoadFailedMsg struct {
	What string
	Err  error
}

// =============================================================================
// SENDING
// =============================================================================

// SendResultMsg delivers a successful chat round trip. DispatchedSession is
// the session the request was sent under ("" for a first send); the store
// uses it to drop results that arrive after a session switch.
type SendResultMsg struct {
	DispatchedSession string
	Response          *api.ChatResponse
}

// SendFailedMsg reports a failed send; the optimistic message rolls back.
type SendFailedMsg struct {
	Err error
}

// =============================================================================
// SESSIONS
// =============================================================================

// SessionDeletedMsg confirms a server-side delete.
type SessionDeletedMsg struct {
	SessionID string
}

// DeleteFailedMsg reports a failed delete; the list is left untouched.
type DeleteFailedMsg struct {
	SessionID string
	Err       error
}

// =============================================================================
// STATUS POLLING
// =============================================================================

// StatusTickMsg fires on the poll interval.
type StatusTickMsg struct {
	Time time.Time
}

// StatusLoadedMsg delivers a fresh backend status snapshot.
type StatusLoadedMsg struct {
	Status *model.SystemStatus
}

// StatusFailedMsg reports a failed poll. Logged, never surfaced.
type StatusFailedMsg struct {
	Err error
}

// =============================================================================
// OVERLAYS
// =============================================================================

// DashboardLoadedMsg delivers the dashboard snapshot for the open overlay.
type DashboardLoadedMsg struct {
	Snapshot *model.DashboardSnapshot
}

// InsightsLoadedMsg delivers the DreamChain feed for the open overlay.
type InsightsLoadedMsg struct {
	Insights []model.Insight
}

// AckResultMsg reports the outcome of an insight acknowledgement. On error
// the optimistic reviewed flag rolls back.
type AckResultMsg struct {
	InsightID string
	Err       error
}

// =============================================================================
// EXPORT AND ARCHIVE
// =============================================================================

// ExportDoneMsg reports a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ArchiveWrittenMsg reports a background archive write. Failures are logged
// and shown once; the conversation itself is unaffected.
type ArchiveWrittenMsg struct {
	Err error
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// ConfigReloadedMsg delivers a configuration reloaded from disk while the TUI
// runs. Connection, poll, tier, and export settings take effect immediately;
// everything else applies on the next start.
type ConfigReloadedMsg struct {
	Config *config.Config
}
