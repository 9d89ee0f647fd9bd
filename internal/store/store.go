// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"strings"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// SEND OUTCOME
// =============================================================================

// SendOutcome describes how a completed send was reconciled into the store.
type SendOutcome int

const (
	// SendApplied means the assistant reply was appended to the current list.
	SendApplied SendOutcome = iota
	// SendAdopted means the reply also created a session that is now current;
	// the caller should trigger a session-list refresh.
	SendAdopted
	// SendStale means the user navigated away while the send was in flight
	// and the reply was dropped rather than landing in an unrelated session.
	SendStale
)

// =============================================================================
// STORE
// =============================================================================

// Store is the single owner of conversation state. It is not safe for
// concurrent use; it belongs to the Bubble Tea update loop.
type Store struct {
	personas []model.Persona
	sessions []model.Session
	current  *model.Session
	messages []model.Message

	status    *model.SystemStatus
	dashboard *model.DashboardSnapshot
	insights  []model.Insight

	// Active selection, carried on every send.
	personaID string
	tier      string

	// Single in-flight send.
	sending   bool
	pendingID string
}

// New creates an empty store with the default persona selected.
func New() *Store {
	return &Store{
		personaID: model.DefaultPersonaID,
	}
}

// =============================================================================
// PERSONAS & SELECTION
// =============================================================================

// ReplacePersonas swaps in a freshly fetched persona set.
func (s *Store) ReplacePersonas(personas []model.Persona) {
	s.personas = personas
	// Keep the selection valid if the backend dropped the selected persona.
	if s.personaByID(s.personaID) == nil && len(personas) > 0 {
		s.personaID = personas[0].ID
	}
}

// Personas returns the current persona set.
func (s *Store) Personas() []model.Persona {
	return s.personas
}

// SelectPersona changes the active persona if the id is known.
func (s *Store) SelectPersona(id string) bool {
	if s.personaByID(id) == nil {
		return false
	}
	s.personaID = id
	return true
}

// SetPreferredPersona records the configured persona before the roster has
// loaded. ReplacePersonas falls back to the first persona if the backend
// does not know the id.
func (s *Store) SetPreferredPersona(id string) {
	if id != "" {
		s.personaID = id
	}
}

// PersonaID returns the active persona id.
func (s *Store) PersonaID() string {
	return s.personaID
}

// ActivePersona returns the selected persona entity, or nil before the first
// persona fetch lands.
func (s *Store) ActivePersona() *model.Persona {
	return s.personaByID(s.personaID)
}

func (s *Store) personaByID(id string) *model.Persona {
	for i := range s.personas {
		if s.personas[i].ID == id {
			return &s.personas[i]
		}
	}
	return nil
}

// SetTier sets the access tier passed through on sends.
func (s *Store) SetTier(tier string) {
	s.tier = tier
}

// Tier returns the active tier.
func (s *Store) Tier() string {
	return s.tier
}

// =============================================================================
// SESSIONS
// =============================================================================

// ReplaceSessions swaps in a freshly fetched session list. If the current
// session appears in the list, the authoritative entity replaces whatever
// provisional copy the store held; if it does not, the current pointer is
// left alone so an in-flight refresh cannot yank the open conversation.
func (s *Store) ReplaceSessions(sessions []model.Session) {
	s.sessions = sessions
	if s.current == nil {
		return
	}
	for i := range sessions {
		if sessions[i].ID == s.current.ID {
			current := sessions[i]
			s.current = &current
			return
		}
	}
}

// Sessions returns the current session list.
func (s *Store) Sessions() []model.Session {
	return s.sessions
}

// Current returns the current session, or nil when composing a new one.
func (s *Store) Current() *model.Session {
	return s.current
}

// SelectSession makes a session current. The message list keeps its previous
// contents until ReplaceMessages delivers the fetch for this session, so a
// failed load degrades to stale-but-present data.
func (s *Store) SelectSession(session model.Session) {
	sess := session
	s.current = &sess
}

// StartNewSession clears the current session and message list. No network
// call: the backend creates the session entity on the first send.
func (s *Store) StartNewSession() {
	s.current = nil
	s.messages = nil
}

// RemoveSession removes a confirmed-deleted session from the list. If it was
// current, the conversation view resets. Callers invoke this only after the
// backend confirms deletion; a failed delete leaves state untouched.
func (s *Store) RemoveSession(id string) {
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}
	s.sessions = kept

	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.messages = nil
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// ReplaceMessages installs the fetched history for a session, wholesale. The
// fetch is dropped if the user has since navigated elsewhere, keeping the
// list and the current session in lockstep.
func (s *Store) ReplaceMessages(sessionID string, messages []model.Message) bool {
	if s.current == nil || s.current.ID != sessionID {
		return false
	}
	s.messages = messages
	return true
}

// Messages returns the message list for the current session.
func (s *Store) Messages() []model.Message {
	return s.messages
}

// =============================================================================
// SEND LIFECYCLE
// =============================================================================

// BeginSend inserts the optimistic user message and marks the store busy.
// It refuses empty input and refuses to start a second send while one is in
// flight, which also guarantees at most one unconfirmed message in the list.
func (s *Store) BeginSend(msg model.Message) bool {
	if s.sending || strings.TrimSpace(msg.Content) == "" {
		return false
	}
	s.messages = append(s.messages, msg)
	s.sending = true
	s.pendingID = msg.ID
	return true
}

// Sending reports whether a send is in flight.
func (s *Store) Sending() bool {
	return s.sending
}

// CompleteSend reconciles a successful send. dispatchedSession is the
// session id the request carried ("" for a first send). A reply that arrives
// after the user navigated to a different session is dropped.
func (s *Store) CompleteSend(dispatchedSession string, assistant model.Message) SendOutcome {
	pendingID := s.pendingID
	s.sending = false
	s.pendingID = ""

	if stale := s.sendIsStale(dispatchedSession, assistant.SessionID); stale {
		s.removeMessage(pendingID)
		return SendStale
	}

	// Confirm the optimistic insert and attach the session the backend chose.
	for i := range s.messages {
		if s.messages[i].ID == pendingID {
			s.messages[i].Pending = false
			s.messages[i].SessionID = assistant.SessionID
			break
		}
	}

	s.messages = append(s.messages, assistant)

	if s.current == nil {
		adopted := model.ProvisionalSession(assistant.SessionID, assistant.PersonaID)
		s.current = &adopted
		return SendAdopted
	}
	return SendApplied
}

// FailSend rolls back the optimistic insert, restoring the list to its exact
// pre-send contents.
func (s *Store) FailSend() {
	s.removeMessage(s.pendingID)
	s.sending = false
	s.pendingID = ""
}

// sendIsStale reports whether the conversation moved while the send was in
// flight. A first send (dispatched without a session) is stale once any
// other session has been selected; a session-bound send is stale when that
// session is no longer current.
func (s *Store) sendIsStale(dispatchedSession, responseSession string) bool {
	if dispatchedSession == "" {
		return s.current != nil && s.current.ID != responseSession
	}
	return s.current == nil || s.current.ID != dispatchedSession
}

func (s *Store) removeMessage(id string) {
	if id == "" {
		return
	}
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

// =============================================================================
// STATUS
// =============================================================================

// ReplaceStatus swaps in a new status snapshot wholesale. Fields from the
// previous snapshot never survive a poll.
func (s *Store) ReplaceStatus(status *model.SystemStatus) {
	s.status = status
}

// Status returns the latest status snapshot, or nil before the first poll.
func (s *Store) Status() *model.SystemStatus {
	return s.status
}

// =============================================================================
// OVERLAYS
// =============================================================================

// OpenDashboard installs a freshly fetched dashboard snapshot.
func (s *Store) OpenDashboard(snapshot *model.DashboardSnapshot) {
	s.dashboard = snapshot
}

// CloseDashboard discards the snapshot; the next open refetches.
func (s *Store) CloseDashboard() {
	s.dashboard = nil
}

// Dashboard returns the open snapshot, or nil when the overlay is closed.
func (s *Store) Dashboard() *model.DashboardSnapshot {
	return s.dashboard
}

// OpenInsights installs a freshly fetched insight feed.
func (s *Store) OpenInsights(insights []model.Insight) {
	s.insights = insights
}

// CloseInsights discards the feed.
func (s *Store) CloseInsights() {
	s.insights = nil
}

// Insights returns the open feed, or nil when the overlay is closed.
func (s *Store) Insights() []model.Insight {
	return s.insights
}

// InsightsOpen reports whether the insight overlay holds a feed.
func (s *Store) InsightsOpen() bool {
	return s.insights != nil
}

// MarkInsightReviewed optimistically flags an insight as reviewed before the
// acknowledge request resolves. Returns false if the id is unknown or the
// insight was already reviewed.
func (s *Store) MarkInsightReviewed(id string) bool {
	for i := range s.insights {
		if s.insights[i].ID == id && !s.insights[i].Reviewed {
			s.insights[i].Reviewed = true
			return true
		}
	}
	return false
}

// UnmarkInsightReviewed rolls the optimistic flag back after a failed
// acknowledge, mirroring the send path's rollback.
func (s *Store) UnmarkInsightReviewed(id string) {
	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights[i].Reviewed = false
			return
		}
	}
}
