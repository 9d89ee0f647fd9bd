// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/godbot-tui/internal/model"
)

func assistantReply(id, sessionID, content string) model.Message {
	return model.Message{
		ID:        id,
		SessionID: sessionID,
		Role:      model.RoleAssistant,
		Content:   content,
		PersonaID: "godmind-default",
		Timestamp: time.Now(),
	}
}

func TestOptimisticRollbackRestoresExactList(t *testing.T) {
	s := New()
	s.SelectSession(model.Session{ID: "s1", Name: "First"})
	history := []model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "earlier"},
		{ID: "m2", Role: model.RoleAssistant, Content: "reply"},
	}
	require.True(t, s.ReplaceMessages("s1", history))

	before := append([]model.Message(nil), s.Messages()...)

	pending := model.NewPendingUserMessage("doomed", "s1", "godmind-default")
	require.True(t, s.BeginSend(pending))
	require.Len(t, s.Messages(), 3)

	s.FailSend()

	assert.Equal(t, before, s.Messages())
	assert.False(t, s.Sending())
}

func TestNoDoubleSend(t *testing.T) {
	s := New()

	first := model.NewPendingUserMessage("one", "", "godmind-default")
	second := model.NewPendingUserMessage("two", "", "godmind-default")

	require.True(t, s.BeginSend(first))
	assert.False(t, s.BeginSend(second), "second send while busy must be a no-op")
	assert.Len(t, s.Messages(), 1)
}

func TestBeginSendRejectsBlankInput(t *testing.T) {
	s := New()
	blank := model.NewPendingUserMessage("   \n\t", "", "")
	assert.False(t, s.BeginSend(blank))
	assert.Empty(t, s.Messages())
}

func TestSessionIsolationOnSwitch(t *testing.T) {
	s := New()

	s.SelectSession(model.Session{ID: "a", Name: "A"})
	require.True(t, s.ReplaceMessages("a", []model.Message{
		{ID: "a1", Role: model.RoleUser, Content: "from A"},
	}))

	s.SelectSession(model.Session{ID: "b", Name: "B"})
	bMessages := []model.Message{
		{ID: "b1", Role: model.RoleUser, Content: "from B"},
		{ID: "b2", Role: model.RoleAssistant, Content: "reply B"},
	}
	require.True(t, s.ReplaceMessages("b", bMessages))

	assert.Equal(t, bMessages, s.Messages())

	// A late fetch for A must not clobber B's list.
	assert.False(t, s.ReplaceMessages("a", []model.Message{{ID: "a2"}}))
	assert.Equal(t, bMessages, s.Messages())
}

func TestDeleteIsNotOptimistic(t *testing.T) {
	s := New()
	s.ReplaceSessions([]model.Session{{ID: "s1", Name: "Keep"}, {ID: "s2", Name: "Drop"}})
	s.SelectSession(model.Session{ID: "s2", Name: "Drop"})

	// A failed delete performs no transition at all; state is untouched by
	// construction. Confirm the success path removes and resets.
	s.RemoveSession("s2")

	require.Len(t, s.Sessions(), 1)
	assert.Equal(t, "s1", s.Sessions()[0].ID)
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Messages())
}

func TestRemoveSessionKeepsUnrelatedCurrent(t *testing.T) {
	s := New()
	s.ReplaceSessions([]model.Session{{ID: "s1"}, {ID: "s2"}})
	s.SelectSession(model.Session{ID: "s1"})
	require.True(t, s.ReplaceMessages("s1", []model.Message{{ID: "m1"}}))

	s.RemoveSession("s2")

	require.NotNil(t, s.Current())
	assert.Equal(t, "s1", s.Current().ID)
	assert.Len(t, s.Messages(), 1)
}

func TestStatusReplaceNotMerge(t *testing.T) {
	s := New()

	s.ReplaceStatus(&model.SystemStatus{
		LLMConnected:  true,
		TotalMessages: 10,
		FusionMode:    "balanced",
	})

	// Second poll with a disjoint field set: nothing from poll 1 survives.
	s.ReplaceStatus(&model.SystemStatus{
		DBConnected:    true,
		ActiveSessions: 3,
	})

	status := s.Status()
	require.NotNil(t, status)
	assert.False(t, status.LLMConnected)
	assert.Zero(t, status.TotalMessages)
	assert.Empty(t, status.FusionMode)
	assert.True(t, status.DBConnected)
	assert.Equal(t, 3, status.ActiveSessions)
}

func TestFirstSendAdoptsServerSession(t *testing.T) {
	s := New()
	s.ReplacePersonas([]model.Persona{{ID: "godmind-default", Name: "Godmind"}})
	require.Nil(t, s.Current())

	pending := model.NewPendingUserMessage("hello", "", "godmind-default")
	require.True(t, s.BeginSend(pending))

	outcome := s.CompleteSend("", assistantReply("m1", "s1", "hi"))
	assert.Equal(t, SendAdopted, outcome, "adoption must trigger a session-list refresh")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.False(t, msgs[0].Pending)
	assert.Equal(t, "s1", msgs[0].SessionID)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "hi", msgs[1].Content)

	current := s.Current()
	require.NotNil(t, current)
	assert.Equal(t, "s1", current.ID)
	assert.Equal(t, model.ProvisionalSessionName, current.Name)
	assert.Equal(t, 2, current.MessageCount)
	assert.False(t, s.Sending())
}

func TestSessionRefreshReplacesProvisionalEntity(t *testing.T) {
	s := New()
	require.True(t, s.BeginSend(model.NewPendingUserMessage("hello", "", "godmind-default")))
	s.CompleteSend("", assistantReply("m1", "s1", "hi"))

	s.ReplaceSessions([]model.Session{{ID: "s1", Name: "hello", MessageCount: 2}})

	require.NotNil(t, s.Current())
	assert.Equal(t, "hello", s.Current().Name)
}

func TestAcknowledgeRollsBackOnFailure(t *testing.T) {
	s := New()
	s.OpenInsights([]model.Insight{{ID: "d1", Title: "Pattern", Reviewed: false}})

	require.True(t, s.MarkInsightReviewed("d1"))
	assert.True(t, s.Insights()[0].Reviewed)

	// Backend acknowledge failed: the flag comes back off.
	s.UnmarkInsightReviewed("d1")
	assert.False(t, s.Insights()[0].Reviewed)
}

func TestMarkInsightReviewedUnknownID(t *testing.T) {
	s := New()
	s.OpenInsights([]model.Insight{{ID: "d1", Reviewed: true}})

	assert.False(t, s.MarkInsightReviewed("d1"), "already reviewed")
	assert.False(t, s.MarkInsightReviewed("nope"))
}

func TestSendResultAfterSwitchIsDropped(t *testing.T) {
	s := New()
	s.SelectSession(model.Session{ID: "a", Name: "A"})
	require.True(t, s.ReplaceMessages("a", nil))

	require.True(t, s.BeginSend(model.NewPendingUserMessage("for A", "a", "")))

	// User switches to B while the send is in flight.
	s.SelectSession(model.Session{ID: "b", Name: "B"})
	bList := []model.Message{{ID: "b1", Role: model.RoleUser, Content: "from B"}}
	require.True(t, s.ReplaceMessages("b", bList))

	outcome := s.CompleteSend("a", assistantReply("m9", "a", "late reply"))
	assert.Equal(t, SendStale, outcome)
	assert.Equal(t, bList, s.Messages(), "late reply must not land in B's list")
	assert.False(t, s.Sending())
}

func TestFirstSendResultAfterSwitchIsDropped(t *testing.T) {
	s := New()
	require.True(t, s.BeginSend(model.NewPendingUserMessage("hello", "", "")))

	s.SelectSession(model.Session{ID: "b", Name: "B"})
	require.True(t, s.ReplaceMessages("b", nil))

	outcome := s.CompleteSend("", assistantReply("m1", "s1", "hi"))
	assert.Equal(t, SendStale, outcome)
	assert.Equal(t, "b", s.Current().ID)
	assert.Empty(t, s.Messages())
}

func TestDashboardDiscardedOnClose(t *testing.T) {
	s := New()
	s.OpenDashboard(&model.DashboardSnapshot{EfficiencyScore: 0.9})
	require.NotNil(t, s.Dashboard())

	s.CloseDashboard()
	assert.Nil(t, s.Dashboard(), "snapshot must not be cached across opens")
}

func TestStartNewSessionClearsConversation(t *testing.T) {
	s := New()
	s.SelectSession(model.Session{ID: "s1"})
	require.True(t, s.ReplaceMessages("s1", []model.Message{{ID: "m1"}}))

	s.StartNewSession()

	assert.Nil(t, s.Current())
	assert.Empty(t, s.Messages())
}

func TestPersonaSelectionSurvivesRefresh(t *testing.T) {
	s := New()
	s.ReplacePersonas([]model.Persona{
		{ID: "godmind-default", Name: "Godmind"},
		{ID: "sentinel-guard", Name: "Sentinel"},
	})

	require.True(t, s.SelectPersona("sentinel-guard"))
	s.ReplacePersonas([]model.Persona{
		{ID: "godmind-default", Name: "Godmind"},
		{ID: "sentinel-guard", Name: "Sentinel"},
	})
	assert.Equal(t, "sentinel-guard", s.PersonaID())

	// Selected persona vanished: selection falls back to the first entry.
	s.ReplacePersonas([]model.Persona{{ID: "godmind-default", Name: "Godmind"}})
	assert.Equal(t, "godmind-default", s.PersonaID())

	assert.False(t, s.SelectPersona("missing"))
}
