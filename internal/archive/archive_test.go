// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/godbot-tui/internal/model"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func exchange(sessionID, userID, botID string, at time.Time) (model.Message, model.Message) {
	user := model.Message{
		ID:        userID,
		SessionID: sessionID,
		Role:      model.RoleUser,
		Content:   "hello",
		Timestamp: at,
	}
	bot := model.Message{
		ID:          botID,
		SessionID:   sessionID,
		Role:        model.RoleAssistant,
		Content:     "hi there",
		PersonaID:   "godmind-default",
		Timestamp:   at.Add(time.Second),
		FusionMode:  "single",
		ModelsUsed:  []string{"gpt-4o-mini"},
		CreditsUsed: 0.5,
	}
	return user, bot
}

func TestRecordAndReadTranscript(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	user, bot := exchange("s1", "u1", "b1", base)
	require.NoError(t, a.RecordExchange(ctx, user, bot))

	transcript, err := a.SessionTranscript(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, transcript, 2)

	assert.Equal(t, "u1", transcript[0].ID)
	assert.Equal(t, model.RoleUser, transcript[0].Role)
	assert.Equal(t, "b1", transcript[1].ID)
	assert.Equal(t, []string{"gpt-4o-mini"}, transcript[1].ModelsUsed)
	assert.Equal(t, 0.5, transcript[1].CreditsUsed)
	assert.True(t, transcript[0].Timestamp.Before(transcript[1].Timestamp))
}

func TestRecordExchangeIsIdempotent(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	user, bot := exchange("s1", "u1", "b1", time.Now().UTC())
	require.NoError(t, a.RecordExchange(ctx, user, bot))
	require.NoError(t, a.RecordExchange(ctx, user, bot))

	transcript, err := a.SessionTranscript(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, transcript, 2)
}

func TestSessionsOrderedByRecency(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	oldUser, oldBot := exchange("old", "u1", "b1", base)
	newUser, newBot := exchange("new", "u2", "b2", base.Add(time.Hour))
	require.NoError(t, a.RecordExchange(ctx, oldUser, oldBot))
	require.NoError(t, a.RecordExchange(ctx, newUser, newBot))

	sessions, err := a.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "new", sessions[0].SessionID)
	assert.Equal(t, 2, sessions[0].Messages)
	assert.Equal(t, "old", sessions[1].SessionID)
}

func TestTranscriptForUnknownSessionIsEmpty(t *testing.T) {
	a := openTestArchive(t)

	transcript, err := a.SessionTranscript(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, transcript)
}
