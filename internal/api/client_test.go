// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/godbot-tui/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClientWithConfig(&ClientConfig{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
}

func TestListPersonas(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/personas", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Persona{
			{ID: "godmind-default", Name: "Godmind", IconTag: "Brain"},
			{ID: "sentinel-guard", Name: "Sentinel", IconTag: "Shield"},
		})
	}))

	personas, err := client.ListPersonas(context.Background())
	require.NoError(t, err)
	require.Len(t, personas, 2)
	assert.Equal(t, "godmind-default", personas[0].ID)
	assert.Equal(t, model.IconBrain, personas[0].Icon())
}

func TestSendChat(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)
		assert.Empty(t, req.SessionID)

		json.NewEncoder(w).Encode(ChatResponse{
			ID:          "m1",
			Content:     "hi",
			PersonaID:   "godmind-default",
			SessionID:   "s1",
			Timestamp:   time.Now().UTC(),
			FusionMode:  "balanced",
			ModelsUsed:  []string{"alpha", "beta"},
			CreditsUsed: 0.5,
		})
	}))

	resp, err := client.SendChat(context.Background(), ChatRequest{
		Message:   "hello",
		PersonaID: "godmind-default",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SessionID)

	msg := resp.AssistantMessage()
	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Equal(t, "hi", msg.Content)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, 0.5, msg.CreditsUsed)
}

func TestSendChatNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.SendChat(context.Background(), ChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "writes must hit the wire exactly once")
}

func TestSendChatBackendDetailSurfaced(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "persona quota exhausted"})
	}))

	_, err := client.SendChat(context.Background(), ChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, "persona quota exhausted", UserMessage(err, "Failed to send message"))
}

func TestGetJSONRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]model.Session{{ID: "s1", Name: "First"}})
	}))

	sessions, err := client.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	}))

	_, err := client.GetMessages(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeleteSession(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/sessions/s1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Session deleted"})
	}))

	require.NoError(t, client.DeleteSession(context.Background(), "s1"))
}

func TestGetStatusStampsFetchTime(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SystemStatus{
			LLMConnected:  true,
			DBConnected:   true,
			TotalMessages: 42,
		})
	}))

	before := time.Now()
	status, err := client.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.LLMConnected)
	assert.Equal(t, 42, status.TotalMessages)
	assert.False(t, status.FetchedAt.Before(before))
}

func TestGetInsightsUnwrapsEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dreamchain", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"insights": []model.Insight{
				{ID: "d1", Title: "Pattern detected", Priority: "high"},
			},
		})
	}))

	insights, err := client.GetInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "d1", insights[0].ID)
	assert.False(t, insights[0].Reviewed)
}

func TestAcknowledgeInsight(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/dreamchain/acknowledge/d1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.AcknowledgeInsight(context.Background(), "d1"))
}

func TestBackendDownClassification(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		// Reserved TEST-NET address, nothing listens here.
		BaseURL:    "http://192.0.2.1:9",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})

	_, err := client.ListPersonas(context.Background())
	require.Error(t, err)
	assert.True(t, IsBackendDown(err) || IsTimeout(err))
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", UserMessage(nil, "fallback"))
	assert.Equal(t, "request timed out", UserMessage(ErrTimeout, "fallback"))
}
