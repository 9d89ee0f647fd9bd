// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/godbot-tui/internal/api"
	"github.com/jeranaias/godbot-tui/internal/archive"
	"github.com/jeranaias/godbot-tui/internal/export"
	"github.com/jeranaias/godbot-tui/internal/logging"
	"github.com/jeranaias/godbot-tui/internal/model"
)

// requestTimeout bounds every API command. Chat sends get longer since the
// backend may fan out to several models.
const (
	requestTimeout = 15 * time.Second
	chatTimeout    = 60 * time.Second
)

// =============================================================================
// BOOTSTRAP AND REFRESH COMMANDS
// =============================================================================

func loadPersonasCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		personas, err := client.ListPersonas(ctx)
		if err != nil {
			return LoadFailedMsg{What: "personas", Err: err}
		}
		return PersonasLoadedMsg{Personas: personas}
	}
}

func loadSessionsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return LoadFailedMsg{What: "sessions", Err: err}
		}
		return SessionsLoadedMsg{Sessions: sessions}
	}
}

func loadMessagesCmd(client *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		messages, err := client.GetMessages(ctx, sessionID)
		if err != nil {
			return LoadFailedMsg{What: "messages", Err: err}
		}
		return MessagesLoadedMsg{SessionID: sessionID, Messages: messages}
	}
}

// =============================================================================
// SEND AND DELETE COMMANDS
// =============================================================================

func sendChatCmd(client *api.Client, req api.ChatRequest) tea.Cmd {
	dispatched := req.SessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		resp, err := client.SendChat(ctx, req)
		if err != nil {
			return SendFailedMsg{Err: err}
		}
		return SendResultMsg{DispatchedSession: dispatched, Response: resp}
	}
}

func deleteSessionCmd(client *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteSession(ctx, sessionID); err != nil {
			return DeleteFailedMsg{SessionID: sessionID, Err: err}
		}
		return SessionDeletedMsg{SessionID: sessionID}
	}
}

// =============================================================================
// STATUS POLLING COMMANDS
// =============================================================================

func statusTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}

func loadStatusCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		status, err := client.GetStatus(ctx)
		if err != nil {
			return StatusFailedMsg{Err: err}
		}
		return StatusLoadedMsg{Status: status}
	}
}

// =============================================================================
// OVERLAY COMMANDS
// =============================================================================

func loadDashboardCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		snapshot, err := client.GetDashboard(ctx)
		if err != nil {
			return LoadFailedMsg{What: "dashboard", Err: err}
		}
		return DashboardLoadedMsg{Snapshot: snapshot}
	}
}

func loadInsightsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		insights, err := client.GetInsights(ctx)
		if err != nil {
			return LoadFailedMsg{What: "insights", Err: err}
		}
		return InsightsLoadedMsg{Insights: insights}
	}
}

func acknowledgeInsightCmd(client *api.Client, insightID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := client.AcknowledgeInsight(ctx, insightID)
		return AckResultMsg{InsightID: insightID, Err: err}
	}
}

// =============================================================================
// EXPORT AND ARCHIVE COMMANDS
// =============================================================================

func exportTranscriptCmd(format, dir string, session model.Session, messages []model.Message) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		if dir != "" {
			opts.OutputDir = dir
		}
		transcript := &export.Transcript{
			Session:  session,
			Messages: messages,
		}

		var path string
		var err error
		if format == "json" {
			path, err = export.ExportJSON(transcript, opts)
		} else {
			path, err = export.ExportMarkdown(transcript, opts)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func archiveExchangeCmd(arc *archive.Archive, user, assistant model.Message) tea.Cmd {
	if arc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := arc.RecordExchange(ctx, user, assistant); err != nil {
			logging.L().Warn("archive write failed", zap.Error(err))
			return ArchiveWrittenMsg{Err: err}
		}
		return ArchiveWrittenMsg{}
	}
}
