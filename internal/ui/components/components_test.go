// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// TOASTS
// =============================================================================

func TestToastManagerNewestFirst(t *testing.T) {
	m := NewToastManager()
	m.AddStatus("first")
	m.AddError("second")

	toasts := m.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "second", toasts[0].Message)
	assert.Equal(t, ToastError, toasts[0].Kind)
}

func TestToastManagerCapsVisibleToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	assert.Len(t, m.Toasts(), 5)
}

func TestToastTickDropsExpired(t *testing.T) {
	m := NewToastManager()
	id := m.AddStatus("short lived")

	// Force expiry instead of sleeping.
	m.mu.Lock()
	m.toasts[0].CreatedAt = time.Now().Add(-time.Minute)
	m.mu.Unlock()

	assert.Empty(t, m.Tick())
	assert.False(t, m.HasToasts())

	m.Remove(id) // removing a gone toast is a no-op
}

func TestToastRemoveByID(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("boom")
	m.AddStatus("keep")

	m.Remove(id)
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "keep", toasts[0].Message)
}

func TestRenderToastIncludesIndicator(t *testing.T) {
	toast := Toast{Message: "backend unreachable", Kind: ToastError}
	out := RenderToast(toast, 80)
	assert.Contains(t, out, "[X]")
	assert.Contains(t, out, "backend unreachable")
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBarBeforeFirstPoll(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(80)
	assert.Contains(t, bar.View(), "connecting")
}

func TestStatusBarHealthyBackend(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(120)
	bar.SetPersona("GodMind")
	bar.SetTier("premium")
	bar.SetStatus(&model.SystemStatus{
		LLMConnected:  true,
		DBConnected:   true,
		TotalMessages: 42,
		FusionMode:    "trinity",
		FetchedAt:     time.Now(),
	})

	out := bar.View()
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "llm:up")
	assert.Contains(t, out, "db:up")
	assert.Contains(t, out, "GodMind")
	assert.Contains(t, out, "tier:premium")
	assert.Contains(t, out, "fusion:trinity")
	assert.Contains(t, out, "42 msgs")
}

func TestStatusBarDegradedBackend(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(120)
	bar.SetStatus(&model.SystemStatus{LLMConnected: false, DBConnected: true, FetchedAt: time.Now()})

	out := bar.View()
	assert.Contains(t, out, "[X]")
	assert.Contains(t, out, "llm:down")
}

func TestStatusBarShowsStalePoll(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(120)
	bar.SetStatus(&model.SystemStatus{
		LLMConnected: true,
		DBConnected:  true,
		FetchedAt:    time.Now().Add(-5 * time.Minute),
	})
	assert.Contains(t, bar.View(), "stale")
}

func TestStatusBarSendingIndicator(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(120)
	bar.SetSending(true)
	assert.Contains(t, bar.View(), "sending")
}

// =============================================================================
// SIDEBAR
// =============================================================================

func sidebarSessions() []model.Session {
	now := time.Now()
	return []model.Session{
		{ID: "s1", Name: "Morning check-in", MessageCount: 12, UpdatedAt: now},
		{ID: "s2", Name: "Project planning", MessageCount: 4, UpdatedAt: now},
		{ID: "s3", Name: "Late night thoughts", MessageCount: 30, UpdatedAt: now},
	}
}

func TestSidebarCursorMovement(t *testing.T) {
	sb := NewSidebar()
	sb.SetSessions(sidebarSessions())

	sb.CursorUp() // clamped at top
	sel, ok := sb.Selected()
	require.True(t, ok)
	assert.Equal(t, "s1", sel.ID)

	sb.CursorDown()
	sb.CursorDown()
	sb.CursorDown() // clamped at bottom
	sel, _ = sb.Selected()
	assert.Equal(t, "s3", sel.ID)
}

func TestSidebarCursorClampedOnShrink(t *testing.T) {
	sb := NewSidebar()
	sb.SetSessions(sidebarSessions())
	sb.CursorDown()
	sb.CursorDown()

	sb.SetSessions(sidebarSessions()[:1])
	sel, ok := sb.Selected()
	require.True(t, ok)
	assert.Equal(t, "s1", sel.ID)
}

func TestSidebarEmptyList(t *testing.T) {
	sb := NewSidebar()
	sb.SetSize(30, 20)

	_, ok := sb.Selected()
	assert.False(t, ok)
	assert.Contains(t, sb.View(), "no sessions yet")
}

func TestSidebarMarksCurrentSession(t *testing.T) {
	sb := NewSidebar()
	sb.SetSize(30, 20)
	sb.SetSessions(sidebarSessions())
	sb.SetCurrent("s2")

	assert.Contains(t, sb.View(), "[*]")
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestDashboardLoadingState(t *testing.T) {
	d := NewDashboard()
	d.SetSize(100, 40)
	assert.Contains(t, d.View(nil), "loading")
}

func TestDashboardRendersSnapshot(t *testing.T) {
	d := NewDashboard()
	d.SetSize(100, 40)

	out := d.View(&model.DashboardSnapshot{
		Usage:    model.Usage{CreditsUsed: 75, CreditsLimit: 100},
		TierInfo: model.TierInfo{Name: "premium"},
		ModelBreakdown: []model.ModelUsage{
			{Model: "gpt-4o-mini", Requests: 10, Credits: 5},
		},
		CostComparison:  model.CostComparison{Actual: 5, Baseline: 12},
		EfficiencyScore: 0.8,
	})

	assert.Contains(t, out, "premium")
	assert.Contains(t, out, "75.0 / 100.0")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "7.00 saved")
	assert.Contains(t, out, "Efficiency: 80%")
}

// =============================================================================
// INSIGHT FEED
// =============================================================================

func feedInsights() []model.Insight {
	return []model.Insight{
		{ID: "i1", Priority: "high", Title: "Sleep schedule drifting"},
		{ID: "i2", Priority: "low", Title: "New topic cluster", Reviewed: true},
	}
}

func TestInsightFeedStates(t *testing.T) {
	f := NewInsightFeed()
	f.SetSize(100, 40)

	assert.Contains(t, f.View(nil), "loading")
	assert.Contains(t, f.View([]model.Insight{}), "no insights yet")

	out := f.View(feedInsights())
	assert.Contains(t, out, "[!]")
	assert.Contains(t, out, "Sleep schedule drifting")
	assert.Contains(t, out, "[OK]") // reviewed marker
}

func TestInsightFeedSelection(t *testing.T) {
	f := NewInsightFeed()
	insights := feedInsights()

	sel, ok := f.Selected(insights)
	require.True(t, ok)
	assert.Equal(t, "i1", sel.ID)

	f.CursorDown(len(insights))
	f.CursorDown(len(insights)) // clamped
	sel, _ = f.Selected(insights)
	assert.Equal(t, "i2", sel.ID)

	f.Reset()
	sel, _ = f.Selected(insights)
	assert.Equal(t, "i1", sel.ID)

	_, ok = f.Selected(nil)
	assert.False(t, ok)
}
