// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
	"github.com/jeranaias/godbot-tui/internal/util"
)

// =============================================================================
// INSIGHT FEED OVERLAY
// =============================================================================

// InsightFeed renders the DreamChain insight overlay with a cursor for
// acknowledging entries.
type InsightFeed struct {
	cursor int
	width  int
	height int
}

// NewInsightFeed creates an insight feed renderer.
func NewInsightFeed() *InsightFeed {
	return &InsightFeed{}
}

// SetSize updates the overlay dimensions.
func (f *InsightFeed) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// Reset moves the cursor to the top. Called when the overlay opens.
func (f *InsightFeed) Reset() {
	f.cursor = 0
}

// CursorUp moves the cursor up one entry.
func (f *InsightFeed) CursorUp() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// CursorDown moves the cursor down one entry, clamped to the feed length.
func (f *InsightFeed) CursorDown(count int) {
	if f.cursor < count-1 {
		f.cursor++
	}
}

// Selected returns the insight under the cursor, or false when the feed is
// empty.
func (f *InsightFeed) Selected(insights []model.Insight) (model.Insight, bool) {
	if len(insights) == 0 || f.cursor >= len(insights) {
		return model.Insight{}, false
	}
	return insights[f.cursor], true
}

// View renders the feed. A nil slice means the fetch is in flight.
func (f *InsightFeed) View(insights []model.Insight) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("DreamChain Insights"))
	b.WriteString("\n\n")

	switch {
	case insights == nil:
		b.WriteString(styles.Help.Render("loading..."))
	case len(insights) == 0:
		b.WriteString(styles.Help.Render("no insights yet"))
	default:
		for i, insight := range insights {
			b.WriteString(f.renderInsight(insight, i == f.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("enter to acknowledge, esc to close"))

	maxWidth := f.width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	return styles.Modal.MaxWidth(maxWidth).Render(b.String())
}

func (f *InsightFeed) renderInsight(insight model.Insight, selected bool) string {
	innerWidth := f.width - 16
	if innerWidth < 30 {
		innerWidth = 30
	}

	marker := insight.PriorityMarker()
	if insight.Reviewed {
		marker = styles.StatusIndicators.Success
	}

	title := util.TruncateWidth(insight.Title, innerWidth)
	line := fmt.Sprintf("%s %s", marker, title)
	if insight.Confidence > 0 {
		line += styles.Timestamp.Render(fmt.Sprintf(" %.0f%%", insight.Confidence*100))
	}
	if insight.Description != "" {
		line += "\n    " + styles.Help.Render(util.TruncateWidth(insight.Description, innerWidth-4))
	}

	if selected {
		return styles.SelectedItem.Render(line)
	}
	return line
}
