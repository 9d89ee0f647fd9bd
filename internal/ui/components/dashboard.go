// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD OVERLAY
// =============================================================================

// Dashboard renders the usage snapshot overlay. The snapshot is fetched when
// the overlay opens and discarded on close, so there is no local state beyond
// layout.
type Dashboard struct {
	width  int
	height int
}

// NewDashboard creates a dashboard renderer.
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// SetSize updates the overlay dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the snapshot. A nil snapshot means the fetch is in flight.
func (d *Dashboard) View(snap *model.DashboardSnapshot) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Usage Dashboard"))
	b.WriteString("\n\n")

	if snap == nil {
		b.WriteString(styles.Help.Render("loading..."))
		return d.frame(b.String())
	}

	b.WriteString(d.renderUsage(snap))
	b.WriteString("\n")
	b.WriteString(d.renderBreakdown(snap.ModelBreakdown))
	b.WriteString("\n")
	b.WriteString(d.renderScores(snap))
	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render("esc to close"))

	return d.frame(b.String())
}

func (d *Dashboard) frame(content string) string {
	maxWidth := d.width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	return styles.Modal.MaxWidth(maxWidth).Render(content)
}

func (d *Dashboard) renderUsage(snap *model.DashboardSnapshot) string {
	var b strings.Builder

	tier := snap.TierInfo.Name
	if tier == "" {
		tier = snap.Usage.Tier
	}
	if tier != "" {
		b.WriteString(fmt.Sprintf("Tier: %s\n", tier))
	}

	used, limit := snap.Usage.CreditsUsed, snap.Usage.CreditsLimit
	b.WriteString(fmt.Sprintf("Credits: %.1f / %.1f\n", used, limit))
	if limit > 0 {
		pct := int(used / limit * 100)
		b.WriteString(renderBar(pct*30/100, 30, barColorFor(pct)))
		b.WriteString(fmt.Sprintf(" %d%%\n", pct))
	}
	return b.String()
}

func (d *Dashboard) renderBreakdown(rows []model.ModelUsage) string {
	if len(rows) == 0 {
		return ""
	}

	maxCredits := 0.0
	for _, row := range rows {
		if row.Credits > maxCredits {
			maxCredits = row.Credits
		}
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Per-model usage"))
	b.WriteString("\n")
	for _, row := range rows {
		width := 0
		if maxCredits > 0 {
			width = int(row.Credits / maxCredits * 20)
		}
		b.WriteString(fmt.Sprintf("%-24s %s %.1f (%d req)\n",
			row.Model, renderBar(width, 20, "12"), row.Credits, row.Requests))
	}
	return b.String()
}

func (d *Dashboard) renderScores(snap *model.DashboardSnapshot) string {
	var b strings.Builder

	if snap.CostComparison.Baseline > 0 {
		saved := snap.CostComparison.Baseline - snap.CostComparison.Actual
		b.WriteString(fmt.Sprintf("Cost: %.2f vs %.2f baseline (%.2f saved)\n",
			snap.CostComparison.Actual, snap.CostComparison.Baseline, saved))
	}
	if snap.EfficiencyScore > 0 {
		b.WriteString(fmt.Sprintf("Efficiency: %.0f%%\n", snap.EfficiencyScore*100))
	}
	if snap.EmotionalBond > 0 {
		b.WriteString(fmt.Sprintf("Bond: %.0f%%\n", snap.EmotionalBond*100))
	}
	return b.String()
}

// renderBar renders a horizontal bar chart.
func renderBar(value, maxWidth int, color string) string {
	if value < 0 {
		value = 0
	}
	if value > maxWidth {
		value = maxWidth
	}

	filled := strings.Repeat("#", value)
	empty := strings.Repeat("-", maxWidth-value)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return barStyle.Render(filled) + emptyStyle.Render(empty)
}

func barColorFor(pct int) string {
	switch {
	case pct >= 90:
		return "9" // red
	case pct >= 70:
		return "11" // yellow
	default:
		return "2" // green
	}
}
