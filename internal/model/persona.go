// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// PERSONA ICON
// =============================================================================

// Icon is the closed set of persona display icons the client knows how to
// render. Unknown tags from the backend fall back to IconBot.
type Icon int

const (
	IconBot Icon = iota
	IconBrain
	IconSparkles
	IconShield
	IconHeart
)

// ParseIcon maps a backend icon tag to a known Icon. Unrecognized tags
// return IconBot.
func ParseIcon(tag string) Icon {
	switch tag {
	case "Brain":
		return IconBrain
	case "Sparkles":
		return IconSparkles
	case "Shield":
		return IconShield
	case "Heart":
		return IconHeart
	default:
		return IconBot
	}
}

// String returns the backend tag for the icon.
func (i Icon) String() string {
	switch i {
	case IconBrain:
		return "Brain"
	case IconSparkles:
		return "Sparkles"
	case IconShield:
		return "Shield"
	case IconHeart:
		return "Heart"
	default:
		return "Bot"
	}
}

// Indicator returns the ASCII glyph rendered next to the persona name.
func (i Icon) Indicator() string {
	switch i {
	case IconBrain:
		return "(@)"
	case IconSparkles:
		return "(*)"
	case IconShield:
		return "[#]"
	case IconHeart:
		return "<3 "
	default:
		return "[B]"
	}
}

// =============================================================================
// PERSONA
// =============================================================================

// Persona is a backend-defined conversation personality. The active set is
// replaced wholesale on each refresh; individual personas are never mutated
// by the client.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconTag     string `json:"icon,omitempty"`
	TierGate    string `json:"tier_gate,omitempty"`
}

// Icon resolves the persona's icon tag against the known set.
func (p *Persona) Icon() Icon {
	return ParseIcon(p.IconTag)
}

// DefaultPersonaID is used when no persona has been selected yet.
const DefaultPersonaID = "godmind-default"
