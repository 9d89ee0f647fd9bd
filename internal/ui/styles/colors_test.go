// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIndicatorsAreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}
	for _, ind := range indicators {
		assert.NotEmpty(t, ind)
		for _, r := range ind {
			assert.Less(t, r, rune(128), "indicator %q must be ASCII", ind)
		}
	}
}

func TestRenderHelpersIncludeIndicator(t *testing.T) {
	assert.Contains(t, RenderSuccess("saved"), "[OK]")
	assert.Contains(t, RenderError("failed"), "[X]")
	assert.Contains(t, RenderWarning("careful"), "[!]")
	assert.Contains(t, RenderInfo("note"), "[i]")
}

func TestRenderStatusSelectsIndicator(t *testing.T) {
	assert.Contains(t, RenderStatus(true, "up"), "[OK]")
	assert.Contains(t, RenderStatus(false, "down"), "[X]")
}

func TestAdaptiveColorsDefined(t *testing.T) {
	for _, c := range []struct {
		name  string
		light string
		dark  string
	}{
		{"Purple", Purple.Light, Purple.Dark},
		{"Cyan", Cyan.Light, Cyan.Dark},
		{"Rose", Rose.Light, Rose.Dark},
		{"TextPrimary", TextPrimary.Light, TextPrimary.Dark},
	} {
		assert.True(t, strings.HasPrefix(c.light, "#"), "%s light", c.name)
		assert.True(t, strings.HasPrefix(c.dark, "#"), "%s dark", c.name)
	}
}
