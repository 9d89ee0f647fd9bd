// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/godbot-tui/internal/api"
	"github.com/jeranaias/godbot-tui/internal/archive"
	"github.com/jeranaias/godbot-tui/internal/config"
	"github.com/jeranaias/godbot-tui/internal/model"
	"github.com/jeranaias/godbot-tui/internal/store"
	"github.com/jeranaias/godbot-tui/internal/ui/components"
	"github.com/jeranaias/godbot-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS AND OVERLAYS
// =============================================================================

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

// Overlay identifies the active full-screen overlay, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDashboard
	OverlayInsights
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole TUI.
type Model struct {
	// Conversation state
	state *store.Store

	// Backend access
	client *api.Client
	arc    *archive.Archive

	// Dimensions
	width  int
	height int

	// Pane focus and overlay state
	focus   Focus
	overlay Overlay

	// Pending delete confirmation, nil when none.
	confirmDelete *model.Session

	// UI components
	sidebar   *components.Sidebar
	statusBar *components.StatusBar
	dashboard *components.Dashboard
	insights  *components.InsightFeed
	toasts    *components.ToastManager
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model

	// Markdown rendering for assistant messages. Nil falls back to raw text.
	renderer *glamour.TermRenderer

	keyMap       KeyMap
	pollInterval time.Duration

	// Transcript export settings from the config.
	exportFormat string
	exportDir    string

	// Set after the first WindowSizeMsg.
	ready bool
}

// New builds the chat model. arc may be nil when archiving is disabled.
func New(cfg *config.Config, client *api.Client, arc *archive.Archive) Model {
	input := textinput.New()
	input.Placeholder = "Message GodBot..."
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(styles.Purple)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	st := store.New()
	st.SetPreferredPersona(cfg.Chat.DefaultPersona)
	st.SetTier(cfg.Chat.Tier)

	return Model{
		state:        st,
		client:       client,
		arc:          arc,
		sidebar:      components.NewSidebar(),
		statusBar:    components.NewStatusBar(),
		dashboard:    components.NewDashboard(),
		insights:     components.NewInsightFeed(),
		toasts:       components.NewToastManager(),
		input:        input,
		spinner:      sp,
		renderer:     renderer,
		keyMap:       DefaultKeyMap(),
		pollInterval: time.Duration(cfg.Server.StatusPollSecs) * time.Second,
		exportFormat: strings.ToLower(cfg.Export.Format),
		exportDir:    cfg.Export.Dir,
	}
}

// Init kicks off the bootstrap fetches and the status poll loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadPersonasCmd(m.client),
		loadSessionsCmd(m.client),
		loadStatusCmd(m.client),
		statusTickCmd(m.pollInterval),
		textinput.Blink,
	)
}

// State exposes the conversation store for tests.
func (m Model) State() *store.Store {
	return m.state
}
