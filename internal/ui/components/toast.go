// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toast notifications. Toasts appear above the status bar and
// auto-dismiss, so a failed send never traps the user in a modal.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/godbot-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastStatus is an informational toast.
	ToastStatus ToastKind = iota
	// ToastError is an error toast.
	ToastError
	// ToastWarning is a warning toast.
	ToastWarning
	// ToastSuccess is a success toast.
	ToastSuccess
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	StatusToastDuration  = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// Toast is a single notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

func durationFor(kind ToastKind) time.Duration {
	switch kind {
	case ToastError:
		return ErrorToastDuration
	case ToastWarning:
		return WarningToastDuration
	default:
		return StatusToastDuration
	}
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts, newest first.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	nextID    int
	maxToasts int
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		nextID:    1,
		maxToasts: 5,
	}
}

// Add creates a toast of the given kind and returns its id.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  durationFor(kind),
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
	return toast.ID
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) int {
	return m.Add(ToastError, message)
}

// AddStatus adds an informational toast.
func (m *ToastManager) AddStatus(message string) int {
	return m.Add(ToastStatus, message)
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.Add(ToastSuccess, message)
}

// Remove dismisses a toast by id.
func (m *ToastManager) Remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops expired toasts and returns the survivors.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Toasts returns a copy of the current toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// HasToasts reports whether any toasts are visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically while toasts are visible.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next toast expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastStyle(kind ToastKind) lipgloss.Style {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch kind {
	case ToastError:
		return base.BorderForeground(styles.Rose).Foreground(styles.Rose)
	case ToastWarning:
		return base.BorderForeground(styles.Amber).Foreground(styles.Amber)
	case ToastSuccess:
		return base.BorderForeground(styles.Emerald).Foreground(styles.Emerald)
	default:
		return base.BorderForeground(styles.Cyan).Foreground(styles.Cyan)
	}
}

func toastIndicator(kind ToastKind) string {
	switch kind {
	case ToastError:
		return styles.StatusIndicators.Error
	case ToastWarning:
		return styles.StatusIndicators.Warning
	case ToastSuccess:
		return styles.StatusIndicators.Success
	default:
		return styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast constrained to width.
func RenderToast(toast Toast, width int) string {
	maxWidth := 60
	if width > 0 && width < maxWidth {
		maxWidth = width
	}
	return toastStyle(toast.Kind).
		MaxWidth(maxWidth).
		Render(toastIndicator(toast.Kind) + " " + toast.Message)
}

// RenderToasts stacks all visible toasts vertically, newest on top.
func RenderToasts(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
