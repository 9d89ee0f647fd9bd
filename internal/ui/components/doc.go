// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces for the godbot TUI:
// the session sidebar, status bar, toast notifications, and the dashboard
// and insight overlays.
package components
