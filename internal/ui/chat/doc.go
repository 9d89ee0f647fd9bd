// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main Bubble Tea view: the session sidebar, the
// conversation transcript, the composer, and the dashboard and insight
// overlays.
//
// All conversation state lives in the store package; this package translates
// key presses into store transitions and API commands, and renders whatever
// the store currently holds. Messages from in-flight commands always pass
// back through Update, so the store is only ever touched from one goroutine.
package chat
