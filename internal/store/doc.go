// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the client-side conversation state and the transition
// rules that keep it consistent under concurrent in-flight requests.
//
// All mutation goes through Store methods; network code never touches state
// directly. Every transition is a full replace-or-append of one entity, so
// the single event-loop goroutine that drives the UI needs no locking.
package store
