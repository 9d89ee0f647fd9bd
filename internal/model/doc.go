// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the GodBot
// backend: personas, sessions, messages, system status, the dashboard
// snapshot, and the DreamChain insight feed.
package model
