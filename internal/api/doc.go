// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the GodBot backend REST surface.
//
// The client is a thin, stateless boundary: one typed method per endpoint,
// structured ClientError results, and nothing cached. Idempotent reads get
// bounded retry with backoff; sends and deletes are dispatched exactly once
// so a flaky network can never double-submit a chat message.
package api
