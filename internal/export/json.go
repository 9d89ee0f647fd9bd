// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders transcripts as pretty-printed JSON for programmatic
// consumption.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonDocument is the top-level export structure.
type jsonDocument struct {
	Session    model.Session   `json:"session"`
	Messages   []model.Message `json:"messages"`
	ExportedAt string          `json:"exported_at,omitempty"`
	Generator  string          `json:"generator,omitempty"`
}

// Export converts a transcript to JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if err := validateTranscript(t); err != nil {
		return nil, err
	}

	doc := jsonDocument{
		Session:  t.Session,
		Messages: t.Messages,
	}
	if e.options.IncludeMetadata {
		doc.ExportedAt = time.Now().Format(time.RFC3339)
		doc.Generator = "godbot-tui"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
