// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/godbot-tui/internal/config"
)

// HandleConfig prints the effective configuration after file, env, and flag
// resolution.
func HandleConfig(args Args) error {
	cfg := config.Global()
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("config dir:       %s\n", dir)
	fmt.Printf("server.base_url:  %s\n", cfg.Server.BaseURL)
	fmt.Printf("server.timeout:   %ds\n", cfg.Server.TimeoutSecs)
	fmt.Printf("server.retries:   %d\n", cfg.Server.MaxRetries)
	fmt.Printf("status poll:      %ds\n", cfg.Server.StatusPollSecs)
	fmt.Printf("persona:          %s\n", cfg.Chat.DefaultPersona)
	if cfg.Chat.Tier != "" {
		fmt.Printf("tier:             %s\n", cfg.Chat.Tier)
	}
	fmt.Printf("theme:            %s\n", cfg.UI.Theme)
	fmt.Printf("export format:    %s\n", cfg.Export.Format)
	fmt.Printf("log level:        %s\n", cfg.Logging.Level)
	fmt.Printf("archive:          %v\n", cfg.Archive.Enabled)
	return nil
}
