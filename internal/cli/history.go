// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/godbot-tui/internal/archive"
	"github.com/jeranaias/godbot-tui/internal/config"
	"github.com/jeranaias/godbot-tui/internal/util"
)

// HandleHistory lists archived sessions, or prints one transcript when a
// session id is given. It reads only the local archive and never touches the
// backend.
func HandleHistory(args Args) error {
	cfg := config.Global()
	if !cfg.Archive.Enabled {
		return fmt.Errorf("archiving is disabled in the configuration")
	}

	path, err := cfg.ArchivePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no archive found at %s", path)
	}

	arc, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer arc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(args.Raw) > 0 {
		return printTranscript(ctx, arc, args.Raw[0])
	}
	return printSessionList(ctx, arc)
}

func printSessionList(ctx context.Context, arc *archive.Archive) error {
	sessions, err := arc.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no archived sessions")
		return nil
	}

	fmt.Printf("%s %8s  %s\n", util.PadRight("SESSION", 38), "MESSAGES", "LAST ACTIVITY")
	for _, s := range sessions {
		fmt.Printf("%s %8d  %s\n", util.PadRight(s.SessionID, 38), s.Messages, s.Last.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printTranscript(ctx context.Context, arc *archive.Archive, sessionID string) error {
	messages, err := arc.SessionTranscript(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no archived messages for session %s", sessionID)
	}

	for _, msg := range messages {
		fmt.Printf("[%s] %s\n%s\n\n",
			msg.Timestamp.Local().Format("15:04"),
			msg.Role.DisplayName(),
			util.TruncateRunes(msg.Content, 4000))
	}
	return nil
}
