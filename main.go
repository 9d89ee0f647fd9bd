// godbot TUI - a terminal client for the GodBot conversation backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jeranaias/godbot-tui/internal/api"
	"github.com/jeranaias/godbot-tui/internal/archive"
	"github.com/jeranaias/godbot-tui/internal/cli"
	"github.com/jeranaias/godbot-tui/internal/config"
	"github.com/jeranaias/godbot-tui/internal/logging"
	"github.com/jeranaias/godbot-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg := loadConfig(args)

	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	case cli.CmdHistory:
		fatalOnError(cli.HandleHistory(args))
	case cli.CmdConfig:
		fatalOnError(cli.HandleConfig(args))
	default:
		runTUI(cfg, args)
	}
}

// loadConfig resolves configuration: file, env, then CLI flags on top.
func loadConfig(args cli.Args) *config.Config {
	cfg := config.Global()
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}
	if args.Debug {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

// runTUI starts the interactive client.
func runTUI(cfg *config.Config, args cli.Args) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "godbot requires an interactive terminal; see 'godbot help' for batch commands")
		os.Exit(1)
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())

	logPath, err := cfg.LogPath()
	if err == nil {
		if err := logging.Init(logPath, cfg.Logging.Level); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
	}
	defer logging.Sync()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:    cfg.Server.BaseURL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Server.MaxRetries,
	})

	arc := openArchive(cfg)
	if arc != nil {
		defer arc.Close()
	}

	logging.L().Info("starting godbot",
		zap.String("version", Version),
		zap.String("server", cfg.Server.BaseURL),
	)

	program := tea.NewProgram(
		chat.New(cfg, client, arc),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Hot reload: config edits on disk are pushed into the running program;
	// connection, poll, tier, and export settings take effect without a
	// restart. Reload failures only log.
	watcher, err := config.NewWatcher(
		func(updated *config.Config) {
			logging.L().Info("configuration reloaded")
			program.Send(chat.ConfigReloadedMsg{Config: updated})
		},
		func(err error) {
			logging.L().Warn("config reload failed", zap.Error(err))
		},
	)
	if err == nil {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		logging.L().Error("tui crashed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openArchive(cfg *config.Config) *archive.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}
	path, err := cfg.ArchivePath()
	if err != nil {
		return nil
	}
	arc, err := archive.Open(path)
	if err != nil {
		// The chat still works without the local archive.
		fmt.Fprintf(os.Stderr, "warning: archive disabled: %v\n", err)
		return nil
	}
	return arc
}

func fatalOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
