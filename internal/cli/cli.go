// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the godbot command line and implements the non-TUI
// subcommands: version, config, and the offline history browser.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdVersion
	CmdHistory
	CmdConfig
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ServerURL string // --server overrides the configured backend URL
	Debug     bool   // --debug forces debug logging

	// Remaining positional args after the subcommand.
	Raw []string
}

const usageText = `godbot - terminal client for the GodBot conversation backend

Usage:
  godbot                     Start the TUI (default)
  godbot version             Show version information
  godbot history             List locally archived sessions
  godbot history <session>   Print an archived transcript
  godbot config              Show the effective configuration
  godbot help                Show this help

Flags:
  --server <url>   Backend base URL (overrides config and GODBOT_SERVER_URL)
  --debug          Enable debug logging

Environment:
  GODBOT_SERVER_URL   Backend base URL
  GODBOT_PERSONA      Default persona id
  GODBOT_TIER         Access tier sent with chat requests
  GODBOT_THEME        UI theme (dark, light)
  GODBOT_DEBUG        Set to 1 to enable debug logging
`

// Parse reads os.Args and returns the command plus parsed flags.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	cmd := CmdTUI
	args := Args{}

	var positional []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--debug":
			args.Debug = true
		case arg == "--server":
			if i+1 < len(argv) {
				i++
				args.ServerURL = argv[i]
			}
		case strings.HasPrefix(arg, "--server="):
			args.ServerURL = strings.TrimPrefix(arg, "--server=")
		case arg == "--help" || arg == "-h":
			return CmdHelp, args
		case arg == "--version":
			return CmdVersion, args
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) > 0 {
		switch positional[0] {
		case "version":
			cmd = CmdVersion
		case "history":
			cmd = CmdHistory
		case "config":
			cmd = CmdConfig
		case "help":
			cmd = CmdHelp
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", positional[0], usageText)
			os.Exit(2)
		}
		positional = positional[1:]
	}

	args.Raw = positional
	return cmd, args
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("godbot %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
