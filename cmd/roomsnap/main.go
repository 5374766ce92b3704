// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

// Command roomsnap logs in to a Matrix homeserver, syncs once, projects
// every joined room into a summary, prints the result, persists it as
// JSON, and logs out.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/roomsnap/roomsnap/lib/config"
	"github.com/roomsnap/roomsnap/lib/secret"
	"github.com/roomsnap/roomsnap/lib/version"
	"github.com/roomsnap/roomsnap/messaging"
	"github.com/roomsnap/roomsnap/summary"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("roomsnap", pflag.ContinueOnError)
	homeserver := flags.String("homeserver", "", "Matrix homeserver base URL (overrides config)")
	configPath := flags.String("config", "", "path to a roomsnap config file (default: $ROOMSNAP_CONFIG)")
	passwordFile := flags.String("password-file", "", "read the password from this file, or stdin with \"-\" (default: interactive prompt)")
	output := flags.String("output", "", "snapshot file path (overrides config)")
	syncTimeout := flags.Int("sync-timeout", 0, "server-side /sync long-poll budget in milliseconds (overrides config)")
	jsonOutput := flags.Bool("json", false, "print the snapshot as JSON instead of formatted room cards")
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: roomsnap [flags] <username>\n\n")
		fmt.Fprintf(os.Stderr, "The username may be a bare localpart (\"alice\") or a fully-qualified\nMatrix user ID (\"@alice:example.com\").\n\nFlags:\n")
		fmt.Fprint(os.Stderr, flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Printf("roomsnap %s\n", version.Info())
		return 0
	}

	username := flags.Arg(0)
	if username == "" {
		fmt.Fprintf(os.Stderr, "error: username is required\n")
		flags.Usage()
		return 2
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	// Flags override config values.
	if *homeserver != "" {
		cfg.Homeserver = *homeserver
	}
	if *output != "" {
		cfg.Output = *output
	}
	if flags.Changed("sync-timeout") {
		cfg.SyncTimeoutMS = *syncTimeout
	}
	if *passwordFile != "" {
		cfg.PasswordFile = *passwordFile
	}

	logger := newLogger()

	password, err := readPassword(cfg.PasswordFile, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	defer password.Close()

	client, err := messaging.NewClient(messaging.ClientConfig{
		HomeserverURL: cfg.Homeserver,
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	ctx := context.Background()

	session, err := client.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	// Logout runs on every exit path from here on, including snapshot
	// failures. It is best-effort server-side and always clears the
	// local token.
	defer session.Logout(ctx)

	resolver := summary.NewSessionResolver(session, logger)
	summaries, err := summary.Snapshot(ctx, session, resolver, summary.SnapshotOptions{
		SyncTimeoutMS: cfg.SyncTimeoutMS,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if *jsonOutput {
		if err := summary.Write(os.Stdout, summaries); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	} else {
		fmt.Print(renderSummaries(summaries))
	}

	if err := summary.WriteFile(cfg.Output, summaries); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	logger.Info("snapshot written",
		"path", cfg.Output,
		"rooms", len(summaries),
	)
	return 0
}

// readPassword obtains the login password: from a file (or stdin with
// "-") when a path is configured, otherwise interactively with echo
// disabled.
func readPassword(path, username string) (*secret.Buffer, error) {
	if path != "" {
		return secret.ReadFromPath(path)
	}
	return secret.Prompt(fmt.Sprintf("password for %s", username))
}

// newLogger creates the command logger. When stderr is a terminal, uses
// slog.TextHandler for human-readable output. When stderr is piped or
// redirected (CI, scripts), uses slog.JSONHandler for machine-parseable
// output.
func newLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
