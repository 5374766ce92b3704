// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Prompt reads a secret interactively from the terminal with echo
// disabled. The prompt text is written to stderr so stdout stays clean
// for piped output. Returns an error when stdin is not a terminal —
// callers should offer a file-based alternative for scripted use.
func Prompt(label string) (*Buffer, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive %s prompt", label)
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	secretBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", label, err)
	}

	buffer, err := NewFromBytes(secretBytes)
	if err != nil {
		Zero(secretBytes)
		return nil, err
	}
	return buffer, nil
}
