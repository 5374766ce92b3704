// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write encodes the summaries as a JSON array with two-space
// indentation, followed by a trailing newline.
func Write(writer io.Writer, summaries []RoomSummary) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(summaries); err != nil {
		return fmt.Errorf("summary: encoding snapshot: %w", err)
	}
	return nil
}

// WriteFile persists the summaries to path as a JSON document. The file
// is created with mode 0644 and truncated if it already exists.
func WriteFile(path string, summaries []RoomSummary) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("summary: creating snapshot file: %w", err)
	}

	if err := Write(file, summaries); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("summary: closing snapshot file: %w", err)
	}
	return nil
}
