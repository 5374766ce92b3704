// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFromPath(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "password")
		if err := os.WriteFile(path, []byte("  s3cret\n"), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		buffer, err := ReadFromPath(path)
		if err != nil {
			t.Fatalf("ReadFromPath failed: %v", err)
		}
		defer buffer.Close()

		if buffer.String() != "s3cret" {
			t.Errorf("String() = %q, want %q", buffer.String(), "s3cret")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty")
		if err := os.WriteFile(path, []byte("\n\n"), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		if _, err := ReadFromPath(path); err == nil {
			t.Error("expected error for whitespace-only file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFromPath(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
