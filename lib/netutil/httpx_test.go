// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	body, err := ReadResponse(strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		var decoded struct {
			Name string `json:"name"`
		}
		if err := DecodeResponse(strings.NewReader(`{"name":"ops"}`), &decoded); err != nil {
			t.Fatalf("DecodeResponse failed: %v", err)
		}
		if decoded.Name != "ops" {
			t.Errorf("Name = %q, want %q", decoded.Name, "ops")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		var decoded map[string]any
		if err := DecodeResponse(strings.NewReader("not json"), &decoded); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})
}

func TestErrorBody(t *testing.T) {
	if got := ErrorBody(strings.NewReader("server exploded")); got != "server exploded" {
		t.Errorf("ErrorBody = %q", got)
	}
}
