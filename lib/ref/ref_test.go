// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"encoding/json"
	"testing"
)

func TestParseUserID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		userID, err := ParseUserID("@alice:example.com")
		if err != nil {
			t.Fatalf("ParseUserID failed: %v", err)
		}
		if userID.String() != "@alice:example.com" {
			t.Errorf("String() = %q", userID.String())
		}
		if userID.Localpart() != "alice" {
			t.Errorf("Localpart() = %q, want %q", userID.Localpart(), "alice")
		}
		if userID.Server() != "example.com" {
			t.Errorf("Server() = %q, want %q", userID.Server(), "example.com")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"",
			"alice",
			"@alice",
			"@:example.com",
			"@alice:",
			"#alice:example.com",
		}
		for _, raw := range invalid {
			if _, err := ParseUserID(raw); err == nil {
				t.Errorf("ParseUserID(%q): expected error", raw)
			}
		}
	})

	t.Run("zero value", func(t *testing.T) {
		var userID UserID
		if !userID.IsZero() {
			t.Error("zero UserID should report IsZero")
		}
	})
}

func TestParseRoomID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		roomID, err := ParseRoomID("!abc123:example.com")
		if err != nil {
			t.Fatalf("ParseRoomID failed: %v", err)
		}
		if roomID.String() != "!abc123:example.com" {
			t.Errorf("String() = %q", roomID.String())
		}
		if roomID.IsZero() {
			t.Error("parsed RoomID should not be zero")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"",
			"abc123",
			"!abc123",
			"!:example.com",
			"!abc123:",
		}
		for _, raw := range invalid {
			if _, err := ParseRoomID(raw); err == nil {
				t.Errorf("ParseRoomID(%q): expected error", raw)
			}
		}
	})
}

func TestRoomIDAsMapKey(t *testing.T) {
	// The /sync response maps room IDs to room data. encoding/json uses
	// TextUnmarshaler for map keys, so invalid IDs are rejected during
	// deserialization.
	t.Run("valid keys", func(t *testing.T) {
		var decoded map[RoomID]int
		if err := json.Unmarshal([]byte(`{"!a:x": 1, "!b:y": 2}`), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(decoded))
		}
		if decoded[MustParseRoomID("!a:x")] != 1 {
			t.Error("missing entry for !a:x")
		}
	})

	t.Run("invalid key rejected", func(t *testing.T) {
		var decoded map[RoomID]int
		if err := json.Unmarshal([]byte(`{"not-a-room": 1}`), &decoded); err == nil {
			t.Fatal("expected error for invalid room ID key")
		}
	})
}

func TestParseRoomAlias(t *testing.T) {
	alias, err := ParseRoomAlias("#ops:example.com")
	if err != nil {
		t.Fatalf("ParseRoomAlias failed: %v", err)
	}
	if alias.String() != "#ops:example.com" {
		t.Errorf("String() = %q", alias.String())
	}

	if _, err := ParseRoomAlias("ops"); err == nil {
		t.Error("expected error for alias without sigil")
	}
}

func TestParseServerName(t *testing.T) {
	valid := []string{"example.com", "matrix.example.com:8448", "localhost"}
	for _, raw := range valid {
		if _, err := ParseServerName(raw); err != nil {
			t.Errorf("ParseServerName(%q) failed: %v", raw, err)
		}
	}

	invalid := []string{"", "@example.com", "exam ple.com", "#example.com"}
	for _, raw := range invalid {
		if _, err := ParseServerName(raw); err == nil {
			t.Errorf("ParseServerName(%q): expected error", raw)
		}
	}
}

func TestLocalpart(t *testing.T) {
	cases := []struct {
		identifier string
		want       string
	}{
		{"@alice:example.com", "alice"},
		{"alice", "alice"},
		{"@alice", "alice"},
		{"@bob:matrix.example.com:8448", "bob"},
	}
	for _, testCase := range cases {
		if got := Localpart(testCase.identifier); got != testCase.want {
			t.Errorf("Localpart(%q) = %q, want %q", testCase.identifier, got, testCase.want)
		}
	}
}
