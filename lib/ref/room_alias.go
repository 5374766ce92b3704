// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// RoomAlias is a validated Matrix room alias (e.g., "#ops:example.com").
//
// Aliases are human-readable room names. They start with '#' and carry
// the ':server' suffix like user IDs. Roomsnap reads aliases out of
// m.room.canonical_alias state events for display.
//
// RoomAlias is an immutable value type. The zero value is not valid;
// use IsZero to check.
type RoomAlias struct {
	alias string
}

// ParseRoomAlias validates and wraps a raw Matrix room alias string.
func ParseRoomAlias(raw string) (RoomAlias, error) {
	_, _, err := parseRoomAlias(raw)
	if err != nil {
		return RoomAlias{}, err
	}
	return RoomAlias{alias: raw}, nil
}

// String returns the full alias string (e.g., "#ops:example.com").
func (a RoomAlias) String() string { return a.alias }

// IsZero reports whether the RoomAlias is the zero value (uninitialized).
func (a RoomAlias) IsZero() bool { return a.alias == "" }
