// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// EventType identifies a Matrix state or timeline event type (e.g.,
// "m.room.name", "m.room.message").
//
// EventType is a named string type, not a struct wrapper: event types
// are opaque identifiers that need no parsing or validation. The type
// exists purely for compile-time safety — preventing accidental use of
// a state key where an event type is expected (or vice versa).
type EventType string

// String returns the event type string (e.g., "m.room.message").
func (t EventType) String() string { return string(t) }

// EventID identifies a single Matrix event (e.g., "$YUwRid…"). Event
// IDs are opaque server-assigned strings; like EventType, the named
// type exists for compile-time safety only.
type EventID string

// String returns the event ID string.
func (e EventID) String() string { return string(e) }
