// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"github.com/roomsnap/roomsnap/lib/ref"
	"github.com/roomsnap/roomsnap/messaging"
)

// Default values for summary fields that the event log does not
// determine. Every field of a RoomSummary is always either derived from
// an event or set to one of these — never left partial.
const (
	DefaultName        = "unnamed"
	DefaultTopic       = "no description"
	DefaultAlias       = "no alias"
	DefaultLastMessage = "no messages"
)

// MaxMessageLength is the display length limit for the last message.
// Longer bodies are truncated to this many characters (runes) with a
// "..." marker appended; a body of exactly this length passes through
// verbatim.
const MaxMessageLength = 100

// MembersPreviewLimit caps the number of member names carried in a
// summary. The member count always reflects the full roster.
const MembersPreviewLimit = 10

// RoomSummary is the stable, queryable projection of one room. Field
// order matches the persisted JSON document.
type RoomSummary struct {
	RoomID         ref.RoomID `json:"room_id"`
	Name           string     `json:"name"`
	CanonicalAlias string     `json:"canonical_alias"`
	MemberCount    int        `json:"member_count"`
	IsEncrypted    bool       `json:"is_encrypted"`
	Topic          string     `json:"topic"`
	LastMessage    string     `json:"last_message"`
	Members        []string   `json:"members"`
}

// Project reduces one room's sync fragment and member roster into a
// RoomSummary. Pure and deterministic: no I/O, no mutation of its
// inputs, same inputs always produce the same summary.
//
// State events are folded in log order, so for contested fields (name,
// topic, alias) the last event wins. The encryption flag is monotonic —
// once an m.room.encryption event is seen the room stays encrypted, no
// matter what follows. The timeline is scanned newest-first for the
// last textual message.
//
// When the roster is resolved it is authoritative for membership: the
// count is the full roster size and Members carries the first
// MembersPreviewLimit names. When it is not, the count falls back to
// the membership events in the fragment and Members stays empty.
func Project(roomID ref.RoomID, fragment messaging.JoinedRoom, roster Roster) RoomSummary {
	result := RoomSummary{
		RoomID:         roomID,
		Name:           DefaultName,
		CanonicalAlias: DefaultAlias,
		Topic:          DefaultTopic,
		LastMessage:    DefaultLastMessage,
		Members:        []string{},
	}

	// Membership fallback: last membership event per user wins, and only
	// joined users count.
	joined := make(map[string]bool)

	for _, event := range fragment.State.Events {
		switch event.Type {
		case "m.room.name":
			if name, ok := event.Content["name"].(string); ok && name != "" {
				result.Name = name
			}
		case "m.room.topic":
			if topic, ok := event.Content["topic"].(string); ok && topic != "" {
				result.Topic = topic
			}
		case "m.room.canonical_alias":
			if alias, ok := event.Content["alias"].(string); ok && alias != "" {
				result.CanonicalAlias = alias
			}
		case "m.room.encryption":
			result.IsEncrypted = true
		case "m.room.member":
			if event.StateKey == nil {
				continue
			}
			if membership, ok := event.Content["membership"].(string); ok && membership == "join" {
				joined[*event.StateKey] = true
			} else {
				delete(joined, *event.StateKey)
			}
		}
		// Every other event type is irrelevant to the summary.
	}

	for index := len(fragment.Timeline.Events) - 1; index >= 0; index-- {
		event := fragment.Timeline.Events[index]
		if event.Type != "m.room.message" {
			continue
		}
		body, ok := event.Content["body"].(string)
		if !ok {
			continue
		}
		result.LastMessage = truncateMessage(body)
		break
	}

	if roster.Resolved {
		result.MemberCount = len(roster.Names)
		previewLength := min(len(roster.Names), MembersPreviewLimit)
		result.Members = append(result.Members, roster.Names[:previewLength]...)
	} else {
		result.MemberCount = len(joined)
	}

	return result
}

// truncateMessage shortens a message body to MaxMessageLength runes,
// appending a "..." marker. Counting runes (not bytes) keeps multi-byte
// text from being cut mid-character.
func truncateMessage(body string) string {
	runes := []rune(body)
	if len(runes) <= MaxMessageLength {
		return body
	}
	return string(runes[:MaxMessageLength]) + "..."
}
