// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"context"
	"log/slog"

	"github.com/roomsnap/roomsnap/lib/ref"
	"github.com/roomsnap/roomsnap/messaging"
)

// Roster is the outcome of a member resolution attempt. The Resolved
// flag distinguishes "the lookup failed or never ran" (fall back to the
// membership-event count) from "the lookup succeeded and the room is
// empty" (an authoritative count of zero).
type Roster struct {
	// Names holds one display label per member, in server order:
	// the display name when the member has one, the raw user ID
	// otherwise.
	Names []string

	// Resolved reports whether Names is authoritative.
	Resolved bool
}

// ResolvedRoster wraps an authoritative member name list.
func ResolvedRoster(names []string) Roster {
	return Roster{Names: names, Resolved: true}
}

// UnresolvedRoster is the roster for a room whose membership could not
// be fetched.
func UnresolvedRoster() Roster {
	return Roster{}
}

// MemberResolver resolves the member roster of a room. Resolution is
// best-effort by contract: implementations never return an error, they
// return an unresolved Roster instead.
type MemberResolver interface {
	Resolve(ctx context.Context, roomID ref.RoomID) Roster
}

// MemberLister is the slice of the session API the resolver needs.
// *messaging.DirectSession implements it.
type MemberLister interface {
	GetRoomMembers(ctx context.Context, roomID ref.RoomID) ([]messaging.RoomMember, error)
}

// SessionResolver resolves rosters through the /members endpoint of an
// authenticated session. Failures are demoted to an unresolved Roster
// and a warning log — member enrichment is optional, the summary is not.
type SessionResolver struct {
	session MemberLister
	logger  *slog.Logger
}

// NewSessionResolver creates a resolver backed by the given session.
// A nil logger falls back to slog.Default().
func NewSessionResolver(session MemberLister, logger *slog.Logger) *SessionResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionResolver{session: session, logger: logger}
}

// Resolve fetches the room's members and maps each to a display label:
// display name when present, raw user ID otherwise. Server order is
// preserved. Any failure yields an unresolved Roster.
func (r *SessionResolver) Resolve(ctx context.Context, roomID ref.RoomID) Roster {
	members, err := r.session.GetRoomMembers(ctx, roomID)
	if err != nil {
		r.logger.Warn("member resolution failed, falling back to membership events",
			"room_id", roomID,
			"error", err,
		)
		return UnresolvedRoster()
	}

	names := make([]string, 0, len(members))
	for _, member := range members {
		if member.DisplayName != "" {
			names = append(names, member.DisplayName)
			continue
		}
		names = append(names, member.UserID.String())
	}
	return ResolvedRoster(names)
}
