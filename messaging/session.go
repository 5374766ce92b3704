// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"

	"github.com/roomsnap/roomsnap/lib/ref"
)

// Session is the authenticated API surface the snapshot flow consumes.
// DirectSession implements it; tests substitute fakes.
type Session interface {
	// UserID returns the fully-qualified Matrix user ID for the session.
	UserID() ref.UserID

	// Sync fetches the incremental event payload. Returns
	// ErrNotAuthenticated without network I/O when logged out.
	Sync(ctx context.Context, options SyncOptions) (*SyncResponse, error)

	// GetRoomMembers returns the members of a room in server order.
	GetRoomMembers(ctx context.Context, roomID ref.RoomID) ([]RoomMember, error)

	// GetRoomState returns the full current state of a room.
	GetRoomState(ctx context.Context, roomID ref.RoomID) ([]Event, error)

	// Logout invalidates the token server-side (best effort) and always
	// clears the local session.
	Logout(ctx context.Context) error

	// Close releases local session resources without contacting the
	// server. Idempotent.
	Close() error
}

var _ Session = (*DirectSession)(nil)
