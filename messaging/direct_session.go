// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/roomsnap/roomsnap/lib/ref"
	"github.com/roomsnap/roomsnap/lib/secret"
)

// DirectSession is an authenticated Matrix session.
// It wraps a Client with an access token for making authenticated API calls.
//
// The access token is stored in a secret.Buffer (mmap-backed, locked against
// swap, excluded from core dumps). Logout and Close release it; after that,
// every authenticated call returns ErrNotAuthenticated without touching the
// network. The caller must call Close (or Logout) when the session is no
// longer needed.
type DirectSession struct {
	client   *Client
	userID   ref.UserID
	deviceID string

	// tokenMu guards accessToken against a concurrent Logout. The calls
	// themselves run lock-free — the lock covers only the token pointer.
	tokenMu     sync.Mutex
	accessToken *secret.Buffer
}

// UserID returns the fully-qualified Matrix user ID (e.g., "@alice:example.com").
func (s *DirectSession) UserID() ref.UserID {
	return s.userID
}

// DeviceID returns the device ID for this session. Empty for sessions
// created from a bare token.
func (s *DirectSession) DeviceID() string {
	return s.deviceID
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call this after a sync error to force
// the next request to establish a fresh TCP connection.
func (s *DirectSession) CloseIdleConnections() {
	s.client.CloseIdleConnections()
}

// token returns the current access token, or ErrNotAuthenticated when the
// session holds none. Every authenticated operation goes through this check
// before any network I/O.
func (s *DirectSession) token() (*secret.Buffer, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	if s.accessToken == nil {
		return nil, ErrNotAuthenticated
	}
	return s.accessToken, nil
}

// Close releases the access token memory (zeros, unlocks, unmaps) without
// contacting the server. Idempotent — safe to call multiple times, and
// safe after Logout.
func (s *DirectSession) Close() error {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	if s.accessToken == nil {
		return nil
	}
	err := s.accessToken.Close()
	s.accessToken = nil
	return err
}

// Logout invalidates the access token server-side, then releases the local
// token memory and drops idle connections.
//
// The local cleanup is unconditional: even when the server call fails (the
// token may already be invalid, or the network may be down), the session
// ends up logged out locally and subsequent calls return
// ErrNotAuthenticated. The server failure is logged, never propagated.
// Idempotent — a second Logout is a no-op.
func (s *DirectSession) Logout(ctx context.Context) error {
	accessToken, err := s.token()
	if err != nil {
		return nil // already logged out
	}

	if _, err := s.client.doRequest(ctx, http.MethodPost, "/_matrix/client/v3/logout", accessToken, struct{}{}); err != nil {
		s.client.logger.Warn("server-side logout failed, clearing local session anyway",
			"user_id", s.userID,
			"error", err,
		)
	}

	closeErr := s.Close()
	s.client.CloseIdleConnections()
	return closeErr
}

// WhoAmI validates the access token and returns the user ID.
// Useful for checking whether a stored token is still valid.
func (s *DirectSession) WhoAmI(ctx context.Context) (ref.UserID, error) {
	accessToken, err := s.token()
	if err != nil {
		return ref.UserID{}, err
	}

	body, err := s.client.doRequest(ctx, http.MethodGet, "/_matrix/client/v3/account/whoami", accessToken, nil)
	if err != nil {
		return ref.UserID{}, fmt.Errorf("messaging: whoami failed: %w", err)
	}

	var response WhoAmIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return ref.UserID{}, fmt.Errorf("messaging: failed to parse whoami response: %w", err)
	}
	return response.UserID, nil
}

// Sync fetches the incremental event payload from /sync. The server holds
// the request open for up to options.Timeout milliseconds waiting for new
// events (long poll). full_state is always false — callers reconstruct room
// state from the event fragments in the response.
//
// A response with an empty rooms section means nothing changed; callers
// treat it as an empty payload, not an error.
func (s *DirectSession) Sync(ctx context.Context, options SyncOptions) (*SyncResponse, error) {
	accessToken, err := s.token()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("full_state", "false")
	if options.Since != "" {
		query.Set("since", options.Since)
	}
	if options.SetTimeout {
		query.Set("timeout", strconv.Itoa(options.Timeout))
	}
	if options.Filter != "" {
		query.Set("filter", options.Filter)
	}

	path := "/_matrix/client/v3/sync"
	body, err := s.client.doRequest(ctx, http.MethodGet, path, accessToken, nil, query)
	if err != nil {
		return nil, fmt.Errorf("messaging: sync failed: %w", err)
	}

	var response SyncResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse sync response: %w", err)
	}
	return &response, nil
}

// GetRoomMembers returns the members of a room, in server order.
func (s *DirectSession) GetRoomMembers(ctx context.Context, roomID ref.RoomID) ([]RoomMember, error) {
	accessToken, err := s.token()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/members", url.PathEscape(roomID.String()))
	body, err := s.client.doRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: get room members for %q failed: %w", roomID, err)
	}

	var response RoomMembersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse room members response: %w", err)
	}

	members := make([]RoomMember, len(response.Chunk))
	for index, event := range response.Chunk {
		members[index] = RoomMember{
			UserID:      event.StateKey,
			DisplayName: event.Content.DisplayName,
			Membership:  event.Content.Membership,
			AvatarURL:   event.Content.AvatarURL,
		}
	}
	return members, nil
}

// GetRoomState returns the full current state of a room as a flat list of
// state events.
func (s *DirectSession) GetRoomState(ctx context.Context, roomID ref.RoomID) ([]Event, error) {
	accessToken, err := s.token()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/state", url.PathEscape(roomID.String()))
	body, err := s.client.doRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: get room state for %q failed: %w", roomID, err)
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse room state response: %w", err)
	}
	return events, nil
}
