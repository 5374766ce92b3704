// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging provides the Matrix client-server API surface for
// roomsnap.
//
// The package has two layers:
//
//   - Client: unauthenticated. Holds the homeserver URL and HTTP
//     transport. Login exchanges credentials for a DirectSession.
//   - DirectSession: authenticated. Wraps a Client with an access token
//     (held in mmap-backed secret memory) and exposes the calls the
//     snapshot flow needs: Sync, GetRoomMembers, GetRoomState, WhoAmI,
//     Logout.
//
// Every authenticated call checks for a token before touching the
// network and returns ErrNotAuthenticated when the session has been
// logged out. Server-side failures surface as *MatrixError carrying the
// Matrix error code, server message, and HTTP status.
package messaging
