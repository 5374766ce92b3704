// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides validated value types for Matrix identifiers:
// user IDs, room IDs, room aliases, and server names.
//
// Raw identifier strings from the network, configuration, or the
// command line are parsed into these types at the boundary. Past the
// boundary, code passes typed values and never re-validates. The zero
// value of every type is invalid; use IsZero to check.
//
// The types implement encoding.TextMarshaler and TextUnmarshaler so
// that encoding/json validates them during deserialization, including
// when they appear as map keys (the /sync response maps room IDs to
// room data).
package ref
