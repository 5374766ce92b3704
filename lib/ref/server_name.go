// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// ServerName is a validated Matrix server name (e.g., "example.com",
// "matrix.example.com:8448").
//
// Server names identify Matrix homeservers. They appear after the colon
// in user IDs (@localpart:server) and room aliases (#localpart:server).
//
// ServerName is an immutable value type. The zero value is not valid;
// use IsZero to check.
type ServerName struct {
	name string
}

// ParseServerName validates and wraps a raw Matrix server name string.
// Returns an error if the string is empty or contains invalid
// characters (control characters, Matrix sigils).
func ParseServerName(raw string) (ServerName, error) {
	if err := validateServer(raw); err != nil {
		return ServerName{}, err
	}
	return ServerName{name: raw}, nil
}

// MustParseServerName is like ParseServerName but panics on error. Use
// in tests and static initialization where the input is known-valid.
func MustParseServerName(raw string) ServerName {
	s, err := ParseServerName(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseServerName(%q): %v", raw, err))
	}
	return s
}

// String returns the server name string (e.g., "example.com").
func (s ServerName) String() string { return s.name }

// IsZero reports whether the ServerName is the zero value (uninitialized).
func (s ServerName) IsZero() bool { return s.name == "" }

// ServerFromUserID extracts the Matrix server name from a user ID
// (@localpart:server).
func ServerFromUserID(userID string) (ServerName, error) {
	_, server, err := parseMatrixID(userID)
	if err != nil {
		return ServerName{}, err
	}
	return ServerName{name: server}, nil
}
