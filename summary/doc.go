// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

// Package summary reduces raw Matrix /sync payloads into stable room
// summaries.
//
// The core is Project: a pure fold over one room's state-event log and
// timeline that produces a fully-populated RoomSummary regardless of how
// sparse the input is. Around it sit the member resolver (best-effort
// display-name enrichment via the /members endpoint), Snapshot (whole
// payload → sorted summary list), and WriteFile (JSON persistence).
//
// Projection never fails: missing state degrades to documented default
// values, and a failed member resolution degrades to the membership-event
// fallback count. Only the sync itself is fatal.
package summary
