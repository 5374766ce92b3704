// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/roomsnap/roomsnap/lib/ref"
	"github.com/roomsnap/roomsnap/messaging"
)

// defaultResolveConcurrency bounds the member-resolution fan-out when
// SnapshotOptions.Concurrency is zero.
const defaultResolveConcurrency = 4

// SnapshotOptions controls a Snapshot run.
type SnapshotOptions struct {
	// Since is the next_batch token from a previous sync; empty for an
	// initial sync.
	Since string

	// SyncTimeoutMS is the server-side long-poll budget in milliseconds.
	SyncTimeoutMS int

	// Concurrency bounds the parallel member resolutions. Zero uses a
	// small default; 1 forces sequential resolution.
	Concurrency int
}

// Snapshot syncs, resolves members, and projects every joined room into
// a summary. The result is ordered by room ID so repeated runs over the
// same server state compare equal.
//
// A sync failure is fatal: no partial output is produced. Per-room
// member resolution failures are not — the resolver demotes them to
// unresolved rosters and the room is summarized from its events alone.
//
// Member resolutions are independent read-only lookups, so they fan out
// concurrently (bounded by options.Concurrency); each roster is joined
// back to its room before projection.
func Snapshot(ctx context.Context, session messaging.Session, resolver MemberResolver, options SnapshotOptions) ([]RoomSummary, error) {
	response, err := session.Sync(ctx, messaging.SyncOptions{
		Since:      options.Since,
		Timeout:    options.SyncTimeoutMS,
		SetTimeout: true,
	})
	if err != nil {
		return nil, fmt.Errorf("summary: sync failed: %w", err)
	}

	roomIDs := make([]ref.RoomID, 0, len(response.Rooms.Join))
	for roomID := range response.Rooms.Join {
		roomIDs = append(roomIDs, roomID)
	}
	sort.Slice(roomIDs, func(i, j int) bool {
		return roomIDs[i].String() < roomIDs[j].String()
	})

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = defaultResolveConcurrency
	}

	// Fan out member resolution; rosters land in the slot matching their
	// room's position in the sorted ID list.
	rosters := make([]Roster, len(roomIDs))
	semaphore := make(chan struct{}, concurrency)
	var waitGroup sync.WaitGroup
	for index, roomID := range roomIDs {
		waitGroup.Add(1)
		go func(index int, roomID ref.RoomID) {
			defer waitGroup.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			rosters[index] = resolver.Resolve(ctx, roomID)
		}(index, roomID)
	}
	waitGroup.Wait()

	summaries := make([]RoomSummary, 0, len(roomIDs))
	for index, roomID := range roomIDs {
		summaries = append(summaries, Project(roomID, response.Rooms.Join[roomID], rosters[index]))
	}
	return summaries, nil
}
