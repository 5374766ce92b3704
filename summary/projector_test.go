// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/roomsnap/roomsnap/lib/ref"
	"github.com/roomsnap/roomsnap/messaging"
)

// fakeSession is a canned messaging.Session for projector tests.
type fakeSession struct {
	syncResponse *messaging.SyncResponse
	syncErr      error
	members      map[ref.RoomID][]messaging.RoomMember
}

func (f *fakeSession) UserID() ref.UserID { return ref.MustParseUserID("@test:local") }

func (f *fakeSession) Sync(_ context.Context, _ messaging.SyncOptions) (*messaging.SyncResponse, error) {
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return f.syncResponse, nil
}

func (f *fakeSession) GetRoomMembers(_ context.Context, roomID ref.RoomID) ([]messaging.RoomMember, error) {
	members, ok := f.members[roomID]
	if !ok {
		return nil, errors.New("members unavailable")
	}
	return members, nil
}

func (f *fakeSession) GetRoomState(_ context.Context, _ ref.RoomID) ([]messaging.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSession) Logout(_ context.Context) error { return nil }
func (f *fakeSession) Close() error                   { return nil }

func namedRoom(name string) messaging.JoinedRoom {
	stateKey := ""
	return messaging.JoinedRoom{
		State: messaging.StateSection{Events: []messaging.Event{{
			Type:     "m.room.name",
			StateKey: &stateKey,
			Content:  map[string]any{"name": name},
		}}},
	}
}

func TestSnapshot(t *testing.T) {
	roomA := ref.MustParseRoomID("!aaa:test.local")
	roomB := ref.MustParseRoomID("!bbb:test.local")
	roomC := ref.MustParseRoomID("!ccc:test.local")

	t.Run("projects all joined rooms sorted by room ID", func(t *testing.T) {
		session := &fakeSession{
			syncResponse: &messaging.SyncResponse{
				NextBatch: "batch-1",
				Rooms: messaging.RoomsSection{Join: map[ref.RoomID]messaging.JoinedRoom{
					roomC: namedRoom("Gamma"),
					roomA: namedRoom("Alpha"),
					roomB: namedRoom("Beta"),
				}},
			},
			members: map[ref.RoomID][]messaging.RoomMember{
				roomA: {{UserID: ref.MustParseUserID("@alice:test.local"), DisplayName: "Alice"}},
				roomB: {},
				roomC: {},
			},
		}
		resolver := NewSessionResolver(session, nil)

		summaries, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{SyncTimeoutMS: 30000})
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}

		if len(summaries) != 3 {
			t.Fatalf("expected 3 summaries, got %d", len(summaries))
		}
		if !sort.SliceIsSorted(summaries, func(i, j int) bool {
			return summaries[i].RoomID.String() < summaries[j].RoomID.String()
		}) {
			t.Error("summaries are not sorted by room ID")
		}
		if summaries[0].Name != "Alpha" || summaries[2].Name != "Gamma" {
			t.Errorf("unexpected order: %q .. %q", summaries[0].Name, summaries[2].Name)
		}
		if summaries[0].MemberCount != 1 || summaries[0].Members[0] != "Alice" {
			t.Errorf("room A roster not applied: %+v", summaries[0])
		}
	})

	t.Run("per-room resolution failure degrades, never fails the room", func(t *testing.T) {
		stateKey := "@alice:test.local"
		room := namedRoom("Partial")
		room.State.Events = append(room.State.Events, messaging.Event{
			Type:     "m.room.member",
			StateKey: &stateKey,
			Content:  map[string]any{"membership": "join"},
		})

		session := &fakeSession{
			syncResponse: &messaging.SyncResponse{
				Rooms: messaging.RoomsSection{Join: map[ref.RoomID]messaging.JoinedRoom{roomA: room}},
			},
			// No member data at all: every resolution fails.
			members: nil,
		}
		resolver := NewSessionResolver(session, nil)

		summaries, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{})
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].MemberCount != 1 {
			t.Errorf("MemberCount = %d, want the membership-event fallback", summaries[0].MemberCount)
		}
		if len(summaries[0].Members) != 0 {
			t.Errorf("Members = %v, want empty on failed resolution", summaries[0].Members)
		}
	})

	t.Run("sync failure aborts with no partial output", func(t *testing.T) {
		session := &fakeSession{syncErr: errors.New("connection reset")}
		resolver := NewSessionResolver(session, nil)

		summaries, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{})
		if err == nil {
			t.Fatal("expected error from failed sync")
		}
		if summaries != nil {
			t.Errorf("expected no partial output, got %d summaries", len(summaries))
		}
	})

	t.Run("empty sync yields empty snapshot", func(t *testing.T) {
		session := &fakeSession{syncResponse: &messaging.SyncResponse{NextBatch: "batch-1"}}
		resolver := NewSessionResolver(session, nil)

		summaries, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{})
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if len(summaries) != 0 {
			t.Errorf("expected empty snapshot, got %d summaries", len(summaries))
		}
	})

	t.Run("sequential resolution produces the same result", func(t *testing.T) {
		session := &fakeSession{
			syncResponse: &messaging.SyncResponse{
				Rooms: messaging.RoomsSection{Join: map[ref.RoomID]messaging.JoinedRoom{
					roomA: namedRoom("Alpha"),
					roomB: namedRoom("Beta"),
				}},
			},
			members: map[ref.RoomID][]messaging.RoomMember{
				roomA: {{UserID: ref.MustParseUserID("@alice:test.local"), DisplayName: "Alice"}},
				roomB: {{UserID: ref.MustParseUserID("@bob:test.local"), DisplayName: "Bob"}},
			},
		}
		resolver := NewSessionResolver(session, nil)

		concurrent, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{Concurrency: 8})
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		sequential, err := Snapshot(context.Background(), session, resolver, SnapshotOptions{Concurrency: 1})
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}

		if len(concurrent) != len(sequential) {
			t.Fatalf("length mismatch: %d vs %d", len(concurrent), len(sequential))
		}
		for index := range concurrent {
			if concurrent[index].RoomID != sequential[index].RoomID ||
				concurrent[index].Members[0] != sequential[index].Members[0] {
				t.Errorf("summary %d differs between concurrent and sequential runs", index)
			}
		}
	})
}
