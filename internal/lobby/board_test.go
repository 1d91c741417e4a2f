package lobby

import (
	"testing"
	"time"
)

func TestBoardOpenAssignsCode(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")
	if len(room.Code) != 6 {
		t.Errorf("join code should be 6 characters, got %q", room.Code)
	}
	if b.RoomCount() != 1 {
		t.Errorf("board should have 1 room, got %d", b.RoomCount())
	}

	lineup := room.Lineup()
	if lineup[0].Name != "Host" || lineup[0].IsBot {
		t.Errorf("lane 0 should be the host, got %+v", lineup[0])
	}
	for lane := 1; lane < laneCount; lane++ {
		if !lineup[lane].IsBot {
			t.Errorf("lane %d should start as a bot seat, got %+v", lane, lineup[lane])
		}
	}
}

func TestBoardJoinCopiesNameOnly(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")

	joined, lane, err := b.Join(room.Code, "Guest")
	if err != nil {
		t.Fatalf("Join() failed: %v", err)
	}
	if joined != room {
		t.Error("Join() should return the hosted room")
	}
	if lane != 1 {
		t.Errorf("first guest should take lane 1, got %d", lane)
	}

	lineup := room.Lineup()
	if lineup[1].Name != "Guest" || lineup[1].IsBot {
		t.Errorf("lane 1 should hold the guest, got %+v", lineup[1])
	}
	if !lineup[2].IsBot {
		t.Errorf("lane 2 should remain a bot seat, got %+v", lineup[2])
	}
}

func TestBoardJoinCaseInsensitive(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")

	if _, _, err := b.Join(room.Code, "Guest"); err != nil {
		t.Fatalf("uppercase join failed: %v", err)
	}

	// Codes are entered by hand; lowercase must work too
	room2 := b.Open("Host2")
	lower := ""
	for _, r := range room2.Code {
		lower += string(r | 0x20)
	}
	if _, _, err := b.Join(lower, "Guest2"); err != nil {
		t.Errorf("lowercase join failed: %v", err)
	}
}

func TestBoardJoinUnknownCode(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	if _, _, err := b.Join("NOPE99", "Guest"); err != ErrRoomNotFound {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestBoardJoinFullRoom(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")
	if _, _, err := b.Join(room.Code, "Guest1"); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}
	if _, _, err := b.Join(room.Code, "Guest2"); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	if _, _, err := b.Join(room.Code, "Guest3"); err != ErrRoomFull {
		t.Errorf("expected ErrRoomFull with all seats taken, got %v", err)
	}
}

func TestWatcherReceivesGuestJoin(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")
	w := room.Watch()
	defer w.Close()

	if _, _, err := b.Join(room.Code, "Guest"); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	select {
	case evt := <-w.Events():
		joined, ok := evt.(GuestJoinedEvent)
		if !ok {
			t.Fatalf("expected GuestJoinedEvent, got %T", evt)
		}
		if joined.Name != "Guest" || joined.Lane != 1 {
			t.Errorf("unexpected event payload: %+v", joined)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher never received the join event")
	}
}

func TestWatcherClosedWithRoom(t *testing.T) {
	b := NewBoard(DefaultBoardConfig())
	defer b.Stop()

	room := b.Open("Host")
	w := room.Watch()

	b.Close(room.Code)

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watcher should be done after the room closes")
	}

	if b.RoomCount() != 0 {
		t.Errorf("closed room should leave the board, count = %d", b.RoomCount())
	}

	// The close event is buffered before the watcher is done
	select {
	case evt := <-w.Events():
		if _, ok := evt.(RoomClosedEvent); !ok {
			t.Errorf("expected RoomClosedEvent, got %T", evt)
		}
	default:
		t.Error("close event was not delivered")
	}
}

func TestBoardExpiresIdleRooms(t *testing.T) {
	b := NewBoard(BoardConfig{
		RoomTimeout:   time.Millisecond,
		CleanupPeriod: time.Hour, // swept by hand below
	})
	defer b.Stop()

	idle := b.Open("Idle")
	active := b.Open("Active")
	if _, _, err := b.Join(active.Code, "Guest"); err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	b.expireIdleRooms()

	if _, ok := b.Room(idle.Code); ok {
		t.Error("idle room should have expired")
	}
	if _, ok := b.Room(active.Code); !ok {
		t.Error("room with a guest must never expire")
	}
}

func TestWatcherDropsOldestWhenFull(t *testing.T) {
	w := newWatcher()
	defer w.Close()

	for i := 0; i < watcherBuffer+5; i++ {
		w.send(GuestJoinedEvent{Lane: i})
	}

	// Never blocked, and the newest event survived the overflow
	var last GuestJoinedEvent
	for {
		select {
		case evt := <-w.Events():
			last = evt.(GuestJoinedEvent)
			continue
		default:
		}
		break
	}
	if last.Lane != watcherBuffer+4 {
		t.Errorf("newest event should survive overflow, last lane = %d", last.Lane)
	}
}
