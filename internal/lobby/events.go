package lobby

// Event is a notification delivered to room watchers. The set is sealed:
// only seat arrivals and room lifecycle changes exist, because nothing else
// ever crosses between sessions.
type Event interface {
	roomEvent()
}

// GuestJoinedEvent is sent when a guest takes a seat in the room.
type GuestJoinedEvent struct {
	Code string
	Name string
	Lane int
}

func (GuestJoinedEvent) roomEvent() {}

// RoomClosedEvent is sent when the host closes the room.
type RoomClosedEvent struct {
	Code string
}

func (RoomClosedEvent) roomEvent() {}

// RoomExpiredEvent is sent when the board expires an idle room.
type RoomExpiredEvent struct {
	Code string
}

func (RoomExpiredEvent) roomEvent() {}
