package lobby

import (
	"sync"
	"time"
)

// laneCount mirrors the match: a room always has exactly three seats.
const laneCount = 3

// Seat is one lane assignment in a room lineup. Empty seats are filled
// with bots when the match starts.
type Seat struct {
	Name  string
	IsBot bool
}

// Room is a cosmetic waiting room. The only state that ever crosses
// between sessions is the display name copied into a seat at join time;
// every session runs its own fully local match afterwards, so there is no
// input forwarding, no snapshot exchange, and no shared RNG.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu       sync.Mutex
	seats    [laneCount]Seat
	occupied int
	closed   bool
	watchers []*Watcher
}

func newRoom(code, hostName string) *Room {
	r := &Room{
		Code:      code,
		CreatedAt: time.Now(),
	}
	r.seats[0] = Seat{Name: hostName}
	r.occupied = 1
	for lane := 1; lane < laneCount; lane++ {
		r.seats[lane] = Seat{IsBot: true}
	}
	return r
}

// Lineup returns a copy of the current seats in lane order.
func (r *Room) Lineup() [laneCount]Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats
}

// GuestCount returns how many guests have taken a seat (host excluded).
func (r *Room) GuestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupied - 1
}

// join seats a guest in the first bot lane. Returns the lane index, or
// false when every human seat is taken.
func (r *Room) join(name string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.occupied >= laneCount {
		return 0, false
	}

	lane := r.occupied
	r.seats[lane] = Seat{Name: name}
	r.occupied++

	r.broadcast(GuestJoinedEvent{Code: r.Code, Name: name, Lane: lane})
	return lane, true
}

// Watch registers a new event watcher for this room. The caller must
// Close the watcher when done with it.
func (r *Room) Watch() *Watcher {
	w := newWatcher()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		w.Close()
		return w
	}
	r.watchers = append(r.watchers, w)
	return w
}

// close marks the room terminal and notifies every watcher once.
func (r *Room) close(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.broadcast(evt)
	for _, w := range r.watchers {
		w.Close()
	}
	r.watchers = nil
}

// broadcast fans an event out to every watcher. Callers hold r.mu.
func (r *Room) broadcast(evt Event) {
	for _, w := range r.watchers {
		w.send(evt)
	}
}

// Watcher delivers room events to one waiting session over a buffered
// channel. Sends never block: when the buffer is full the oldest event is
// dropped, since a stalled TUI only ever cares about the latest state.
type Watcher struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

const watcherBuffer = 16

func newWatcher() *Watcher {
	return &Watcher{
		events: make(chan Event, watcherBuffer),
		done:   make(chan struct{}),
	}
}

// Events returns the channel to receive room events from.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Done returns a channel that closes when the watcher is finished.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close marks the watcher as done. Safe to call multiple times.
func (w *Watcher) Close() {
	w.doneOnce.Do(func() {
		close(w.done)
	})
}

// send delivers an event without blocking, dropping the oldest buffered
// event if needed.
func (w *Watcher) send(evt Event) {
	select {
	case <-w.done:
		return
	default:
	}

	select {
	case w.events <- evt:
	default:
		select {
		case <-w.events:
		default:
		}
		select {
		case w.events <- evt:
		default:
		}
	}
}
