// Package lobby implements the cosmetic waiting room: join-code rooms
// where up to three display names are assembled into a lineup before each
// session starts its own fully local match. No peer state beyond the
// names ever synchronizes.
package lobby

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Errors returned by Join.
var (
	ErrRoomNotFound = errors.New("lobby: room not found")
	ErrRoomFull     = errors.New("lobby: room is full")
)

// BoardConfig holds configuration for the room board.
type BoardConfig struct {
	RoomTimeout   time.Duration // How long before a room with no guests expires
	CleanupPeriod time.Duration // How often to sweep expired rooms
}

// DefaultBoardConfig returns sensible defaults.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		RoomTimeout:   2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
	}
}

// Board tracks open rooms by join code. Thread-safe.
type Board struct {
	config BoardConfig

	mu    sync.RWMutex
	rooms map[string]*Room

	done     chan struct{}
	doneOnce sync.Once
}

// NewBoard creates a new room board.
func NewBoard(cfg BoardConfig) *Board {
	return &Board{
		config: cfg,
		rooms:  make(map[string]*Room),
		done:   make(chan struct{}),
	}
}

// Start begins the background sweep of expired rooms.
func (b *Board) Start() {
	go b.cleanupLoop()
}

// Stop shuts the board down and closes every open room.
func (b *Board) Stop() {
	b.doneOnce.Do(func() {
		close(b.done)
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	for code, room := range b.rooms {
		room.close(RoomClosedEvent{Code: code})
		delete(b.rooms, code)
	}
}

// Open creates a new room hosted under the given display name and
// returns it with its join code assigned.
func (b *Board) Open(hostName string) *Room {
	b.mu.Lock()
	defer b.mu.Unlock()

	code := b.uniqueCode()
	room := newRoom(code, hostName)
	b.rooms[code] = room
	return room
}

// Join seats a guest in the room with the given code. The guest's display
// name is the only thing copied across; the returned room is otherwise
// read-only for the guest.
func (b *Board) Join(code, guestName string) (*Room, int, error) {
	b.mu.RLock()
	room, exists := b.rooms[strings.ToUpper(code)]
	b.mu.RUnlock()

	if !exists {
		return nil, 0, ErrRoomNotFound
	}

	lane, ok := room.join(guestName)
	if !ok {
		return nil, 0, ErrRoomFull
	}
	return room, lane, nil
}

// Close shuts a room down and notifies its watchers.
func (b *Board) Close(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	code = strings.ToUpper(code)
	if room, exists := b.rooms[code]; exists {
		room.close(RoomClosedEvent{Code: code})
		delete(b.rooms, code)
	}
}

// Room returns a room by code.
func (b *Board) Room(code string) (*Room, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.rooms[strings.ToUpper(code)]
	return r, ok
}

// RoomCount returns the number of open rooms.
func (b *Board) RoomCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms)
}

func (b *Board) cleanupLoop() {
	ticker := time.NewTicker(b.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.expireIdleRooms()
		case <-b.done:
			return
		}
	}
}

// expireIdleRooms drops rooms no guest has joined within the timeout.
func (b *Board) expireIdleRooms() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for code, room := range b.rooms {
		if room.GuestCount() == 0 && now.Sub(room.CreatedAt) > b.config.RoomTimeout {
			room.close(RoomExpiredEvent{Code: code})
			delete(b.rooms, code)
		}
	}
}

// uniqueCode draws codes until one is free. Callers hold b.mu.
func (b *Board) uniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := b.rooms[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase alphanumeric code.
func generateJoinCode() string {
	buf := make([]byte, 4) // 4 bytes base32-encode to 8 chars, we take 6
	if _, err := rand.Read(buf); err != nil {
		// Fallback to timestamp-based
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	// base32 alphabet is A-Z, 2-7: unambiguous to read over a shoulder
	return strings.ToUpper(base32.StdEncoding.EncodeToString(buf)[:6])
}
