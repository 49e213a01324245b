/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the Manager, which creates, tracks, retrieves, and disposes
of Room instances. A janitor loop removes rooms that have stayed empty for
longer than the configured grace period.
*/
package chat

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/logx"
)

// janitorInterval is how often the Manager sweeps for disposable rooms.
const janitorInterval = 30 * time.Second

// Manager coordinates all active rooms.
type Manager struct {
	// mu protects concurrent access to the rooms map.
	mu sync.RWMutex

	// rooms holds every live Room, keyed by room code.
	rooms map[string]*Room

	// capacity is applied to every room created by this manager.
	capacity int

	// idleGrace is how long a room may stay empty before disposal.
	idleGrace time.Duration

	renderer EventRenderer
	clock    Clock

	// stop terminates the janitor loop; wg waits for it during shutdown.
	stop chan struct{}
	wg   sync.WaitGroup

	// structured logger with Manager context.
	logger zerolog.Logger
}

// NewManager constructs a Manager and starts its janitor loop.
func NewManager(capacity int, idleGrace time.Duration, renderer EventRenderer, clock Clock) *Manager {
	m := &Manager{
		rooms:     make(map[string]*Room),
		capacity:  capacity,
		idleGrace: idleGrace,
		renderer:  renderer,
		clock:     clock,
		stop:      make(chan struct{}),
		logger:    logx.Logger().With().Str("component", "Manager").Logger(),
	}

	m.wg.Add(1)
	go m.runJanitor()

	return m
}

// CreateRoom creates a new Room under the given code and registers it.
// It fails with ErrRoomCodeExists when the code is already taken.
func (m *Manager) CreateRoom(code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[code]; ok {
		m.logger.Warn().Str("room_code", code).Msg("Attempted to create existing room.")
		return nil, errs.NewError(errs.ErrRoomCodeExists)
	}

	room := NewRoom(code, m.capacity, m.renderer, m.clock)
	m.rooms[code] = room

	m.logger.Info().Str("room_code", code).Int("capacity", m.capacity).Msg("New room created.")
	return room, nil
}

// GetRoom retrieves a Room by its code, or nil when none exists.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.rooms[code]
}

// Rooms returns a snapshot of all live rooms, sorted by room code.
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Code < rooms[j].Code
	})

	return rooms
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rooms)
}

// runJanitor periodically disposes rooms that have been empty longer than
// the grace period.
func (m *Manager) runJanitor() {
	defer m.wg.Done()

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	m.logger.Info().Dur("idle_grace", m.idleGrace).Msg("Janitor loop started.")

	for {
		select {
		case <-ticker.C:
			m.sweepIdleRooms()
		case <-m.stop:
			m.logger.Info().Msg("Janitor loop stopped.")
			return
		}
	}
}

// sweepIdleRooms removes every room whose empty period exceeded the grace.
func (m *Manager) sweepIdleRooms() {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for code, room := range m.rooms {
		emptySince, empty := room.EmptySince()
		if !empty {
			continue
		}

		idle := time.Duration(now.Millis()-emptySince.Millis()) * time.Millisecond
		if idle < m.idleGrace {
			continue
		}

		// Dispose re-verifies occupancy under the room's own lock; a room
		// that was re-entered since EmptySince was stamped stays alive.
		if !room.Dispose() {
			continue
		}

		delete(m.rooms, code)
		m.logger.Info().
			Str("room_code", code).
			Dur("idle", idle).
			Msg("Idle room disposed.")
	}
}

// Shutdown stops the janitor loop and drops all rooms.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down Manager...")

	close(m.stop)
	m.wg.Wait()

	m.mu.Lock()
	m.rooms = make(map[string]*Room)
	m.mu.Unlock()

	m.logger.Info().Msg("Manager shutdown complete.")
}
