package game

import (
	"context"
	"sync"
)

// RoomPersistence is the "put/fetch a snapshot" contract backing the
// in-memory registry. Redis implements it; tests use a map.
type RoomPersistence interface {
	Save(ctx context.Context, code string, snap RoomSnapshot) error
	Load(ctx context.Context, code string) (RoomSnapshot, bool, error)
	Delete(ctx context.Context, code string) error
}

// Registry is the process-wide source of truth mapping room code -> Room.
// It does no validation; callers own correctness and must treat a missing
// code as "not found". When a persistence backend is configured, lookups
// fall through to it and restore evicted rooms.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room

	persist RoomPersistence // optional
}

func NewRegistry(persist RoomPersistence) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		persist: persist,
	}
}

func (s *Registry) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

func (s *Registry) Put(room *Room) {
	s.mu.Lock()
	s.rooms[room.Code] = room
	s.mu.Unlock()
}

func (s *Registry) Delete(ctx context.Context, code string) {
	s.mu.Lock()
	delete(s.rooms, code)
	s.mu.Unlock()
	if s.persist != nil {
		_ = s.persist.Delete(ctx, code)
	}
}

func (s *Registry) All() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// GetOrLoad returns the live room, falling back to the persistence backend
// when the in-memory entry is gone (process restart). The restored room has
// every player marked disconnected; connections re-bind on their own.
func (s *Registry) GetOrLoad(ctx context.Context, code string) (*Room, bool, error) {
	if r, ok := s.Get(code); ok {
		return r, true, nil
	}
	if s.persist == nil {
		return nil, false, nil
	}

	snap, found, err := s.persist.Load(ctx, code)
	if err != nil || !found {
		return nil, false, err
	}

	room := snap.restore()
	s.Put(room)
	return room, true, nil
}

// SaveSnapshot persists the room's current state; callers hold the room lock.
func (s *Registry) SaveSnapshot(ctx context.Context, room *Room) {
	if s.persist == nil {
		return
	}
	_ = s.persist.Save(ctx, room.Code, room.snapshotLocked())
}
