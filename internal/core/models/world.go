package models

import (
	"sort"
	"sync"
)

// World is a thread-safe registry of tagged entities owned by the host.
type World struct {
	mu       sync.RWMutex
	entities map[EntityID]Entity
}

func NewWorld() *World {
	return &World{entities: make(map[EntityID]Entity)}
}

// Add registers an entity. Ids are unique within a world.
func (w *World) Add(e Entity) error {
	if e.ID() == 0 {
		return ErrInvalidEntity
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.entities[e.ID()]; exists {
		return ErrEntityExists
	}
	w.entities[e.ID()] = e
	return nil
}

func (w *World) Get(id EntityID) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

func (w *World) Remove(id EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.entities[id]; !exists {
		return ErrEntityNotFound
	}
	delete(w.entities, id)
	return nil
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// IDs returns a sorted snapshot of registered ids.
func (w *World) IDs() []EntityID {
	w.mu.RLock()
	ids := make([]EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	w.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
