package ecs

import "slices"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World owns the entity allocator and one typed table per component kind.
// Tables are created lazily on first Set or by Register.
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	tables map[any]table
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID: 1, // 0 is "nil"
		alive:  make(map[EntityID]struct{}),
		tables: make(map[any]table),
	}
}

// CreateEntity returns a new unique entity ID
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// RemoveEntity removes the entity and every component attached to it.
// Unknown or already removed IDs are ignored.
func (w *World) RemoveEntity(id EntityID) {
	if _, ok := w.alive[id]; !ok {
		return
	}
	delete(w.alive, id)
	for _, t := range w.tables {
		t.remove(id)
	}
}

// Alive reports whether the entity was created and not yet removed
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return len(w.alive)
}

// Entities returns all live entities in creation order
func (w *World) Entities() []EntityID {
	ids := make([]EntityID, 0, len(w.alive))
	for id := range w.alive {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Register creates the table for T if it does not exist yet.
// Registration is optional: an unregistered kind behaves as empty.
func Register[T any](w *World) {
	storeFor[T](w, true)
}

// Set attaches v to the entity, replacing any previous value of the same kind.
// Setting a component on a dead entity is a no-op.
func Set[T any](w *World, id EntityID, v T) {
	if !w.Alive(id) {
		return
	}
	storeFor[T](w, true).data[id] = v
}

// TryGet returns the entity's component of kind T, if any
func TryGet[T any](w *World, id EntityID) (T, bool) {
	s := storeFor[T](w, false)
	if s == nil {
		var zero T
		return zero, false
	}
	v, ok := s.data[id]
	return v, ok
}

// Has reports whether the entity holds a component of kind T
func Has[T any](w *World, id EntityID) bool {
	s := storeFor[T](w, false)
	return s != nil && s.has(id)
}

// Remove detaches the component of kind T. Absent components are ignored.
func Remove[T any](w *World, id EntityID) {
	if s := storeFor[T](w, false); s != nil {
		s.remove(id)
	}
}

// Count returns how many entities hold a component of kind T
func Count[T any](w *World) int {
	s := storeFor[T](w, false)
	if s == nil {
		return 0
	}
	return s.len()
}
