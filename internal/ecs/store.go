package ecs

// table is the type-erased view the World needs for cascading removal and queries.
type table interface {
	remove(id EntityID)
	has(id EntityID) bool
	len() int
	ids() []EntityID
}

// store is the typed table for one component kind
type store[T any] struct {
	data map[EntityID]T
}

func (s *store[T]) remove(id EntityID) { delete(s.data, id) }

func (s *store[T]) has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *store[T]) len() int { return len(s.data) }

func (s *store[T]) ids() []EntityID {
	out := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		out = append(out, id)
	}
	return out
}

// kindKey identifies a component kind by a typed nil pointer, so each T maps
// to a distinct comparable key without reflection.
func kindKey[T any]() any {
	return (*T)(nil)
}

func storeFor[T any](w *World, create bool) *store[T] {
	key := kindKey[T]()
	if t, ok := w.tables[key]; ok {
		return t.(*store[T])
	}
	if !create {
		return nil
	}
	s := &store[T]{data: make(map[EntityID]T)}
	w.tables[key] = s
	return s
}
