package ecs

import "slices"

// Kind names a component kind for use in Query
type Kind struct {
	key any
}

// With returns the Kind for component type T
func With[T any]() Kind {
	return Kind{key: kindKey[T]()}
}

// Query returns the entities holding every listed kind, in creation order.
// A kind that was never registered matches no entities.
func Query(w *World, kinds ...Kind) []EntityID {
	if len(kinds) == 0 {
		return nil
	}

	tables := make([]table, 0, len(kinds))
	for _, k := range kinds {
		t, ok := w.tables[k.key]
		if !ok || t.len() == 0 {
			return nil
		}
		tables = append(tables, t)
	}

	// Drive the scan from the smallest table
	smallest := 0
	for i, t := range tables {
		if t.len() < tables[smallest].len() {
			smallest = i
		}
	}

	result := make([]EntityID, 0, tables[smallest].len())
	for _, id := range tables[smallest].ids() {
		matched := true
		for i, t := range tables {
			if i != smallest && !t.has(id) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// Query1 returns the entities holding A
func Query1[A any](w *World) []EntityID {
	return Query(w, With[A]())
}

// Query2 returns the entities holding A and B
func Query2[A, B any](w *World) []EntityID {
	return Query(w, With[A](), With[B]())
}

// Query3 returns the entities holding A, B and C
func Query3[A, B, C any](w *World) []EntityID {
	return Query(w, With[A](), With[B](), With[C]())
}
