package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

const testDT = 1.0 / 60.0

// createTestLevel builds a level from rows where '#' is solid
func createTestLevel(x, y float64, rows ...string) *level.Level {
	lvl := &level.Level{Identifier: "test", X: x, Y: y, Tiles: make([][]int, len(rows))}
	for r, row := range rows {
		lvl.Tiles[r] = make([]int, len(row))
		for c, ch := range row {
			if ch == '#' {
				lvl.Tiles[r][c] = 1
			}
		}
	}
	return lvl
}

func addTestLevel(w *ecs.World, lvl *level.Level) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Set(w, id, ecs.LevelGrid{Level: lvl, Active: true})
	return id
}

// createTestBody creates a dynamic body with position, collider and velocity
func createTestBody(w *ecs.World, x, y, width, height float64, vel ecs.Velocity) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Collider{W: width, H: height, Kind: ecs.ColliderDynamic})
	ecs.Set(w, id, vel)
	return id
}

func createTestPlatform(w *ecs.World, x, y, width, height float64) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Collider{W: width, H: height, Kind: ecs.ColliderStatic})
	return id
}

func createTestTick(w *ecs.World, in input.Snapshot) *Tick {
	t := NewTick(w, nil)
	t.Begin(testDT, in)
	return t
}

// runTestTicks runs the full pipeline n times with a fixed input
func runTestTicks(w *ecs.World, n int, in input.Snapshot) *Tick {
	systems := Pipeline(DefaultSettings())
	t := NewTick(w, nil)
	for i := 0; i < n; i++ {
		t.Begin(testDT, in)
		for _, s := range systems {
			s.Update(t)
		}
	}
	return t
}

func mustGet[T any](t *testing.T, w *ecs.World, id ecs.EntityID) T {
	t.Helper()
	v, ok := ecs.TryGet[T](w, id)
	require.True(t, ok, "missing component")
	return v
}
