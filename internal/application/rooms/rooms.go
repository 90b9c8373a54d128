// Package rooms links levels through their path triggers.
package rooms

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/factory"
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrUnknownDoor  = errors.New("unknown door")
)

// Transition describes one door traversal
type Transition struct {
	From string // level ID the door belongs to
	To   string // level ID the player arrived in
	Door string // destination door ID
}

// Rooms spawns levels on demand and moves the player between linked doors.
// A door fires when the player starts overlapping it, so arriving on the
// destination door does not bounce back.
type Rooms struct {
	levels  map[string]*level.Level
	spawned map[string]ecs.EntityID
	doors   map[ecs.EntityID]string // path entity -> owning level ID
	inside  map[ecs.EntityID]bool
	factory *factory.Factory
	log     *zap.Logger
}

// New creates a room set over levels, keyed by their ID
func New(f *factory.Factory, log *zap.Logger, levels ...*level.Level) *Rooms {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Rooms{
		levels:  make(map[string]*level.Level, len(levels)),
		spawned: make(map[string]ecs.EntityID),
		doors:   make(map[ecs.EntityID]string),
		inside:  make(map[ecs.EntityID]bool),
		factory: f,
		log:     log,
	}
	for _, lvl := range levels {
		r.levels[lvl.ID] = lvl
	}
	return r
}

// Level returns the level with the given ID
func (r *Rooms) Level(id string) (*level.Level, bool) {
	lvl, ok := r.levels[id]
	return lvl, ok
}

// Spawned reports whether the level has been spawned into the world
func (r *Rooms) Spawned(id string) bool {
	_, ok := r.spawned[id]
	return ok
}

// Enter spawns the level with the given ID unless it already is.
// It returns the level's grid entity.
func (r *Rooms) Enter(w *ecs.World, id string) (ecs.EntityID, error) {
	if grid, ok := r.spawned[id]; ok {
		return grid, nil
	}
	lvl, ok := r.levels[id]
	if !ok {
		return 0, fmt.Errorf("failed to enter level %q: %w", id, ErrUnknownLevel)
	}

	spawned, err := r.factory.SpawnLevel(w, lvl)
	if err != nil {
		return 0, err
	}
	r.spawned[id] = spawned.Level
	for _, door := range spawned.Paths {
		r.doors[door] = id
	}
	return spawned.Level, nil
}

// Update fires the first door the player has just stepped onto
func (r *Rooms) Update(w *ecs.World) (Transition, bool, error) {
	player, ok := factory.FindPlayer(w)
	if !ok {
		return Transition{}, false, nil
	}
	bounds, ok := playerBounds(w, player)
	if !ok {
		return Transition{}, false, nil
	}

	var fired *ecs.PathTrigger
	var from string
	for _, id := range ecs.Query1[ecs.PathTrigger](w) {
		trigger, _ := ecs.TryGet[ecs.PathTrigger](w, id)
		overlap := trigger.Area.Intersects(bounds)
		entered := overlap && !r.inside[id]
		r.inside[id] = overlap
		if entered && fired == nil && trigger.NextLevel != "" {
			fired = &trigger
			from = r.doors[id]
		}
	}
	if fired == nil {
		return Transition{}, false, nil
	}

	t, err := r.traverse(w, player, *fired)
	if err != nil {
		return Transition{}, false, err
	}
	t.From = from
	r.log.Info("door traversed",
		zap.String("from", t.From),
		zap.String("to", t.To),
		zap.String("door", t.Door))
	return t, true, nil
}

func (r *Rooms) traverse(w *ecs.World, player ecs.EntityID, trigger ecs.PathTrigger) (Transition, error) {
	if _, err := r.Enter(w, trigger.NextLevel); err != nil {
		return Transition{}, err
	}
	lvl := r.levels[trigger.NextLevel]

	var dest *level.Spawn
	for _, s := range lvl.SpawnsOf(level.SpawnPath) {
		if s.ID == trigger.NextEntity {
			dest = &s
			break
		}
	}
	if dest == nil {
		return Transition{}, fmt.Errorf("failed to find door %q in level %q: %w", trigger.NextEntity, lvl.ID, ErrUnknownDoor)
	}

	// Stand on the door's bottom edge
	x, y := lvl.WorldPos(*dest)
	col, _ := ecs.TryGet[ecs.Collider](w, player)
	pos := ecs.Position{X: x - col.OffsetX, Y: y + dest.Height - col.H - col.OffsetY}
	ecs.Set(w, player, pos)
	ecs.Set(w, player, ecs.Spawn{X: pos.X, Y: pos.Y})
	if ecs.Has[ecs.Velocity](w, player) {
		ecs.Set(w, player, ecs.Velocity{})
	}

	// Doors under the arrival spot count as already entered
	if b, ok := playerBounds(w, player); ok {
		for _, id := range ecs.Query1[ecs.PathTrigger](w) {
			trigger, _ := ecs.TryGet[ecs.PathTrigger](w, id)
			r.inside[id] = trigger.Area.Intersects(b)
		}
	}

	return Transition{To: lvl.ID, Door: dest.ID}, nil
}

func playerBounds(w *ecs.World, id ecs.EntityID) (ecs.Rect, bool) {
	pos, ok := ecs.TryGet[ecs.Position](w, id)
	if !ok {
		return ecs.Rect{}, false
	}
	col, ok := ecs.TryGet[ecs.Collider](w, id)
	if !ok {
		return ecs.Rect{}, false
	}
	return col.Bounds(pos), true
}
