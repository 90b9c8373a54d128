package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/ecs"
)

// TickSystem is one stage of the per-tick pipeline
type TickSystem interface {
	Name() string
	Update(t *Tick)
}

// Contacts are the touching flags produced by collision resolution for one entity
type Contacts struct {
	Ground  bool
	Ceiling bool
	Left    bool
	Right   bool
}

// Hit records one applied damage event
type Hit struct {
	Source ecs.EntityID
	Target ecs.EntityID
	Amount int
	Policy ecs.DamagePolicy
	Attack bool // true when dealt by an attack hitbox
	Stomp  bool
}

// Report summarizes what happened during a tick
type Report struct {
	Hits       []Hit
	Removed    []ecs.EntityID
	PlayerDied bool
}

type pairKey struct {
	lo, hi ecs.EntityID
}

func newPairKey(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Tick is the tick-local context handed to every system.
// Everything except World is reset at the start of each tick.
type Tick struct {
	World    *ecs.World
	DT       float64
	Input    input.Snapshot
	Tiles    *TileCache
	Contacts map[ecs.EntityID]Contacts
	Report   Report
	Log      *zap.Logger

	processed map[pairKey]struct{}
}

// NewTick creates a tick context bound to w
func NewTick(w *ecs.World, log *zap.Logger) *Tick {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tick{
		World:     w,
		Tiles:     &TileCache{},
		Contacts:  make(map[ecs.EntityID]Contacts),
		Log:       log,
		processed: make(map[pairKey]struct{}),
	}
}

// Begin clears tick-local state and rebuilds the tile collision cache
func (t *Tick) Begin(dt float64, in input.Snapshot) {
	t.DT = dt
	t.Input = in
	t.Report = Report{}
	clear(t.Contacts)
	clear(t.processed)
	t.Tiles.Rebuild(t.World)
}

// markPair records a pair as processed; returns false if it already was this tick
func (t *Tick) markPair(a, b ecs.EntityID) bool {
	key := newPairKey(a, b)
	if _, seen := t.processed[key]; seen {
		return false
	}
	t.processed[key] = struct{}{}
	return true
}
