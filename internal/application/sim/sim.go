// Package sim drives the per-tick system pipeline over a world.
//
// A Simulation owns no globals: drivers (the ebiten scene, the headless runner,
// the terminal player) hold one and call Step once per frame.
package sim

import (
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/system"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/ecs"
)

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the logger handed to every system
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSettings replaces the stock system tuning
func WithSettings(settings system.Settings) Option {
	return func(s *Simulation) {
		s.settings = settings
	}
}

// WithSystems replaces the default pipeline. Systems run in the given order.
func WithSystems(systems ...system.TickSystem) Option {
	return func(s *Simulation) {
		s.systems = systems
	}
}

// Simulation runs the fixed system pipeline against a world
type Simulation struct {
	world    *ecs.World
	tick     *system.Tick
	systems  []system.TickSystem
	settings system.Settings
	log      *zap.Logger
	frame    int
}

// New creates a simulation over w
func New(w *ecs.World, opts ...Option) *Simulation {
	s := &Simulation{
		world:    w,
		settings: system.DefaultSettings(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.systems == nil {
		s.systems = system.Pipeline(s.settings)
	}
	s.tick = system.NewTick(w, s.log)
	return s
}

// Step advances the world by dt seconds using the given input
func (s *Simulation) Step(dt float64, in input.Snapshot) system.Report {
	s.tick.Begin(dt, in)
	for _, sys := range s.systems {
		sys.Update(s.tick)
	}
	s.frame++
	return s.tick.Report
}

// World returns the simulated world
func (s *Simulation) World() *ecs.World {
	return s.world
}

// Frame returns the number of completed steps
func (s *Simulation) Frame() int {
	return s.frame
}

// Contacts returns the touching flags resolved for id during the last step
func (s *Simulation) Contacts(id ecs.EntityID) (system.Contacts, bool) {
	c, ok := s.tick.Contacts[id]
	return c, ok
}

// AllContacts returns every contact set from the last step. Read only.
func (s *Simulation) AllContacts() map[ecs.EntityID]system.Contacts {
	return s.tick.Contacts
}

// Tiles returns the tile rectangles collided against during the last step
func (s *Simulation) Tiles() []ecs.Rect {
	return s.tick.Tiles.Rects()
}

// Settings returns the tuning the pipeline was built with
func (s *Simulation) Settings() system.Settings {
	return s.settings
}

// SystemNames lists the pipeline in execution order
func (s *Simulation) SystemNames() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.Name()
	}
	return names
}
