// Package session wires a world, the simulation and the room set into one
// playable run. Every driver (window, terminal, headless) steps a Session.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/factory"
	"github.com/younwookim/tilebound/internal/application/rooms"
	"github.com/younwookim/tilebound/internal/application/sim"
	"github.com/younwookim/tilebound/internal/application/system"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
)

var ErrNoLevels = errors.New("no levels to play")

// Stats accumulates what happened since the last reset
type Stats struct {
	Frames int
	Hits   int
	Stomps int
	Kills  int
	Deaths int
	Doors  int
}

// Session is one run through a set of linked levels
type Session struct {
	cfg    *config.GameConfig
	levels []*level.Level
	start  string
	log    *zap.Logger

	world *ecs.World
	sim   *sim.Simulation
	rooms *rooms.Rooms
	stats Stats
}

// New creates a session starting in the level with ID start
func New(cfg *config.GameConfig, levels []*level.Level, start string, log *zap.Logger) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, levels: levels, start: start, log: log}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the world from the start level and clears the stats
func (s *Session) Reset() error {
	w := ecs.NewWorld()
	f := factory.New(s.cfg.Archetypes, s.cfg.Tuning.Physics, s.log)
	r := rooms.New(f, s.log, s.levels...)
	if _, err := r.Enter(w, s.start); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	s.world = w
	s.rooms = r
	s.sim = sim.New(w, sim.WithLogger(s.log), sim.WithSettings(s.cfg.Tuning.Settings()))
	s.stats = Stats{}
	return nil
}

// Step advances one frame and then fires any door the player stepped onto
func (s *Session) Step(in input.Snapshot) (system.Report, error) {
	report := s.sim.Step(s.DT(), in)

	s.stats.Frames++
	s.stats.Hits += len(report.Hits)
	for _, h := range report.Hits {
		if h.Stomp {
			s.stats.Stomps++
		}
	}
	s.stats.Kills += len(report.Removed)
	if report.PlayerDied {
		s.stats.Deaths++
	}

	if _, moved, err := s.rooms.Update(s.world); err != nil {
		return report, err
	} else if moved {
		s.stats.Doors++
	}
	return report, nil
}

// Run polls src for n frames
func (s *Session) Run(src input.Source, n int) error {
	for range n {
		if _, err := s.Step(src.Poll()); err != nil {
			return err
		}
	}
	return nil
}

// DT returns the fixed frame time
func (s *Session) DT() float64 {
	return s.cfg.Tuning.FrameDT()
}

// World returns the current world
func (s *Session) World() *ecs.World {
	return s.world
}

// Sim returns the current simulation
func (s *Session) Sim() *sim.Simulation {
	return s.sim
}

// Stats returns the counters since the last reset
func (s *Session) Stats() Stats {
	return s.stats
}

// Config returns the game configuration
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// Player returns the player entity
func (s *Session) Player() (ecs.EntityID, bool) {
	return factory.FindPlayer(s.world)
}

// LogSummary writes the run totals and the player's state
func (s *Session) LogSummary(msg string) {
	fields := []zap.Field{
		zap.Int("frames", s.stats.Frames),
		zap.Int("hits", s.stats.Hits),
		zap.Int("stomps", s.stats.Stomps),
		zap.Int("kills", s.stats.Kills),
		zap.Int("deaths", s.stats.Deaths),
		zap.Int("doors", s.stats.Doors),
		zap.Int("entities", s.world.EntityCount()),
	}
	if id, ok := s.Player(); ok {
		if pos, ok := ecs.TryGet[ecs.Position](s.world, id); ok {
			fields = append(fields, zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
		}
		if hp, ok := ecs.TryGet[ecs.Health](s.world, id); ok {
			fields = append(fields, zap.Int("hp", hp.Current))
		}
	}
	s.log.Info(msg, fields...)
}

// LoadLevels loads every level folder. The level in folder start is returned
// by ID so it can seed New.
func LoadLevels(loader *config.Loader, start string) ([]*level.Level, string, error) {
	names, err := loader.ListLevels()
	if err != nil {
		return nil, "", err
	}

	var levels []*level.Level
	startID := ""
	for _, name := range names {
		lvl, err := loader.LoadLevel(name)
		if err != nil {
			return nil, "", err
		}
		levels = append(levels, lvl)
		if name == start {
			startID = lvl.ID
		}
	}
	if startID == "" {
		return nil, "", fmt.Errorf("failed to find start level %q: %w", start, rooms.ErrUnknownLevel)
	}
	return levels, startID, nil
}
