// Command termplay plays the game inside a terminal. Each cell stands for an
// 8x16 block of world units.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/render"
	"github.com/younwookim/tilebound/internal/application/session"
	"github.com/younwookim/tilebound/internal/application/state"
	"github.com/younwookim/tilebound/internal/ecs"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
	"github.com/younwookim/tilebound/internal/infrastructure/logging"
	"github.com/younwookim/tilebound/internal/infrastructure/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configs := flag.String("configs", "cmd/game/configs", "Config directory")
	levelFlag := flag.String("level", "demo", "Level folder to start in")
	logFile := flag.String("log", "termplay.log", "Log file; the screen owns stdout")
	flag.Parse()

	loader := config.NewLoader(*configs)
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}
	cfg.Tuning.Logging.File = *logFile
	log, err := logging.New(cfg.Tuning.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	levels, start, err := session.LoadLevels(loader, *levelFlag)
	if err != nil {
		return err
	}
	s, err := session.New(cfg, levels, start, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	p := newPlayer(s, screen, log)
	p.loop()
	s.LogSummary("terminal session finished")
	return nil
}

type player struct {
	session  *session.Session
	screen   tcell.Screen
	canvas   *terminal.Canvas
	keys     terminal.Keys
	camera   *render.Camera
	renderer *render.Renderer
	state    state.GameState
	log      *zap.Logger
}

func newPlayer(s *session.Session, screen tcell.Screen, log *zap.Logger) *player {
	p := &player{
		session: s,
		screen:  screen,
		canvas:  terminal.NewCanvas(screen),
		camera:  render.NewCamera(0, 0),
		state:   state.StatePlaying,
		log:     log,
	}
	p.renderer = render.NewRenderer(p.camera, s.Sim().Settings().Patrol)
	p.resize()
	return p
}

// resize fits the camera to the screen minus the status row
func (p *player) resize() {
	w, h := p.canvas.ViewSize()
	p.camera.ViewW = w
	p.camera.ViewH = max(h-terminal.CellH, 0)
	p.camera.Follow(p.session.World())
}

func (p *player) loop() {
	ticker := time.NewTicker(time.Duration(p.session.DT() * float64(time.Second)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !p.handle(ev) {
				return
			}
		case <-ticker.C:
			p.tick()
		}
	}
}

// handle returns false when the player asked to quit
func (p *player) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch p.keys.Handle(ev.Key(), ev.Rune()) {
		case terminal.ActionQuit:
			return false
		case terminal.ActionPause:
			if p.state.Running() {
				p.state = state.StatePaused
			} else {
				p.state = state.StatePlaying
			}
			p.log.Info("state changed", zap.Stringer("state", p.state))
		}
	case *tcell.EventResize:
		p.screen.Sync()
		p.resize()
	}
	return true
}

func (p *player) tick() {
	for _, o := range p.keys.Toggles() {
		p.renderer.Toggle(o)
	}

	if p.state.Running() {
		report, err := p.session.Step(p.keys.Poll())
		if err != nil {
			p.log.Error("step failed", zap.Error(err))
		}
		if report.PlayerDied {
			p.log.Info("player died", zap.Int("frame", p.session.Sim().Frame()))
		}
		p.camera.Follow(p.session.World())
	}

	p.screen.Clear()
	p.renderer.Draw(p.session.World(), p.session.Sim().AllContacts(), p.canvas)
	p.canvas.Text(p.status(), 0, int(p.camera.ViewH))
	p.screen.Show()
}

func (p *player) status() string {
	st := p.session.Stats()
	hp := "hp -"
	if id, ok := p.session.Player(); ok {
		if h, ok := ecs.TryGet[ecs.Health](p.session.World(), id); ok {
			hp = fmt.Sprintf("hp %d/%d", h.Current, h.Max)
		}
	}
	return fmt.Sprintf("%s  %s  kills %d  deaths %d  doors %d  overlays %s  [q]uit [p]ause",
		p.state, hp, st.Kills, st.Deaths, st.Doors, p.renderer.Overlays())
}
