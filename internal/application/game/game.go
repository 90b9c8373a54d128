// Package game runs the window driver's scene loop on top of ebiten.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/scene"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	display config.DisplayConfig
	dt      float64
	log     *zap.Logger
}

// New creates a Game sized by display with the given initial scene.
// The initial scene's OnEnter is called immediately. A nil logger disables logging.
func New(initial scene.Scene, display config.DisplayConfig, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	dt := 1.0 / 60.0
	if display.Framerate > 0 {
		dt = 1.0 / float64(display.Framerate)
	}
	g := &Game{
		current: initial,
		display: display,
		dt:      dt,
		log:     log,
	}
	g.current.OnEnter()
	return g
}

// Configure applies the window size, title and tick rate
func (g *Game) Configure() {
	scale := max(g.display.Scale, 1)
	ebiten.SetWindowSize(g.display.ScreenWidth*scale, g.display.ScreenHeight*scale)
	ebiten.SetWindowTitle(g.display.Title)
	if g.display.Framerate > 0 {
		ebiten.SetTPS(g.display.Framerate)
	}
}

// Update updates the current scene and handles scene transitions.
// scene.ErrQuit is turned into ebiten.Termination.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.log.Debug("scene changed",
			zap.String("from", fmt.Sprintf("%T", g.current)),
			zap.String("to", fmt.Sprintf("%T", next)))
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size from the display config
func (g *Game) Layout(_, _ int) (int, int) {
	return g.display.ScreenWidth, g.display.ScreenHeight
}

// Close exits the current scene. Call it once ebiten.RunGame returns.
func (g *Game) Close() {
	g.current.OnExit()
}

// SetDT overrides the delta time used for updates
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
