// Package scene defines the screens the window driver switches between.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit ends the game loop without reporting a failure
var ErrQuit = errors.New("quit requested")

// Scene is one screen of the window driver (playing, game over, ...).
//
// Update advances the scene by dt seconds and returns the scene to switch
// to, or nil to stay. Returning ErrQuit stops the game cleanly; any other
// error terminates it as a failure.
type Scene interface {
	Update(dt float64) (next Scene, err error)
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current
	OnEnter()
	// OnExit runs when the scene is replaced or the game closes.
	// Pending recordings are flushed here.
	OnExit()
}
