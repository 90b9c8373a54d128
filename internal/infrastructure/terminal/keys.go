package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tilebound/internal/application/render"
	"github.com/younwookim/tilebound/internal/domain/input"
)

// HoldFrames is how long a key press reads as held. Terminals only report
// presses and auto-repeat, never releases.
const HoldFrames = 8

// Action is a driver-level command decoded from a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
)

// Keys turns tcell key presses into input snapshots. It implements input.Source.
// Handle and Poll must be called from the same goroutine.
type Keys struct {
	left, right, jump int
	jumpPressed       bool
	attackPressed     bool
	toggles           []render.Overlay
}

// Handle records one key press
func (k *Keys) Handle(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		k.left, k.right = HoldFrames, 0
	case tcell.KeyRight:
		k.right, k.left = HoldFrames, 0
	case tcell.KeyUp:
		k.pressJump()
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5, tcell.KeyF6:
		k.toggles = append(k.toggles, render.Overlays[key-tcell.KeyF1])
	case tcell.KeyRune:
		return k.handleRune(r)
	}
	return ActionNone
}

func (k *Keys) handleRune(r rune) Action {
	switch r {
	case 'q':
		return ActionQuit
	case 'p':
		return ActionPause
	case 'a':
		k.left, k.right = HoldFrames, 0
	case 'd':
		k.right, k.left = HoldFrames, 0
	case 'w', ' ':
		k.pressJump()
	case 'j', 'x':
		k.attackPressed = true
	case '1', '2', '3', '4', '5', '6':
		k.toggles = append(k.toggles, render.Overlays[r-'1'])
	}
	return ActionNone
}

func (k *Keys) pressJump() {
	k.jump = HoldFrames
	k.jumpPressed = true
}

// Poll implements input.Source. Press edges are consumed and holds count down.
func (k *Keys) Poll() input.Snapshot {
	s := input.Snapshot{
		Left:          k.left > 0,
		Right:         k.right > 0,
		Jump:          k.jump > 0,
		JumpPressed:   k.jumpPressed,
		AttackPressed: k.attackPressed,
	}
	k.left = max(k.left-1, 0)
	k.right = max(k.right-1, 0)
	k.jump = max(k.jump-1, 0)
	k.jumpPressed = false
	k.attackPressed = false
	return s
}

// Toggles drains the overlay toggles requested since the last call
func (k *Keys) Toggles() []render.Overlay {
	out := k.toggles
	k.toggles = nil
	return out
}
