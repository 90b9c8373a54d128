package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/tilebound/internal/domain/input"
)

var (
	keysLeft   = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	keysRight  = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	keysJump   = []ebiten.Key{ebiten.KeyW, ebiten.KeySpace, ebiten.KeyArrowUp}
	keysAttack = []ebiten.Key{ebiten.KeyJ, ebiten.KeyX}
)

// Keyboard samples keyboard, mouse and the first standard gamepad.
// It implements input.Source.
type Keyboard struct{}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Poll implements input.Source
func (Keyboard) Poll() input.Snapshot {
	s := input.Snapshot{
		Left:          anyPressed(keysLeft),
		Right:         anyPressed(keysRight),
		Jump:          anyPressed(keysJump),
		JumpPressed:   anyJustPressed(keysJump),
		AttackPressed: anyJustPressed(keysAttack) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.Axis = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		s.Left = s.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		s.Right = s.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		s.Jump = s.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.JumpPressed = s.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.AttackPressed = s.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		break
	}

	return s
}
