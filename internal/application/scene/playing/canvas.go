package playing

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screenCanvas draws onto an ebiten image. It implements render.Canvas.
type screenCanvas struct {
	screen *ebiten.Image
}

func (c screenCanvas) FillRect(x, y, w, h float64, col color.RGBA) {
	ebitenutil.DrawRect(c.screen, x, y, w, h, col)
}

func (c screenCanvas) StrokeRect(x, y, w, h float64, col color.RGBA) {
	vector.StrokeRect(c.screen, float32(x), float32(y), float32(w), float32(h), 1, col, false)
}

func (c screenCanvas) Text(s string, x, y int) {
	ebitenutil.DebugPrintAt(c.screen, s, x, y)
}
