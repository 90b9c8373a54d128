// Package terminal renders the world into a tcell screen and reads keys from it.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// One terminal cell covers CellW x CellH world units
const (
	CellW = 8
	CellH = 16
)

const (
	runeFill   = '█'
	runeStroke = '░'
)

// Canvas implements render.Canvas over a tcell screen
type Canvas struct {
	screen tcell.Screen
}

// NewCanvas creates a canvas drawing into screen
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

// ViewSize returns the screen size in world units
func (c *Canvas) ViewSize() (float64, float64) {
	w, h := c.screen.Size()
	return float64(w * CellW), float64(h * CellH)
}

func style(col color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
}

// cells returns the clipped cell span covered by a world-unit rect
func (c *Canvas) cells(x, y, w, h float64) (c0, r0, c1, r1 int) {
	sw, sh := c.screen.Size()
	c0 = max(int(math.Floor(x/CellW)), 0)
	r0 = max(int(math.Floor(y/CellH)), 0)
	c1 = min(int(math.Ceil((x+w)/CellW)), sw)
	r1 = min(int(math.Ceil((y+h)/CellH)), sh)
	return c0, r0, c1, r1
}

// FillRect paints every cell the rect touches. Fully transparent colors are skipped.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if col.A == 0 {
		return
	}
	st := style(col)
	c0, r0, c1, r1 := c.cells(x, y, w, h)
	for row := r0; row < r1; row++ {
		for cx := c0; cx < c1; cx++ {
			c.screen.SetContent(cx, row, runeFill, nil, st)
		}
	}
}

// StrokeRect paints the border cells of the rect
func (c *Canvas) StrokeRect(x, y, w, h float64, col color.RGBA) {
	if col.A == 0 {
		return
	}
	st := style(col)
	c0, r0, c1, r1 := c.cells(x, y, w, h)
	for row := r0; row < r1; row++ {
		for cx := c0; cx < c1; cx++ {
			if row == r0 || row == r1-1 || cx == c0 || cx == c1-1 {
				c.screen.SetContent(cx, row, runeStroke, nil, st)
			}
		}
	}
}

// Text writes s starting at the cell containing (x, y)
func (c *Canvas) Text(s string, x, y int) {
	col, row := x/CellW, y/CellH
	for _, r := range s {
		c.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
}
