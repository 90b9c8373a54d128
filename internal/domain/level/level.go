// Package level holds the validated tile-grid level model consumed by the simulation.
package level

import (
	"errors"
	"fmt"
	"math"
)

// TileSize is the fixed cell size of every tile grid in world units
const TileSize = 16

var (
	ErrEmptyGrid    = errors.New("level has no tiles")
	ErrRaggedGrid   = errors.New("level grid rows differ in length")
	ErrNegativeTile = errors.New("level grid contains a negative tile code")
	ErrBadSpawn     = errors.New("level spawn has a non-finite coordinate")
)

// SpawnKind tags what a spawn descriptor creates
type SpawnKind int

const (
	SpawnPlayer SpawnKind = iota
	SpawnEnemy
	SpawnPath
)

// String returns the string representation of the spawn kind
func (k SpawnKind) String() string {
	switch k {
	case SpawnPlayer:
		return "player"
	case SpawnEnemy:
		return "enemy"
	case SpawnPath:
		return "path"
	default:
		return "unknown"
	}
}

// Spawn is a start point relative to the level origin
type Spawn struct {
	Kind          SpawnKind
	ID            string
	X, Y          float64
	Width, Height float64

	// Path spawns only: the door this path leads to
	NextLevel  string
	NextEntity string
}

// Level is one room of the world: an origin plus a row-major grid of tile codes.
// Any nonzero code is solid.
type Level struct {
	ID         string
	Identifier string
	X, Y       float64
	Width      int
	Height     int
	BgColor    string
	RoomType   string
	Neighbours []string
	Tiles      [][]int
	Spawns     []Spawn
}

// Rows returns the grid height in cells
func (l *Level) Rows() int { return len(l.Tiles) }

// Cols returns the grid width in cells
func (l *Level) Cols() int {
	if len(l.Tiles) == 0 {
		return 0
	}
	return len(l.Tiles[0])
}

// Solid reports whether the cell holds a solid tile. Out-of-range cells are empty.
func (l *Level) Solid(col, row int) bool {
	if row < 0 || row >= len(l.Tiles) || col < 0 || col >= len(l.Tiles[row]) {
		return false
	}
	return l.Tiles[row][col] != 0
}

// CellOrigin returns the world position of the cell's top-left corner
func (l *Level) CellOrigin(col, row int) (float64, float64) {
	return l.X + float64(col*TileSize), l.Y + float64(row*TileSize)
}

// SpawnsOf returns the spawns of the given kind in declaration order
func (l *Level) SpawnsOf(kind SpawnKind) []Spawn {
	var out []Spawn
	for _, s := range l.Spawns {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// WorldPos converts a spawn's level-relative offset to world coordinates
func (l *Level) WorldPos(s Spawn) (float64, float64) {
	return l.X + s.X, l.Y + s.Y
}

// Validate rejects grids the simulation cannot consume
func Validate(l *Level) error {
	if len(l.Tiles) == 0 || len(l.Tiles[0]) == 0 {
		return fmt.Errorf("level %q: %w", l.Identifier, ErrEmptyGrid)
	}
	cols := len(l.Tiles[0])
	for row, cells := range l.Tiles {
		if len(cells) != cols {
			return fmt.Errorf("level %q row %d has %d cells, want %d: %w", l.Identifier, row, len(cells), cols, ErrRaggedGrid)
		}
		for col, code := range cells {
			if code < 0 {
				return fmt.Errorf("level %q cell (%d,%d): %w", l.Identifier, col, row, ErrNegativeTile)
			}
		}
	}
	if !finite(l.X) || !finite(l.Y) {
		return fmt.Errorf("level %q origin: %w", l.Identifier, ErrBadSpawn)
	}
	for _, s := range l.Spawns {
		if !finite(s.X) || !finite(s.Y) {
			return fmt.Errorf("level %q %s spawn %q: %w", l.Identifier, s.Kind, s.ID, ErrBadSpawn)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
