package config

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/younwookim/tilebound/internal/domain/level"
)

// LevelData is the root config for a level folder's data.json
type LevelData struct {
	Identifier       string              `json:"identifier"`
	UniqueIdentifier string              `json:"uniqueIdentifer"` // sic, matches the editor export
	X                int                 `json:"x"`
	Y                int                 `json:"y"`
	Width            int                 `json:"width"`
	Height           int                 `json:"height"`
	BgColor          string              `json:"bgColor"`
	CustomFields     LevelCustomFields   `json:"customFields"`
	NeighbourLevels  []NeighbourConfig   `json:"neighbourLevels"`
	Layers           []string            `json:"layers"`
	Entities         LevelEntitiesConfig `json:"entities"`
}

type LevelCustomFields struct {
	RoomType string `json:"RoomType"`
}

type NeighbourConfig struct {
	LevelIid string `json:"levelIid"`
	Dir      string `json:"dir"`
}

type LevelEntitiesConfig struct {
	Player []LevelEntityConfig `json:"Player"`
	Enemy  []LevelEntityConfig `json:"Enemy"`
	Path   []LevelEntityConfig `json:"Path"`
}

type LevelEntityConfig struct {
	ID           string            `json:"id"`
	Iid          string            `json:"iid"`
	Layer        string            `json:"layer"`
	X            int               `json:"x"`
	Y            int               `json:"y"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Color        int               `json:"color"`
	CustomFields EntityCustomField `json:"customFields"`
}

type EntityCustomField struct {
	NextDoor *DoorRef `json:"nextDoor,omitempty"`
}

type DoorRef struct {
	EntityIid string `json:"entityIid"`
	LevelIid  string `json:"levelIid"`
}

// ToLevel converts the export plus its tile grid into a level model
func (d *LevelData) ToLevel(tiles [][]int) *level.Level {
	lvl := &level.Level{
		ID:         d.UniqueIdentifier,
		Identifier: d.Identifier,
		X:          float64(d.X),
		Y:          float64(d.Y),
		Width:      d.Width,
		Height:     d.Height,
		BgColor:    d.BgColor,
		RoomType:   d.CustomFields.RoomType,
		Tiles:      tiles,
	}
	for _, n := range d.NeighbourLevels {
		lvl.Neighbours = append(lvl.Neighbours, n.LevelIid)
	}
	for _, e := range d.Entities.Player {
		lvl.Spawns = append(lvl.Spawns, e.spawn(level.SpawnPlayer))
	}
	for _, e := range d.Entities.Enemy {
		lvl.Spawns = append(lvl.Spawns, e.spawn(level.SpawnEnemy))
	}
	for _, e := range d.Entities.Path {
		lvl.Spawns = append(lvl.Spawns, e.spawn(level.SpawnPath))
	}
	return lvl
}

func (e LevelEntityConfig) spawn(kind level.SpawnKind) level.Spawn {
	s := level.Spawn{
		Kind:   kind,
		ID:     e.Iid,
		X:      float64(e.X),
		Y:      float64(e.Y),
		Width:  float64(e.Width),
		Height: float64(e.Height),
	}
	if s.ID == "" {
		s.ID = e.ID
	}
	if door := e.CustomFields.NextDoor; door != nil {
		s.NextLevel = door.LevelIid
		s.NextEntity = door.EntityIid
	}
	return s
}

// ParseTiles reads a Tiles.csv grid. Trailing commas and blank lines are ignored.
func ParseTiles(data []byte) ([][]int, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var grid [][]int
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tiles: %w", err)
		}
		if n := len(record); n > 0 && strings.TrimSpace(record[n-1]) == "" {
			record = record[:n-1]
		}
		if len(record) == 0 {
			continue
		}
		row := make([]int, len(record))
		for col, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("failed to parse tile at line %d col %d: %w", line, col, err)
			}
			row[col] = v
		}
		grid = append(grid, row)
	}
	return grid, nil
}
