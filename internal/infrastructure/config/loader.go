package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/tilebound/internal/domain/level"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning     *Tuning
	Archetypes *Archetypes
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadTuning loads tuning.toml over the defaults
func (l *Loader) LoadTuning() (*Tuning, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning.toml: %w", err)
	}

	cfg := DefaultTuning()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.toml: %w", err)
	}

	return cfg, nil
}

// LoadArchetypes loads archetypes.yaml over the defaults
func (l *Loader) LoadArchetypes() (*Archetypes, error) {
	data, err := fs.ReadFile(l.fsys, "archetypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read archetypes.yaml: %w", err)
	}

	cfg := DefaultArchetypes()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse archetypes.yaml: %w", err)
	}
	if _, err := ParseColor(cfg.Player.Color); err != nil {
		return nil, fmt.Errorf("invalid player color: %w", err)
	}
	if _, err := ParseColor(cfg.Enemy.Color); err != nil {
		return nil, fmt.Errorf("invalid enemy color: %w", err)
	}

	return cfg, nil
}

// LoadLevel loads levels/<name>/data.json and Tiles.csv and validates the result
func (l *Loader) LoadLevel(name string) (*level.Level, error) {
	dir := path.Join("levels", name)

	data, err := fs.ReadFile(l.fsys, path.Join(dir, "data.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}
	var ld LevelData
	if err := json.Unmarshal(data, &ld); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}

	csvData, err := fs.ReadFile(l.fsys, path.Join(dir, "Tiles.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to read tiles for level %s: %w", name, err)
	}
	tiles, err := ParseTiles(csvData)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}

	lvl := ld.ToLevel(tiles)
	if err := level.Validate(lvl); err != nil {
		return nil, fmt.Errorf("failed to validate level %s: %w", name, err)
	}
	return lvl, nil
}

// ListLevels returns the level folder names in lexical order
func (l *Loader) ListLevels() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, "levels")
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadAll loads all base configurations (tuning, archetypes)
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	archetypes, err := l.LoadArchetypes()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning:     tuning,
		Archetypes: archetypes,
	}, nil
}
