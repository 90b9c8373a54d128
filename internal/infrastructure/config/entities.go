package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var ErrBadColor = errors.New("color must be #rrggbb or #rrggbbaa")

// Archetypes is the root config for archetypes.yaml
type Archetypes struct {
	Player PlayerArchetype `yaml:"player"`
	Enemy  EnemyArchetype  `yaml:"enemy"`
}

type PlayerArchetype struct {
	Width        float64         `yaml:"width"`
	Height       float64         `yaml:"height"`
	Color        string          `yaml:"color"`
	MoveSpeed    float64         `yaml:"move_speed"`
	JumpVelocity float64         `yaml:"jump_velocity"`
	Health       int             `yaml:"health"`
	StompDamage  int             `yaml:"stomp_damage"`
	Invulnerable float64         `yaml:"invulnerable"`
	Stun         float64         `yaml:"stun"`
	Attack       AttackArchetype `yaml:"attack"`
}

type AttackArchetype struct {
	Damage   int     `yaml:"damage"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Cooldown float64 `yaml:"cooldown"`
	Duration float64 `yaml:"duration"`
}

type EnemyArchetype struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Color          string  `yaml:"color"`
	Speed          float64 `yaml:"speed"`
	AvoidFalling   bool    `yaml:"avoid_falling"`
	Health         int     `yaml:"health"`
	ContactDamage  int     `yaml:"contact_damage"`
	BounceVelocity float64 `yaml:"bounce_velocity"`
}

// DefaultArchetypes returns the stock player and patrol enemy
func DefaultArchetypes() *Archetypes {
	return &Archetypes{
		Player: PlayerArchetype{
			Width:        32,
			Height:       48,
			Color:        "#00ff00",
			MoveSpeed:    200,
			JumpVelocity: -500,
			Health:       3,
			StompDamage:  1,
			Invulnerable: 1.0,
			Stun:         0.5,
			Attack: AttackArchetype{
				Damage:   1,
				Width:    50,
				Height:   80,
				Cooldown: 0.3,
				Duration: 0.15,
			},
		},
		Enemy: EnemyArchetype{
			Width:          10,
			Height:         10,
			Color:          "#ffa500",
			Speed:          10,
			AvoidFalling:   true,
			Health:         1,
			ContactDamage:  1,
			BounceVelocity: -300,
		},
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorOr is ParseColor with a fallback for unparsable input
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
