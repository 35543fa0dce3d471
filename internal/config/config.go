// Package config provides YAML-based difficulty catalogs for the arcade games
// and resolves named difficulties into the parameters a simulation starts from.
package config

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Difficulty names shared by every catalog.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DifficultyNames lists the known difficulties in menu order.
var DifficultyNames = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// BreakoutArena defines the fixed playfield geometry in logical units.
type BreakoutArena struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BallRadius   float64 `yaml:"ball_radius"`
	BrickTop     float64 `yaml:"brick_top"`     // Y of the first brick row
	BrickHeight  float64 `yaml:"brick_height"`
	BrickGap     float64 `yaml:"brick_gap"`     // Gap between bricks and around the grid
	PaddleHeight float64 `yaml:"paddle_height"`
	PaddleOffset float64 `yaml:"paddle_offset"` // Distance from the arena bottom to the paddle top
	PaddleNudge  float64 `yaml:"paddle_nudge"`  // Keyboard paddle movement per frame
}

// PaddleY returns the top of the paddle.
func (a BreakoutArena) PaddleY() float64 {
	return a.Height - a.PaddleOffset
}

// BreakoutDifficulty holds the per-difficulty tuning for Breakout.
type BreakoutDifficulty struct {
	BallSpeed      float64 `yaml:"ball_speed"`      // Units per frame at launch
	SpeedIncrement float64 `yaml:"speed_increment"` // Added to the speed every SpeedupEvery bricks
	Lives          int     `yaml:"lives"`
	PaddleWidth    int     `yaml:"paddle_width"`
	Layout         [][]int `yaml:"layout"` // Rows of hit counts, 0 = empty
}

// TotalBricks counts the non-empty cells of the layout.
func (d BreakoutDifficulty) TotalBricks() int {
	n := 0
	for _, row := range d.Layout {
		for _, hits := range row {
			if hits > 0 {
				n++
			}
		}
	}
	return n
}

// BreakoutCatalog is the full Breakout configuration file.
type BreakoutCatalog struct {
	Arena        BreakoutArena                 `yaml:"arena"`
	PointsPerHit int                           `yaml:"points_per_hit"`
	SpeedupEvery int                           `yaml:"speedup_every"`
	Difficulties map[string]BreakoutDifficulty `yaml:"difficulties"`
}

// SnakeDifficulty holds the per-difficulty tuning for Snake.
type SnakeDifficulty struct {
	SpeedMS       int         `yaml:"speed_ms"` // Base tick interval
	GridWidth     int         `yaml:"grid_width"`
	GridHeight    int         `yaml:"grid_height"`
	InitialLength int         `yaml:"initial_length"`
	FoodPoints    int         `yaml:"food_points"`
	Obstacles     []core.Cell `yaml:"obstacles"`
}

// Speed returns the base tick interval.
func (d SnakeDifficulty) Speed() time.Duration {
	return time.Duration(d.SpeedMS) * time.Millisecond
}

// SnakePowerUps defines power-up spawning and effects.
type SnakePowerUps struct {
	Chance         float64 `yaml:"chance"`      // Probability of a spawn after eating
	LifetimeMS     int     `yaml:"lifetime_ms"` // How long an unpicked power-up stays
	BonusPoints    int     `yaml:"bonus_points"`
	SlowMS         int     `yaml:"slow_ms"`
	SlowFactor     int     `yaml:"slow_factor"` // Interval multiplier while slowed
	ShrinkSegments int     `yaml:"shrink_segments"`
}

// Lifetime returns how long an unpicked power-up stays on the grid.
func (p SnakePowerUps) Lifetime() time.Duration {
	return time.Duration(p.LifetimeMS) * time.Millisecond
}

// SlowDuration returns how long the slow effect lasts.
func (p SnakePowerUps) SlowDuration() time.Duration {
	return time.Duration(p.SlowMS) * time.Millisecond
}

// SnakeCatalog is the full Snake configuration file.
type SnakeCatalog struct {
	PowerUps     SnakePowerUps              `yaml:"power_ups"`
	Difficulties map[string]SnakeDifficulty `yaml:"difficulties"`
}
