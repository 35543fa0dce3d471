package config

import (
	_ "embed"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultBreakoutCatalog returns the built-in Breakout configuration.
func DefaultBreakoutCatalog() BreakoutCatalog {
	return BreakoutCatalog{
		Arena: BreakoutArena{
			Width:        400,
			Height:       600,
			BallRadius:   6,
			BrickTop:     50,
			BrickHeight:  18,
			BrickGap:     4,
			PaddleHeight: 14,
			PaddleOffset: 40,
			PaddleNudge:  7,
		},
		PointsPerHit: 10,
		SpeedupEvery: 10,
		Difficulties: map[string]BreakoutDifficulty{
			DifficultyEasy: {
				BallSpeed:      4,
				SpeedIncrement: 0.3,
				Lives:          3,
				PaddleWidth:    80,
				Layout: [][]int{
					{0, 1, 1, 1, 1, 1, 1, 0},
					{1, 1, 1, 1, 1, 1, 1, 1},
					{1, 1, 1, 1, 1, 1, 1, 1},
					{0, 1, 1, 1, 1, 1, 1, 0},
				},
			},
			DifficultyMedium: {
				BallSpeed:      5,
				SpeedIncrement: 0.35,
				Lives:          3,
				PaddleWidth:    70,
				Layout: [][]int{
					{0, 2, 1, 1, 1, 1, 2, 0},
					{1, 1, 2, 1, 1, 2, 1, 1},
					{1, 1, 1, 1, 1, 1, 1, 1},
					{2, 1, 1, 2, 2, 1, 1, 2},
					{0, 1, 1, 1, 1, 1, 1, 0},
					{0, 0, 1, 1, 1, 1, 0, 0},
				},
			},
			DifficultyHard: {
				BallSpeed:      6,
				SpeedIncrement: 0.4,
				Lives:          3,
				PaddleWidth:    60,
				Layout: [][]int{
					{3, 2, 1, 1, 1, 1, 2, 3},
					{2, 2, 2, 1, 1, 2, 2, 2},
					{1, 2, 3, 2, 2, 3, 2, 1},
					{1, 1, 2, 1, 1, 2, 1, 1},
					{2, 1, 1, 1, 1, 1, 1, 2},
					{1, 1, 1, 2, 2, 1, 1, 1},
					{0, 1, 1, 1, 1, 1, 1, 0},
				},
			},
		},
	}
}

// DefaultSnakeCatalog returns the built-in Snake configuration.
func DefaultSnakeCatalog() SnakeCatalog {
	return SnakeCatalog{
		PowerUps: SnakePowerUps{
			Chance:         0.3,
			LifetimeMS:     5000,
			BonusPoints:    50,
			SlowMS:         5000,
			SlowFactor:     2,
			ShrinkSegments: 2,
		},
		Difficulties: map[string]SnakeDifficulty{
			DifficultyEasy: {
				SpeedMS:       150,
				GridWidth:     15,
				GridHeight:    20,
				InitialLength: 3,
				FoodPoints:    10,
			},
			DifficultyMedium: {
				SpeedMS:       100,
				GridWidth:     15,
				GridHeight:    20,
				InitialLength: 3,
				FoodPoints:    15,
				Obstacles: []core.Cell{
					{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 10, Y: 5}, {X: 11, Y: 5},
					{X: 3, Y: 14}, {X: 4, Y: 14}, {X: 10, Y: 14}, {X: 11, Y: 14},
				},
			},
			DifficultyHard: {
				SpeedMS:       70,
				GridWidth:     15,
				GridHeight:    20,
				InitialLength: 4,
				FoodPoints:    20,
				Obstacles: []core.Cell{
					{X: 3, Y: 4}, {X: 4, Y: 4}, {X: 5, Y: 4},
					{X: 9, Y: 4}, {X: 10, Y: 4}, {X: 11, Y: 4},
					{X: 7, Y: 9}, {X: 7, Y: 10},
					{X: 3, Y: 15}, {X: 4, Y: 15}, {X: 5, Y: 15},
					{X: 9, Y: 15}, {X: 10, Y: 15}, {X: 11, Y: 15},
				},
			},
		},
	}
}
