package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownDifficulty is returned when a difficulty name has no catalog entry.
	ErrUnknownDifficulty = errors.New("unknown difficulty")

	// ErrInvalidConfig is returned when a catalog fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Resolve returns the Breakout parameters for the named difficulty.
// The layout is copied, so callers may not mutate the catalog through it.
func (c BreakoutCatalog) Resolve(name string) (BreakoutDifficulty, error) {
	d, ok := c.Difficulties[name]
	if !ok {
		return BreakoutDifficulty{}, fmt.Errorf("config: breakout %q: %w", name, ErrUnknownDifficulty)
	}
	layout := make([][]int, len(d.Layout))
	for i, row := range d.Layout {
		layout[i] = slices.Clone(row)
	}
	d.Layout = layout
	return d, nil
}

// Resolve returns the Snake parameters for the named difficulty.
func (c SnakeCatalog) Resolve(name string) (SnakeDifficulty, error) {
	d, ok := c.Difficulties[name]
	if !ok {
		return SnakeDifficulty{}, fmt.Errorf("config: snake %q: %w", name, ErrUnknownDifficulty)
	}
	d.Obstacles = slices.Clone(d.Obstacles)
	return d, nil
}

// Validate checks that the catalog describes playable games.
func (c BreakoutCatalog) Validate() error {
	a := c.Arena
	if a.Width <= 0 || a.Height <= 0 {
		return invalid("breakout arena must have positive size, got %vx%v", a.Width, a.Height)
	}
	if a.BallRadius <= 0 || a.BrickHeight <= 0 || a.PaddleHeight <= 0 {
		return invalid("breakout ball, brick and paddle sizes must be positive")
	}
	if a.PaddleOffset <= 0 || a.PaddleOffset >= a.Height {
		return invalid("breakout paddle_offset %v outside arena", a.PaddleOffset)
	}
	if c.PointsPerHit < 0 {
		return invalid("breakout points_per_hit must not be negative")
	}
	if c.SpeedupEvery <= 0 {
		return invalid("breakout speedup_every must be positive")
	}
	if len(c.Difficulties) == 0 {
		return invalid("breakout has no difficulties")
	}

	for name, d := range c.Difficulties {
		if d.BallSpeed <= 0 {
			return invalid("breakout %s: ball_speed must be positive", name)
		}
		if d.SpeedIncrement < 0 {
			return invalid("breakout %s: speed_increment must not be negative", name)
		}
		if d.Lives <= 0 {
			return invalid("breakout %s: lives must be positive", name)
		}
		if d.PaddleWidth <= 0 || float64(d.PaddleWidth) > a.Width {
			return invalid("breakout %s: paddle_width %d does not fit arena", name, d.PaddleWidth)
		}
		if len(d.Layout) == 0 {
			return invalid("breakout %s: layout is empty", name)
		}
		cols := len(d.Layout[0])
		for i, row := range d.Layout {
			if len(row) == 0 || len(row) != cols {
				return invalid("breakout %s: layout row %d has %d columns, expected %d", name, i, len(row), cols)
			}
			for _, hits := range row {
				if hits < 0 || hits > 3 {
					return invalid("breakout %s: hit count %d outside 0-3", name, hits)
				}
			}
		}
		if d.TotalBricks() == 0 {
			return invalid("breakout %s: layout has no bricks", name)
		}
	}
	return nil
}

// Validate checks that the catalog describes playable games.
func (c SnakeCatalog) Validate() error {
	p := c.PowerUps
	if p.Chance < 0 || p.Chance > 1 {
		return invalid("snake power_ups.chance %v outside [0, 1]", p.Chance)
	}
	if p.LifetimeMS < 0 || p.SlowMS < 0 || p.BonusPoints < 0 || p.ShrinkSegments < 0 {
		return invalid("snake power-up values must not be negative")
	}
	if p.SlowFactor < 1 {
		return invalid("snake power_ups.slow_factor must be at least 1")
	}
	if len(c.Difficulties) == 0 {
		return invalid("snake has no difficulties")
	}

	for name, d := range c.Difficulties {
		if d.SpeedMS <= 0 {
			return invalid("snake %s: speed_ms must be positive", name)
		}
		if d.GridWidth <= 0 || d.GridHeight <= 0 {
			return invalid("snake %s: grid must have positive size", name)
		}
		if d.InitialLength <= 0 || d.InitialLength > d.GridWidth/2+1 {
			return invalid("snake %s: initial_length %d does not fit grid", name, d.InitialLength)
		}
		if d.FoodPoints < 0 {
			return invalid("snake %s: food_points must not be negative", name)
		}
		for _, o := range d.Obstacles {
			if !o.InBounds(d.GridWidth, d.GridHeight) {
				return invalid("snake %s: obstacle (%d,%d) outside grid", name, o.X, o.Y)
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
