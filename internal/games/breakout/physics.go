package breakout

import (
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Ball represents the ball state in arena units.
type Ball struct {
	Pos    core.Vec // Center
	Vel    core.Vec // Units per reference frame
	Radius float64
}

// Circle returns the ball as a collider.
func (b *Ball) Circle() core.Circle {
	return core.Circle{Center: b.Pos, R: b.Radius}
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Sqrt(b.Vel.LenSq())
}

// SetHeading points the ball along angle (radians, screen coordinates) at the given speed.
func (b *Ball) SetHeading(angle, speed float64) {
	b.Vel = core.Vec{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)}
}

// Move advances the ball by its velocity scaled by k frames.
func (b *Ball) Move(k float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(k))
}

// Paddle represents the player's paddle. X is the left edge.
type Paddle struct {
	X, Y float64
	W, H float64
}

// CenterX returns the paddle center.
func (p Paddle) CenterX() float64 {
	return p.X + p.W/2
}

// Rect returns the paddle bounds.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CollisionSide indicates which arena edge the ball touched.
type CollisionSide int

const (
	CollisionNone CollisionSide = iota
	CollisionLeft
	CollisionRight
	CollisionTop
	CollisionBottom
)

// CheckWallCollision bounces the ball off the left, right and top walls.
// Velocity is forced away from the wall and the ball is clamped back inside.
// A bottom touch is reported without changing the ball.
func CheckWallCollision(b *Ball, a config.BreakoutArena) CollisionSide {
	side := CollisionNone
	if b.Pos.X-b.Radius <= 0 {
		b.Pos.X = b.Radius
		b.Vel.X = math.Abs(b.Vel.X)
		side = CollisionLeft
	} else if b.Pos.X+b.Radius >= a.Width {
		b.Pos.X = a.Width - b.Radius
		b.Vel.X = -math.Abs(b.Vel.X)
		side = CollisionRight
	}

	if b.Pos.Y-b.Radius <= 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = math.Abs(b.Vel.Y)
		side = CollisionTop
	}

	if b.Pos.Y+b.Radius >= a.Height {
		return CollisionBottom
	}
	return side
}

// paddleSlack extends the paddle hit band below its bottom edge.
const paddleSlack = 4

// maxBounceAngle spreads paddle reflections across ±0.35π around straight up.
const maxBounceAngle = 0.7 * math.Pi

// CheckPaddleCollision reflects a descending ball off the paddle.
// The outgoing angle depends on where the ball hit; speed is preserved.
func CheckPaddleCollision(b *Ball, p *Paddle) bool {
	if b.Vel.Y <= 0 {
		return false
	}
	bottom := b.Pos.Y + b.Radius
	if bottom < p.Y || bottom > p.Y+p.H+paddleSlack {
		return false
	}
	if b.Pos.X < p.X-b.Radius || b.Pos.X > p.X+p.W+b.Radius {
		return false
	}

	hitPos := (b.Pos.X - p.X) / p.W
	b.SetHeading(-math.Pi/2+(hitPos-0.5)*maxBounceAngle, b.Speed())
	b.Pos.Y = p.Y - b.Radius
	return true
}

// ResolveBrickCollision bounces the ball off r if they touch and pushes it out.
// When the ball center has already entered the brick, it is moved back out the
// way it came, across the nearer of the faces it could have crossed.
func ResolveBrickCollision(b *Ball, r core.Rect) (core.Axis, bool) {
	if r.Contains(b.Pos) {
		return resolveEmbedded(b, r), true
	}

	p, ok := core.CirclePenetration(b.Circle(), r)
	if !ok {
		return core.AxisY, false
	}
	if p.Axis == core.AxisX {
		b.Vel.X = -b.Vel.X
	} else {
		b.Vel.Y = -b.Vel.Y
	}
	b.Pos = b.Pos.Add(p.Push())
	return p.Axis, true
}

func resolveEmbedded(b *Ball, r core.Rect) core.Axis {
	// Distance to clear the entry face by one radius, per axis
	exitX, exitY := math.Inf(1), math.Inf(1)
	switch {
	case b.Vel.X > 0:
		exitX = b.Pos.X - r.X + b.Radius
	case b.Vel.X < 0:
		exitX = r.Right() - b.Pos.X + b.Radius
	}
	switch {
	case b.Vel.Y > 0:
		exitY = b.Pos.Y - r.Y + b.Radius
	case b.Vel.Y < 0:
		exitY = r.Bottom() - b.Pos.Y + b.Radius
	}

	if exitX < exitY {
		b.Pos.X -= math.Copysign(exitX, b.Vel.X)
		b.Vel.X = -b.Vel.X
		return core.AxisX
	}
	if math.IsInf(exitY, 1) {
		// Zero velocity: eject upward
		b.Pos.Y = r.Y - b.Radius
		return core.AxisY
	}
	b.Pos.Y -= math.Copysign(exitY, b.Vel.Y)
	b.Vel.Y = -b.Vel.Y
	return core.AxisY
}
