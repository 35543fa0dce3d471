package core

import "time"

// EventKind classifies how a simulation session ended.
type EventKind int

const (
	EventLoss EventKind = iota
	EventWin
)

// String returns "win" or "loss".
func (k EventKind) String() string {
	if k == EventWin {
		return "win"
	}
	return "loss"
}

// Stats carries the raw per-game numbers reported with a terminal event.
// Fields that do not apply to a game are left zero.
type Stats struct {
	Lives         int           // Breakout: lives remaining
	BricksCleared int           // Breakout
	TotalBricks   int           // Breakout
	Length        int           // Snake: final body length
	Elapsed       time.Duration // Snake: time since the first direction input
}

// Event is the terminal outcome of a simulation. A simulation emits at most one.
type Event struct {
	Kind  EventKind
	Score int
	Stats Stats
}

// Won reports whether the event is a win.
func (e Event) Won() bool {
	return e.Kind == EventWin
}

// Sound names an audio cue raised during a tick. Playing it is up to the host.
type Sound string

const (
	SoundNone       Sound = ""
	SoundLaunch     Sound = "launch"
	SoundWall       Sound = "wall"
	SoundPaddle     Sound = "paddle"
	SoundBrickHit   Sound = "brick_hit"
	SoundBrickBreak Sound = "brick_break"
	SoundLifeLost   Sound = "life_lost"
	SoundWin        Sound = "win"
	SoundGameOver   Sound = "game_over"
	SoundEat        Sound = "eat"
	SoundPowerUp    Sound = "power_up"
	SoundDie        Sound = "die"
)
