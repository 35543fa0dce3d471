// Package results defines where finished sessions are reported and how they
// are rated. Simulations only produce core.Event values; everything about
// stars, best scores and persistence lives here and in storage.
package results

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Game identifiers rated by Stars.
const (
	GameBreakout = "breakout"
	GameSnake    = "snake"
)

// Record is one finished session.
type Record struct {
	GameID     string
	Difficulty string
	Event      core.Event
	At         time.Time
}

// Sink receives finished sessions.
type Sink interface {
	Report(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec Record) error

// Report calls f.
func (f SinkFunc) Report(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

// Discard is a Sink that drops every record.
var Discard Sink = SinkFunc(func(context.Context, Record) error { return nil })

// Snake score thresholds for one, two and three stars.
var snakeStars = [...]int{100, 250, 500}

// Stars rates a session from zero to three.
//
// Breakout: a loss is 0; a win is 3 with three or more lives left, 2 with
// two, 1 otherwise. Snake: 1, 2 or 3 stars at 100, 250 and 500 points.
func Stars(rec Record) int {
	switch rec.GameID {
	case GameBreakout:
		if !rec.Event.Won() {
			return 0
		}
		switch lives := rec.Event.Stats.Lives; {
		case lives >= 3:
			return 3
		case lives >= 2:
			return 2
		default:
			return 1
		}
	case GameSnake:
		stars := 0
		for _, threshold := range snakeStars {
			if rec.Event.Score >= threshold {
				stars++
			}
		}
		return stars
	default:
		return 0
	}
}

// Best is the best result kept per game and difficulty.
type Best struct {
	Score int
	Stars int
}

// KeepBetter returns the best to keep and whether it changed. A candidate
// replaces the existing best only with a strictly higher score.
func KeepBetter(existing *Best, candidate Best) (Best, bool) {
	if existing == nil || candidate.Score > existing.Score {
		return candidate, true
	}
	return *existing, false
}

// BestOf rates a record as a Best.
func BestOf(rec Record) Best {
	return Best{Score: rec.Event.Score, Stars: Stars(rec)}
}

// Memory keeps records and best results in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records []Record
	best    map[string]Best
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{best: make(map[string]Best)}
}

func bestKey(gameID, difficulty string) string {
	return gameID + "/" + difficulty
}

// Report stores the record and updates the best result.
func (m *Memory) Report(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)
	key := bestKey(rec.GameID, rec.Difficulty)
	var existing *Best
	if b, ok := m.best[key]; ok {
		existing = &b
	}
	if b, changed := KeepBetter(existing, BestOf(rec)); changed {
		m.best[key] = b
	}
	return nil
}

// Records returns a copy of every record reported so far.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Best returns the best result for a game and difficulty.
func (m *Memory) Best(gameID, difficulty string) (Best, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.best[bestKey(gameID, difficulty)]
	return b, ok
}

// Multi fans a record out to every sink. All sinks are tried; their errors
// are joined.
type Multi []Sink

// Report delivers rec to each sink in order.
func (m Multi) Report(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Report(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Once forwards only the first record per session. The host creates one per
// session so a duplicate delivery of the terminal event is absorbed.
type Once struct {
	once sync.Once
	sink Sink
}

// NewOnce wraps sink for a single session.
func NewOnce(sink Sink) *Once {
	return &Once{sink: sink}
}

// Report forwards the first call. Later calls are dropped and return nil.
func (o *Once) Report(ctx context.Context, rec Record) error {
	var err error
	o.once.Do(func() {
		err = o.sink.Report(ctx, rec)
	})
	return err
}
