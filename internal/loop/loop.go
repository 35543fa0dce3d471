// Package loop drives a simulation without a terminal attached. It owns the
// tick cadence, so the simulations themselves never read the clock.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// ErrMaxTicks is returned when a session runs past Options.MaxTicks
// without producing a terminal event.
var ErrMaxTicks = errors.New("loop: tick limit reached")

// Driver is a simulation the loop can schedule.
type Driver interface {
	// Tick advances by dt and returns the terminal event once.
	Tick(dt time.Duration) *core.Event
	// Interval is the delay before the next Tick. It is re-read after every tick.
	Interval() time.Duration
}

// Options configures Run.
type Options struct {
	// Realtime waits Interval between ticks. Otherwise ticks run back to back
	// with the same dt values, which keeps seeded runs reproducible.
	Realtime bool
	// MaxTicks stops a session that never ends. Zero means no limit.
	MaxTicks uint64
	// BeforeTick runs before each tick, typically to enqueue commands.
	BeforeTick func(tick uint64)
	// OnTick runs after each tick with the event it produced, if any.
	OnTick func(tick uint64, ev *core.Event)
	Logger *log.Logger
}

// Run ticks d until it reports a terminal event, ctx is done, or the tick
// limit is hit. The timer is stopped before Run returns.
func Run(ctx context.Context, d Driver, opts Options) (*core.Event, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	interval := d.Interval()
	var timer *time.Timer
	if opts.Realtime {
		timer = time.NewTimer(interval)
		defer timer.Stop()
	}

	for tick := uint64(1); ; tick++ {
		if opts.MaxTicks > 0 && tick > opts.MaxTicks {
			logger.Warn("session did not finish", "ticks", opts.MaxTicks)
			return nil, ErrMaxTicks
		}

		if timer != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		if opts.BeforeTick != nil {
			opts.BeforeTick(tick)
		}
		ev := d.Tick(interval)
		if opts.OnTick != nil {
			opts.OnTick(tick, ev)
		}
		if ev != nil {
			logger.Debug("session finished", "ticks", tick, "outcome", ev.Kind, "score", ev.Score)
			return ev, nil
		}

		interval = d.Interval()
		if timer != nil {
			timer.Reset(interval)
		}
	}
}
