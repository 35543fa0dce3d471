package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/loop"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/results"
)

var (
	flagRuns       int
	flagParallel   int
	flagRealtime   bool
	flagMaxTicks   uint64
	flagAutoDiff   string
	flagAutoReport bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay <game>",
	Short: "Run headless sessions played by the built-in bot",
	Long: `Play one or more sessions without a terminal UI, steered by the game's
autopilot. Runs are seeded from --seed (or the clock) plus the run index,
so a fixed seed replays the same sessions.

Examples:
  arcade autoplay breakout
  arcade autoplay snake --difficulty hard --runs 50 --parallel 8
  arcade autoplay breakout --seed 7 --realtime`,
	Args: cobra.ExactArgs(1),
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagAutoDiff, "difficulty", "easy", "Difficulty: easy, medium, hard")
	autoplayCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of sessions to play")
	autoplayCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Sessions played at the same time")
	autoplayCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Wait the game interval between ticks")
	autoplayCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 1_000_000, "Abandon a session after this many ticks (0 = no limit)")
	autoplayCmd.Flags().BoolVar(&flagAutoReport, "record", true, "Record finished sessions in the scores database")
}

// autoplayOptions configures a batch of headless sessions.
type autoplayOptions struct {
	GameID   string
	Runtime  core.RuntimeConfig
	Runs     int
	Parallel int
	Realtime bool
	MaxTicks uint64
	Sink     results.Sink
	Logger   *log.Logger
}

// autoplaySummary aggregates the finished sessions of a batch.
type autoplaySummary struct {
	Runs      int
	Wins      int
	Abandoned int
	Best      int
	Total     int
}

// Average returns the mean score of the finished sessions.
func (s autoplaySummary) Average() float64 {
	finished := s.Runs - s.Abandoned
	if finished == 0 {
		return 0
	}
	return float64(s.Total) / float64(finished)
}

// gameDriver adapts a registered game to the headless loop.
type gameDriver struct {
	game registry.Game
}

func (d gameDriver) Tick(dt time.Duration) *core.Event {
	return d.game.Step(dt).Event
}

func (d gameDriver) Interval() time.Duration {
	return d.game.Interval()
}

// playSessions runs opts.Runs autopilot sessions, at most opts.Parallel at a
// time, reporting each finished one to opts.Sink. A session that hits the
// tick limit is counted as abandoned; any other failure stops the batch.
func playSessions(ctx context.Context, opts autoplayOptions) (autoplaySummary, error) {
	sink := opts.Sink
	if sink == nil {
		sink = results.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var (
		mu      sync.Mutex
		summary = autoplaySummary{Runs: opts.Runs}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallel, 1))

	for i := range opts.Runs {
		g.Go(func() error {
			game, err := registry.Create(opts.GameID)
			if err != nil {
				return err
			}
			pilot, ok := game.(registry.Autoplayer)
			if !ok {
				return fmt.Errorf("autoplay: %s has no autopilot", opts.GameID)
			}

			cfg := opts.Runtime
			cfg.Seed += int64(i)
			if err := game.Reset(cfg); err != nil {
				return fmt.Errorf("autoplay: run %d: %w", i+1, err)
			}

			ev, err := loop.Run(ctx, gameDriver{game: game}, loop.Options{
				Realtime:   opts.Realtime,
				MaxTicks:   opts.MaxTicks,
				BeforeTick: func(uint64) { pilot.Autoplay() },
				Logger:     logger.With("run", i+1, "seed", cfg.Seed),
			})
			if errors.Is(err, loop.ErrMaxTicks) {
				mu.Lock()
				summary.Abandoned++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}

			rec := results.Record{
				GameID:     game.ID(),
				Difficulty: cfg.Difficulty,
				Event:      *ev,
				At:         time.Now(),
			}
			if err := sink.Report(ctx, rec); err != nil {
				return fmt.Errorf("autoplay: run %d: %w", i+1, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if ev.Won() {
				summary.Wins++
			}
			summary.Total += ev.Score
			summary.Best = max(summary.Best, ev.Score)
			return nil
		})
	}

	err := g.Wait()
	return summary, err
}

func runAutoplay(_ *cobra.Command, args []string) {
	game := mustGame(args[0])
	logger := newLogger(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink := results.Sink(results.NewLogging(results.Discard, logger))
	var closeFn func()
	if flagAutoReport {
		s, store := openSink(logger)
		sink = s
		closeFn = func() { closeStore(store, logger) }
	}

	cfg := runtimeConfig(flagAutoDiff)
	if cfg.Seed == 0 {
		cfg.Seed = newSeed()
	}
	// Headless sessions never depend on the terminal size
	cfg.ScreenW, cfg.ScreenH = 120, 40

	start := time.Now()
	summary, err := playSessions(ctx, autoplayOptions{
		GameID:   game.ID(),
		Runtime:  cfg,
		Runs:     flagRuns,
		Parallel: flagParallel,
		Realtime: flagRealtime,
		MaxTicks: flagMaxTicks,
		Sink:     sink,
		Logger:   logger,
	})
	if closeFn != nil {
		closeFn()
	}

	fmt.Printf("%s on %s: %d runs in %s\n", game.Title(), cfg.Difficulty, summary.Runs, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  wins %d  abandoned %d  best %d  average %.1f\n",
		summary.Wins, summary.Abandoned, summary.Best, summary.Average())

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
