// Package scheduler drives the decision engine at a fixed interval and
// integrates the OS sleep-lifecycle signal, implementing spec.md §4.6.
//
// The scheduler is single-threaded and cooperative: exactly one dispatch
// goroutine ever calls into the engine. The periodic ticker and the
// sleep-lifecycle listener both run on their own goroutines but only ever
// enqueue work onto the dispatch goroutine's channel, so a tick and a
// lifecycle callback never overlap (spec.md §5).
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cbluth/autosuspend/internal/clock"
	"github.com/cbluth/autosuspend/internal/engine"
	"github.com/cbluth/autosuspend/internal/sleepd"
)

// Config controls the scheduler's cadence and lifetime.
type Config struct {
	Interval time.Duration
	// MaxIterations bounds the number of ticks for test-driven finite runs
	// (spec.md §4.6). Zero means unlimited.
	MaxIterations int
}

// Scheduler owns the process's main event source.
type Scheduler struct {
	cfg      Config
	engine   *engine.Engine
	clock    clock.Clock
	listener *sleepd.Listener
	log      *logrus.Entry

	dispatch chan func(ctx context.Context)
}

// New builds a Scheduler together with its sleep-lifecycle listener, whose
// hooks enqueue the engine callbacks onto the dispatch channel.
func New(cfg Config, eng *engine.Engine, clk clock.Clock, log *logrus.Entry) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		engine:   eng,
		clock:    clk,
		log:      log,
		dispatch: make(chan func(ctx context.Context)),
	}
	s.listener = sleepd.New(sleepd.Hooks{
		BeforeSleep: func(ctx context.Context, now time.Time) { s.enqueue(ctx, func(c context.Context) { eng.BeforeSleep(c, now) }) },
		OnResume:    func() { s.enqueue(context.Background(), func(context.Context) { eng.OnResume() }) },
	}, log.WithField("component", "sleepd"))
	return s
}

func (s *Scheduler) enqueue(ctx context.Context, fn func(context.Context)) {
	select {
	case s.dispatch <- fn:
	case <-ctx.Done():
	}
}

// Run blocks, ticking the engine every Interval (with an immediate first
// tick, per spec.md §4.6) and dispatching sleep-lifecycle callbacks, until
// ctx is cancelled or MaxIterations ticks have run.
func (s *Scheduler) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.listener.Run(ctx)
	}()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	iterations := 0
	runTick := func() {
		iterations++
		s.engine.Tick(ctx, s.clock.Now())
		if s.cfg.MaxIterations > 0 && iterations >= s.cfg.MaxIterations {
			s.log.Info("max iterations reached, stopping main loop")
			cancel()
		}
	}

	// First iteration runs immediately, matching the Python daemon's
	// GLib.idle_add(timer_callback_once) behavior.
	runTick()

	s.log.Info("starting main loop")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("main loop stopped")
			wg.Wait()
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			runTick()
		case fn := <-s.dispatch:
			fn(ctx)
		}
	}
}
