// Package engine implements the decision engine: the stateful core that,
// given a current timestamp, consults probes and emits at most one of
// {do-nothing, schedule-wakeup-and-suspend} (spec.md §4.4).
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cbluth/autosuspend/internal/clock"
	"github.com/cbluth/autosuspend/internal/probe"
)

// Config is the engine's immutable configuration snapshot (spec.md §3).
type Config struct {
	IdleThreshold      time.Duration
	MinSleepDuration   time.Duration
	WakeupSafetyMargin time.Duration
	EvaluateAllProbes  bool
}

// InhibitChecker queries the OS session/login manager for outstanding sleep
// inhibit locks (spec.md §4.7). Failure to reach it is treated as "no
// lock" by the caller (fail-open), so this interface only ever needs to
// report what it could observe.
type InhibitChecker interface {
	HasInhibitLock(ctx context.Context) (bool, error)
}

// noInhibit is used when the daemon has no session-manager integration
// available; it always reports no lock.
type noInhibit struct{}

func (noInhibit) HasInhibitLock(context.Context) (bool, error) { return false, nil }

// SuspendFunc performs the actual suspend. wakeupAt is the zero Time when
// no wake-up has been scheduled. It is only ever called with a decision
// already committed (idle_since already reset).
type SuspendFunc func(wakeupAt time.Time)

// ScheduleWakeupFunc arranges the wake-up timer for a specific instant. It
// is invoked from BeforeSleep, not from Tick (spec.md §4.4 step 9 and
// §4.6), so an externally-triggered suspend still gets a wake-up.
type ScheduleWakeupFunc func(at time.Time)

// Engine is the sole owner of idle_since and last_scheduled_wakeup for its
// lifetime (spec.md §3 Lifecycle).
type Engine struct {
	cfg        Config
	activities []probe.Activity
	wakeups    []probe.Wakeup
	inhibit    InhibitChecker
	clock      clock.Clock
	suspend    SuspendFunc
	wakeupFn   ScheduleWakeupFunc
	log        *logrus.Entry

	mu                  sync.Mutex
	idleSince           time.Time
	lastScheduledWakeup time.Time
}

// New constructs an Engine. inhibit may be nil, in which case inhibit-lock
// consultation always reports "no lock".
func New(
	cfg Config,
	activities []probe.Activity,
	wakeups []probe.Wakeup,
	inhibit InhibitChecker,
	clk clock.Clock,
	suspend SuspendFunc,
	wakeupFn ScheduleWakeupFunc,
	log *logrus.Entry,
) *Engine {
	if inhibit == nil {
		inhibit = noInhibit{}
	}
	return &Engine{
		cfg:        cfg,
		activities: activities,
		wakeups:    wakeups,
		inhibit:    inhibit,
		clock:      clk,
		suspend:    suspend,
		wakeupFn:   wakeupFn,
		log:        log,
	}
}

// IdleSince returns the current idle-since marker, or the zero Time if the
// system is not considered idle.
func (e *Engine) IdleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idleSince
}

func (e *Engine) resetIdle(reason string) {
	e.log.Info(reason + ". Resetting idle state")
	e.idleSince = time.Time{}
}

func (e *Engine) setIdle(since time.Time) time.Time {
	if e.idleSince.IsZero() || since.Before(e.idleSince) {
		e.idleSince = since
	}
	return e.idleSince
}

// Tick runs exactly one pass of the per-tick state machine described in
// spec.md §4.4, steps 1-9.
func (e *Engine) Tick(ctx context.Context, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tickLog := e.log.WithField("tick", uuid.NewString())
	tickLog.Debug("starting tick")

	// Step 1-2: activity evaluation.
	active, results := probe.EvaluateActivities(ctx, e.activities, e.cfg.EvaluateAllProbes, now, tickLog)
	if active {
		reasons := make([]string, 0, len(results))
		for _, r := range results {
			reasons = append(reasons, r.Probe+": "+r.Reason)
		}
		tickLog.WithField("reasons", reasons).Info("system is active")
		e.resetIdle("system is active")
		return
	}

	// Step 3: monotone earliest-known-idle clamp.
	idleSince := e.setIdle(now)
	idleFor := now.Sub(idleSince)
	tickLog.WithFields(logrus.Fields{"idle_since": idleSince, "idle_for": idleFor}).Debug("system idle")

	// Step 4.
	if idleFor <= e.cfg.IdleThreshold {
		tickLog.WithField("idle_for", idleFor).Debug("idle threshold not reached yet")
		return
	}
	tickLog.Debug("idle long enough, checking inhibit locks")

	// Step 5.
	locked, err := e.inhibit.HasInhibitLock(ctx)
	if err != nil {
		tickLog.WithError(err).Warn("failed to query inhibit locks, proceeding with suspension")
	} else if locked {
		tickLog.Info("inhibit lock present, not suspending but keeping idle state")
		return
	}

	// Step 6.
	wakeupAt := probe.EvaluateWakeups(ctx, e.wakeups, now, tickLog)

	var adjustedWakeup time.Time
	if !wakeupAt.IsZero() {
		// Step 7: apply safety margin, then the minimum-sleep check.
		adjustedWakeup = wakeupAt.Add(-e.cfg.WakeupSafetyMargin)
		remaining := adjustedWakeup.Sub(now)
		if remaining < e.cfg.MinSleepDuration {
			tickLog.WithFields(logrus.Fields{
				"wakeup_at": adjustedWakeup,
				"remaining": remaining,
				"min_sleep": e.cfg.MinSleepDuration,
			}).Info("would wake up too soon, not suspending")
			return
		}
	}

	// Step 8-9: commit to suspend. The wake-up schedule itself is installed
	// by BeforeSleep, not here, so it fires regardless of who actually
	// triggers the suspend.
	tickLog.WithField("wakeup_at", adjustedWakeup).Info("idle long enough, suspending")
	e.resetIdle("going to suspend")
	e.suspend(adjustedWakeup)
}

// BeforeSleep implements the "preparing-to-sleep" lifecycle hook
// (spec.md §4.6): it always evaluates wake-ups and, if a future wake-up
// exists, invokes the schedule-wakeup command. This fires regardless of
// who initiated the suspend.
func (e *Engine) BeforeSleep(ctx context.Context, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	wakeupAt := probe.EvaluateWakeups(ctx, e.wakeups, now, e.log)
	if wakeupAt.IsZero() {
		e.log.Info("no wakeup scheduled before sleep")
		return
	}
	adjusted := wakeupAt.Add(-e.cfg.WakeupSafetyMargin)
	if !e.lastScheduledWakeup.IsZero() && !adjusted.After(e.lastScheduledWakeup) {
		e.log.WithField("wakeup_at", adjusted).Debug("wakeup already scheduled for this sleep event")
		return
	}
	e.log.WithField("wakeup_at", adjusted).Info("scheduling wakeup before sleep")
	e.lastScheduledWakeup = adjusted
	e.wakeupFn(adjusted)
}

// OnResume implements the "resumed" lifecycle hook (spec.md §4.6): it
// clears idle_since unconditionally.
func (e *Engine) OnResume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetIdle("resumed from suspension")
	e.lastScheduledWakeup = time.Time{}
}
