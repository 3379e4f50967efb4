package probe

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ActivityResult is the outcome of evaluating one activity probe.
type ActivityResult struct {
	Probe  string
	Reason string // non-empty iff the probe reported activity
}

// EvaluateActivities runs the given probes in order (spec.md §4.2). If
// evaluateAll is false, evaluation stops at the first probe that reports
// activity. TemporaryError is logged and treated as idle (the probe
// conservatively abstains). PermanentError is logged and also treated as
// idle for this tick, but evaluation of the remaining probes continues.
func EvaluateActivities(ctx context.Context, probes []Activity, evaluateAll bool, now time.Time, log *logrus.Entry) (active bool, results []ActivityResult) {
	for _, p := range probes {
		log.WithField("probe", p.Name()).Debug("evaluating activity probe")
		reason, err := p.Evaluate(ctx, now)
		if err != nil {
			logProbeError(log, p.Name(), err)
			continue
		}
		if reason != "" {
			log.WithFields(logrus.Fields{"probe": p.Name(), "reason": reason}).Info("activity probe matched")
			active = true
			results = append(results, ActivityResult{Probe: p.Name(), Reason: reason})
			if !evaluateAll {
				break
			}
		}
	}
	return active, results
}

func logProbeError(log *logrus.Entry, name string, err error) {
	switch err.(type) {
	case *TemporaryError:
		log.WithField("probe", name).WithError(err).Warn("activity probe failed temporarily, treating as idle")
	case *PermanentError:
		log.WithField("probe", name).WithError(err).Warn("activity probe failed permanently, treating as idle for this tick")
	default:
		log.WithField("probe", name).WithError(err).Warn("activity probe returned an unexpected error, treating as idle")
	}
}

// EvaluateWakeups runs every wakeup probe and reduces their results to the
// single earliest future instant (spec.md §4.3). Results at or before now
// are discarded with a warning. TemporaryError is ignored (that source
// simply has no opinion this tick). The zero Time is returned when no
// probe produces a usable result.
func EvaluateWakeups(ctx context.Context, probes []Wakeup, now time.Time, log *logrus.Entry) time.Time {
	var earliest time.Time
	for _, p := range probes {
		log.WithField("probe", p.Name()).Debug("evaluating wakeup probe")
		at, err := p.NextWakeup(ctx, now)
		if err != nil {
			if _, ok := err.(*TemporaryError); ok {
				log.WithField("probe", p.Name()).WithError(err).Warn("wakeup probe failed temporarily, ignoring")
			} else {
				log.WithField("probe", p.Name()).WithError(err).Warn("wakeup probe failed permanently, ignoring")
			}
			continue
		}
		if at.IsZero() {
			continue
		}
		if !at.After(now) {
			log.WithFields(logrus.Fields{"probe": p.Name(), "at": at}).Warn("wakeup probe returned a non-future instant, ignoring")
			continue
		}
		if earliest.IsZero() || at.Before(earliest) {
			earliest = at
		}
	}
	return earliest
}
