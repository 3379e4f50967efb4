// Package cronwakeup implements a wakeup probe that computes the next
// occurrence of a cron expression via github.com/robfig/cron/v3, the
// Go-native analogue of the original's iCalendar-based wakeup check:
// the retrieval pack has no iCal/RRULE library, but "run again on a
// recurring schedule" is the operation that check exists to provide.
package cronwakeup

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "cron"

func init() {
	probe.RegisterWakeup(className, newWakeup, probe.WithCommonParams(
		probe.Param{
			Name:        "schedule",
			Type:        probe.TypeString,
			Description: "standard five-field cron expression",
			Required:    true,
		},
	))
}

// Probe reports the next occurrence of Schedule after the evaluation time.
type Probe struct {
	name     string
	schedule cron.Schedule
}

func newWakeup(name string, opts probe.Options) (probe.Wakeup, error) {
	raw, err := opts.Required("schedule")
	if err != nil {
		return nil, err
	}
	schedule, err := cron.ParseStandard(raw)
	if err != nil {
		return nil, probe.NewConfigurationError("option %q: invalid cron expression %q: %v", "schedule", raw, err)
	}
	return &Probe{name: name, schedule: schedule}, nil
}

func (p *Probe) Name() string { return p.name }

// NextWakeup returns the schedule's next occurrence after now. It returns
// the zero Time ("no opinion") only when the expression has no occurrence
// within the next five years, e.g. "0 0 30 2 *".
func (p *Probe) NextWakeup(ctx context.Context, now time.Time) (time.Time, error) {
	return p.schedule.Next(now), nil
}
