// Package stub implements the "periodic" wakeup probe: it always reports a
// wake-up at a fixed delta from the evaluation time, useful for keeping a
// machine briefly awake on a regular cadence (e.g. to refresh another
// wakeup probe's own data). Grounded on
// original_source/src/autosuspend/checks/stub.py's Periodic wakeup check.
package stub

import (
	"context"
	"time"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "periodic"

var unitScale = map[string]time.Duration{
	"microseconds": time.Microsecond,
	"milliseconds": time.Millisecond,
	"seconds":      time.Second,
	"minutes":      time.Minute,
	"hours":        time.Hour,
	"days":         24 * time.Hour,
	"weeks":        7 * 24 * time.Hour,
}

func init() {
	probe.RegisterWakeup(className, newWakeup, probe.WithCommonParams(
		probe.Param{
			Name:        "unit",
			Type:        probe.TypeString,
			Description: "unit of the delta value",
			Required:    true,
			EnumValues:  []string{"microseconds", "milliseconds", "seconds", "minutes", "hours", "days", "weeks"},
		},
		probe.Param{
			Name:        "value",
			Type:        probe.TypeNumber,
			Description: "size of the delta, in the configured unit",
			Required:    true,
		},
	))
}

// Probe reports a wake-up at a fixed delta from the evaluation time.
type Probe struct {
	name  string
	delta time.Duration
}

func newWakeup(name string, opts probe.Options) (probe.Wakeup, error) {
	unit, err := opts.Required("unit")
	if err != nil {
		return nil, err
	}
	scale, ok := unitScale[unit]
	if !ok {
		return nil, probe.NewConfigurationError("option %q: unknown unit %q", "unit", unit)
	}
	value, err := opts.Float("value", 0)
	if err != nil {
		return nil, err
	}
	if _, set := opts["value"]; !set {
		return nil, probe.NewConfigurationError("missing required option %q", "value")
	}
	return &Probe{name: name, delta: time.Duration(value * float64(scale))}, nil
}

func (p *Probe) Name() string { return p.name }

func (p *Probe) NextWakeup(ctx context.Context, now time.Time) (time.Time, error) {
	return now.Add(p.delta), nil
}
