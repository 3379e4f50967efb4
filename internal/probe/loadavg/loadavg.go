// Package loadavg implements an activity probe that compares the host's
// 1-minute load average against a configured threshold, using
// github.com/shirou/gopsutil/v3/load for the system call.
package loadavg

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/load"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "load"

func init() {
	probe.RegisterActivity(className, newActivity, probe.WithCommonParams(
		probe.Param{
			Name:        "threshold",
			Type:        probe.TypeNumber,
			Description: "1-minute load average above which the host is considered active",
			Default:     2.5,
			Minimum:     probe.Min(0),
		},
	))
}

// Probe reports active when the 1-minute load average exceeds Threshold.
type Probe struct {
	name      string
	threshold float64
	avg       func() (*load.AvgStat, error)
}

func newActivity(name string, opts probe.Options) (probe.Activity, error) {
	threshold, err := opts.Float("threshold", 2.5)
	if err != nil {
		return nil, err
	}
	return &Probe{name: name, threshold: threshold, avg: load.Avg}, nil
}

func (p *Probe) Name() string { return p.name }

// Evaluate reads the current load average via gopsutil. Failure to read
// procfs-backed stats (e.g. unsupported platform) is a PermanentError: it
// will not resolve itself on the next tick.
func (p *Probe) Evaluate(ctx context.Context, now time.Time) (string, error) {
	stat, err := p.avg()
	if err != nil {
		return "", probe.NewPermanentError(p.name, fmt.Errorf("read load average: %w", err))
	}
	if stat.Load1 > p.threshold {
		return fmt.Sprintf("load average %.2f exceeds threshold %.2f", stat.Load1, p.threshold), nil
	}
	return "", nil
}
