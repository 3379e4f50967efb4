// Package procname implements an activity probe reporting "active" when any
// running process's name contains a configured substring, using
// github.com/shirou/gopsutil/v3/process. Supplements the process-table
// checks original_source/src/autosuspend/checks/linux.py performs, scoped
// down to the "process list" shorthand the distilled spec leaves it as.
package procname

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "process"

func init() {
	probe.RegisterActivity(className, newActivity, probe.WithCommonParams(
		probe.Param{
			Name:        "name",
			Type:        probe.TypeString,
			Description: "substring matched (case-sensitive) against each running process's name",
			Required:    true,
		},
	))
}

// Probe reports active if any running process's name contains Name.
type Probe struct {
	name      string
	matchName string
	processes func() ([]*process.Process, error)
}

func newActivity(name string, opts probe.Options) (probe.Activity, error) {
	matchName, err := opts.Required("name")
	if err != nil {
		return nil, err
	}
	return &Probe{name: name, matchName: matchName, processes: process.Processes}, nil
}

func (p *Probe) Name() string { return p.name }

// Evaluate lists running processes and checks each name for a substring
// match. A process that exits mid-enumeration is skipped rather than
// failing the whole evaluation, since process tables are inherently racy.
func (p *Probe) Evaluate(ctx context.Context, now time.Time) (string, error) {
	procs, err := p.processes()
	if err != nil {
		return "", probe.NewTemporaryError(p.name, fmt.Errorf("list processes: %w", err))
	}
	for _, proc := range procs {
		procName, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(procName, p.matchName) {
			return fmt.Sprintf("process %q (pid %d) matches %q", procName, proc.Pid, p.matchName), nil
		}
	}
	return "", nil
}
