// Package actions wires the three command templates the engine drives
// (suspend, schedule-wakeup, notify-before-suspend) to the runner package,
// implementing spec.md §4.5.
package actions

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cbluth/autosuspend/internal/runner"
)

// Templates holds the shell command templates configured under [general]
// (spec.md §6).
type Templates struct {
	SuspendCmd        string
	WakeupCmd         string
	NotifyCmdWakeup   string
	NotifyCmdNoWakeup string
}

// Actions executes the templates against a concrete wake-up time.
type Actions struct {
	tmpl Templates
	log  *logrus.Entry
}

// New builds an Actions executor.
func New(tmpl Templates, log *logrus.Entry) *Actions {
	return &Actions{tmpl: tmpl, log: log}
}

// NotifyAndSuspend runs the configured pre-suspend notification (picking
// the wakeup or no-wakeup template depending on whether wakeupAt is set),
// strictly before the suspend command, matching spec.md §4.5's ordering
// guarantee.
func (a *Actions) NotifyAndSuspend(wakeupAt time.Time) {
	a.notify(wakeupAt)
	command := runner.Template(a.tmpl.SuspendCmd, wakeupAt)
	runner.RunLogged(a.log, "suspend", command)
}

func (a *Actions) notify(wakeupAt time.Time) {
	switch {
	case !wakeupAt.IsZero() && a.tmpl.NotifyCmdWakeup != "":
		command := runner.Template(a.tmpl.NotifyCmdWakeup, wakeupAt)
		runner.RunLogged(a.log, "notify", command)
	case wakeupAt.IsZero() && a.tmpl.NotifyCmdNoWakeup != "":
		runner.RunLogged(a.log, "notify", a.tmpl.NotifyCmdNoWakeup)
	default:
		a.log.Debug("no suitable notification command configured")
	}
}

// ScheduleWakeup runs the wake-up scheduling command. Exit code 127
// (command not found) is promoted to an error-level log: spec.md §4.5/§7
// requires misconfiguration here to be loud, since a silently-broken
// wakeup command means the host never wakes up again.
func (a *Actions) ScheduleWakeup(at time.Time) {
	command := runner.Template(a.tmpl.WakeupCmd, at)
	code := runner.RunLogged(a.log, "wakeup scheduling", command)
	if code == runner.ExitCodeNotFound {
		a.log.WithField("command", command).Error(
			"wakeup scheduling command not found (exit 127): treating as a permanent configuration failure")
	}
}
