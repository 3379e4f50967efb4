// Package runner executes the shell command templates the daemon uses to
// suspend the host, schedule a wake-up, and notify before suspending
// (spec.md §4.5). It never blocks the engine on the child's output and
// never lets a failing command escape as a panic.
package runner

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ExitCodeNotFound is the shell's "command not found" exit status. A
// wake-up scheduling command exiting with this code is logged at error
// level by the caller (actions.ScheduleWakeup); it is not reported as a
// probe.PermanentError.
const ExitCodeNotFound = 127

// Template renders a command-line template by substituting the two named
// placeholders spec.md §4.5 defines: {timestamp} (floating point seconds
// since the epoch, UTC) and {iso} (ISO-8601 with offset).
func Template(tmpl string, at time.Time) string {
	r := strings.NewReplacer(
		"{timestamp}", strconv.FormatFloat(float64(at.UnixNano())/1e9, 'f', -1, 64),
		"{iso}", at.Format(time.RFC3339),
	)
	return r.Replace(tmpl)
}

// Run executes command through the host shell and returns its exit code.
// A non-zero exit is the caller's concern to log; Run itself never returns
// an error for a merely-nonzero exit, only for failure to start the shell
// at all (spec.md §4.5: "a non-zero exit is logged at warning level and
// discarded").
func Run(log *logrus.Entry, command string) (exitCode int, err error) {
	log.WithField("command", command).Info("executing command")
	cmd := exec.Command("/bin/sh", "-c", command)
	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, runErr
}

// RunLogged runs command and logs a warning on non-zero exit, matching the
// "logged at warning level and discarded" policy for ordinary commands
// (suspend, notify). It returns the exit code so wake-up-related callers
// can inspect it for ExitCodeNotFound.
func RunLogged(log *logrus.Entry, label, command string) int {
	code, err := Run(log, command)
	if err != nil {
		log.WithField("command", command).WithError(err).Warnf("unable to execute %s command", label)
		return -1
	}
	if code != 0 {
		log.WithFields(logrus.Fields{"command": command, "exit_code": code}).Warnf("%s command exited non-zero", label)
	}
	return code
}
