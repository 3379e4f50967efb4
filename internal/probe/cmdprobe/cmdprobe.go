// Package cmdprobe implements an activity probe that runs an external shell
// command and treats exit code 0 as "active", mirroring the original
// autosuspend.checks.command module and the teacher's probe-dispatch shape
// in pkg/probe/probe.go.
package cmdprobe

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/cbluth/autosuspend/internal/probe"
)

const className = "command"

func init() {
	probe.RegisterActivity(className, newActivity, probe.WithCommonParams(
		probe.Param{
			Name:        "command",
			Type:        probe.TypeString,
			Description: "shell command whose exit code 0 means active",
			Required:    true,
		},
	))
}

// Probe runs command through /bin/sh and reports "active" on exit code 0.
type Probe struct {
	name    string
	command string
}

func newActivity(name string, opts probe.Options) (probe.Activity, error) {
	command, err := opts.Required("command")
	if err != nil {
		return nil, err
	}
	return &Probe{name: name, command: command}, nil
}

func (p *Probe) Name() string { return p.name }

// exitCommandNotFound is the shell's conventional exit status for "command
// not found" (see http://tldp.org/LDP/abs/html/exitcodes.html); a 127 here
// means /bin/sh could not even locate the configured command, not that the
// command ran and reported idle.
const exitCommandNotFound = 127

// Evaluate runs the configured command. A zero exit status means active; a
// non-zero exit status means idle, except exit 127 ("command not found"),
// which is a PermanentError since the configured command does not exist;
// the shell itself failing to launch is a TemporaryError, since that is
// usually transient resource exhaustion rather than a permanent
// misconfiguration.
func (p *Probe) Evaluate(ctx context.Context, now time.Time) (string, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", p.command)
	err := cmd.Run()
	if err == nil {
		return fmt.Sprintf("command %q returned exit code 0", p.command), nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() == exitCommandNotFound {
			return "", probe.NewPermanentError(p.name, fmt.Errorf("command %q does not exist", p.command))
		}
		return "", nil
	}
	return "", probe.NewTemporaryError(p.name, fmt.Errorf("run command %q: %w", p.command, err))
}
