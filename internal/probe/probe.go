// Package probe defines the probe contract that activity and wakeup checks
// implement, plus the registry that instantiates them from configuration.
//
// An Activity probe answers "is anyone/anything still using this host?".
// A Wakeup probe answers "when, if ever, must the machine run next?".
// Both kinds share the same failure taxonomy (TemporaryError, PermanentError)
// and the same constraints: synchronous, bounded-time, no suspension of the
// calling goroutine, no mutation of engine state.
package probe

import (
	"context"
	"fmt"
	"time"
)

// TemporaryError signals a transient failure inside a probe (network
// glitch, momentary parse failure) that is expected to self-heal. Callers
// treat it as "abstain" for the current tick.
type TemporaryError struct {
	Probe string
	Err   error
}

func (e *TemporaryError) Error() string {
	return fmt.Sprintf("probe %s: temporary failure: %v", e.Probe, e.Err)
}

func (e *TemporaryError) Unwrap() error { return e.Err }

// NewTemporaryError wraps err as a TemporaryError attributed to the named probe.
func NewTemporaryError(name string, err error) error {
	return &TemporaryError{Probe: name, Err: err}
}

// PermanentError signals a structural problem (missing binary, unsupported
// auth scheme, misconfiguration) that the probe is expected to keep
// surfacing for the remainder of its lifetime. The engine logs it and
// continues running; it never aborts the daemon.
type PermanentError struct {
	Probe string
	Err   error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("probe %s: permanent failure: %v", e.Probe, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// NewPermanentError wraps err as a PermanentError attributed to the named probe.
func NewPermanentError(name string, err error) error {
	return &PermanentError{Probe: name, Err: err}
}

// ConfigurationError is raised at registry construction time: unknown class
// name, missing required option, malformed pattern. It is never raised
// during evaluation.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

// NewConfigurationError builds a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// DefaultTimeout is applied by network-facing probes unless a per-instance
// timeout option overrides it.
const DefaultTimeout = 5 * time.Second

// Activity is implemented by every activity probe. Evaluate must return
// within a bounded time (network-facing implementations enforce this via
// their own timeout) and must not mutate engine state.
type Activity interface {
	Name() string
	// Evaluate reports "" and no error when idle, a non-empty human-readable
	// reason when active, or an error (TemporaryError/PermanentError) when
	// the probe could not determine activity this tick.
	Evaluate(ctx context.Context, now time.Time) (reason string, err error)
}

// Wakeup is implemented by every wakeup probe.
type Wakeup interface {
	Name() string
	// NextWakeup reports the next instant the host must be running, or the
	// zero Time if this probe has no opinion this tick.
	NextWakeup(ctx context.Context, now time.Time) (time.Time, error)
}
