// Package sleepd subscribes to the OS "prepare-for-sleep" broadcast and
// queries the login manager's inhibit-lock list (spec.md §4.6/§4.7), using
// github.com/godbus/dbus/v5 against org.freedesktop.login1, grounded on the
// retrieval pack's PrepareForSleep subscription pattern.
package sleepd

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

const (
	loginManagerInterface = "org.freedesktop.login1.Manager"
	loginManagerBusName   = "org.freedesktop.login1"
	loginManagerPath      = dbus.ObjectPath("/org/freedesktop/login1")
	prepareForSleepMember = "PrepareForSleep"

	signalBufferSize = 8
	reconnectDelay   = 5 * time.Second
)

// Hooks are invoked on the goroutine running Listener.Run; the listener itself
// performs no synchronization, so callers that need tick/signal
// serialization (spec.md §5) must provide hooks that hand off onto their
// own serialized loop rather than acting directly.
type Hooks struct {
	BeforeSleep func(ctx context.Context, now time.Time)
	OnResume    func()
}

// Listener owns a system bus subscription for the daemon's lifetime
// (spec.md §3 Lifecycle: "the sleep-lifecycle listener owns a subscription
// handle whose lifetime equals the daemon's").
type Listener struct {
	hooks Hooks
	log   *logrus.Entry
}

// New constructs a Listener. It does not connect until Run is called.
func New(hooks Hooks, log *logrus.Entry) *Listener {
	return &Listener{hooks: hooks, log: log}
}

// Run connects to the system bus and dispatches PrepareForSleep signals
// until ctx is cancelled, reconnecting on transient bus failures. Failure
// to subscribe at all is logged and treated as "wake ups will not work"
// rather than a fatal daemon error (spec.md §4.6 does not make the sleep
// signal a hard startup dependency).
func (l *Listener) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, sigCh, ok := l.subscribe(ctx)
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
				continue
			}
		}

		l.dispatch(ctx, sigCh)

		conn.RemoveSignal(sigCh)
		if err := conn.Close(); err != nil {
			l.log.WithError(err).Warn("failed to close system bus connection")
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (l *Listener) subscribe(ctx context.Context) (*dbus.Conn, chan *dbus.Signal, bool) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		l.log.WithError(err).Warn("failed to connect to system bus, wake ups will not work until reconnect")
		return nil, nil, false
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(loginManagerInterface),
		dbus.WithMatchMember(prepareForSleepMember),
	); err != nil {
		l.log.WithError(err).Warn("failed to subscribe to PrepareForSleep signal")
		_ = conn.Close()
		return nil, nil, false
	}

	sigCh := make(chan *dbus.Signal, signalBufferSize)
	conn.Signal(sigCh)
	l.log.Debug("subscribed to PrepareForSleep signal")
	return conn, sigCh, true
}

func (l *Listener) dispatch(ctx context.Context, sigCh chan *dbus.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}
			l.handle(ctx, sig)
		}
	}
}

func (l *Listener) handle(ctx context.Context, sig *dbus.Signal) {
	if sig.Name != loginManagerInterface+"."+prepareForSleepMember {
		return
	}
	if len(sig.Body) != 1 {
		return
	}
	goingToSleep, ok := sig.Body[0].(bool)
	if !ok {
		return
	}
	l.log.WithField("going_to_sleep", goingToSleep).Info("PrepareForSleep signal received")
	if goingToSleep {
		if l.hooks.BeforeSleep != nil {
			l.hooks.BeforeSleep(ctx, time.Now().UTC())
		}
	} else if l.hooks.OnResume != nil {
		l.hooks.OnResume()
	}
}
