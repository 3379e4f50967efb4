package sleepd

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// inhibitor mirrors one entry of login1.Manager.ListInhibitors' struct
// array: (what, who, why, mode, UID, PID).
type inhibitor struct {
	What string
	Who  string
	Why  string
	Mode string
	UID  uint32
	PID  uint32
}

// InhibitChecker queries org.freedesktop.login1.Manager.ListInhibitors and
// reports whether any inhibitor currently blocks "sleep" (spec.md §4.7).
// It implements engine.InhibitChecker.
type InhibitChecker struct{}

// NewInhibitChecker builds an InhibitChecker. It connects to the system bus
// per call rather than holding a connection open, since inhibit-lock
// queries happen at most once per idle-eligible tick, not every tick.
func NewInhibitChecker() *InhibitChecker {
	return &InhibitChecker{}
}

// HasInhibitLock returns true if any inhibitor's "what" field mentions
// "sleep". Failure to reach the session manager is returned as an error;
// the engine treats that as fail-open per spec.md §4.7.
func (InhibitChecker) HasInhibitLock(ctx context.Context) (bool, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return false, fmt.Errorf("connect to system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(loginManagerBusName, loginManagerPath)
	call := obj.CallWithContext(ctx, loginManagerInterface+".ListInhibitors", 0)
	if call.Err != nil {
		return false, fmt.Errorf("list inhibitors: %w", call.Err)
	}

	var inhibitors []inhibitor
	if err := call.Store(&inhibitors); err != nil {
		return false, fmt.Errorf("decode inhibitors: %w", err)
	}

	for _, inh := range inhibitors {
		if containsToken(inh.What, "sleep") {
			return true, nil
		}
	}
	return false, nil
}

// containsToken reports whether colon-separated field f contains token,
// matching login1's "what" field format (e.g. "sleep:idle").
func containsToken(f, token string) bool {
	start := 0
	for i := 0; i <= len(f); i++ {
		if i == len(f) || f[i] == ':' {
			if f[start:i] == token {
				return true
			}
			start = i + 1
		}
	}
	return false
}
