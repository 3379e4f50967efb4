package sleepd

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestHandle_GoingToSleepInvokesBeforeSleep(t *testing.T) {
	var beforeSleepCalled, onResumeCalled bool
	l := New(Hooks{
		BeforeSleep: func(ctx context.Context, now time.Time) { beforeSleepCalled = true },
		OnResume:    func() { onResumeCalled = true },
	}, discardLog())

	l.handle(context.Background(), &dbus.Signal{
		Name: loginManagerInterface + "." + prepareForSleepMember,
		Body: []interface{}{true},
	})

	assert.True(t, beforeSleepCalled)
	assert.False(t, onResumeCalled)
}

func TestHandle_ResumeInvokesOnResume(t *testing.T) {
	var onResumeCalled bool
	l := New(Hooks{
		OnResume: func() { onResumeCalled = true },
	}, discardLog())

	l.handle(context.Background(), &dbus.Signal{
		Name: loginManagerInterface + "." + prepareForSleepMember,
		Body: []interface{}{false},
	})

	assert.True(t, onResumeCalled)
}

func TestHandle_IgnoresUnrelatedSignals(t *testing.T) {
	called := false
	l := New(Hooks{
		BeforeSleep: func(ctx context.Context, now time.Time) { called = true },
	}, discardLog())

	l.handle(context.Background(), &dbus.Signal{
		Name: "org.freedesktop.DBus.NameOwnerChanged",
		Body: []interface{}{"x"},
	})

	assert.False(t, called)
}

func TestHandle_IgnoresMalformedBody(t *testing.T) {
	called := false
	l := New(Hooks{
		BeforeSleep: func(ctx context.Context, now time.Time) { called = true },
	}, discardLog())

	l.handle(context.Background(), &dbus.Signal{
		Name: loginManagerInterface + "." + prepareForSleepMember,
		Body: []interface{}{"not-a-bool"},
	})

	assert.False(t, called)
}
