package probe

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type stubActivity struct {
	name   string
	reason string
	err    error
}

func (s stubActivity) Name() string { return s.name }
func (s stubActivity) Evaluate(ctx context.Context, now time.Time) (string, error) {
	return s.reason, s.err
}

type stubWakeup struct {
	name string
	at   time.Time
	err  error
}

func (s stubWakeup) Name() string { return s.name }
func (s stubWakeup) NextWakeup(ctx context.Context, now time.Time) (time.Time, error) {
	return s.at, s.err
}

func TestEvaluateActivities_ShortCircuits(t *testing.T) {
	probes := []Activity{
		stubActivity{name: "a", reason: "active"},
		stubActivity{name: "b", reason: "also active"},
	}
	active, results := EvaluateActivities(context.Background(), probes, false, time.Now(), discardLog())
	assert.True(t, active)
	assert.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Probe)
}

func TestEvaluateActivities_EvaluateAll(t *testing.T) {
	probes := []Activity{
		stubActivity{name: "a", reason: "active"},
		stubActivity{name: "b", reason: "also active"},
	}
	active, results := EvaluateActivities(context.Background(), probes, true, time.Now(), discardLog())
	assert.True(t, active)
	assert.Len(t, results, 2)
}

func TestEvaluateActivities_TemporaryErrorTreatedAsIdle(t *testing.T) {
	probes := []Activity{
		stubActivity{name: "a", err: NewTemporaryError("a", errors.New("boom"))},
	}
	active, results := EvaluateActivities(context.Background(), probes, false, time.Now(), discardLog())
	assert.False(t, active)
	assert.Empty(t, results)
}

func TestEvaluateActivities_PermanentErrorContinuesEvaluation(t *testing.T) {
	probes := []Activity{
		stubActivity{name: "a", err: NewPermanentError("a", errors.New("boom"))},
		stubActivity{name: "b", reason: "active"},
	}
	active, results := EvaluateActivities(context.Background(), probes, false, time.Now(), discardLog())
	assert.True(t, active)
	assert.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Probe)
}

func TestEvaluateWakeups_ReducesToEarliest(t *testing.T) {
	now := time.Now()
	probes := []Wakeup{
		stubWakeup{name: "later", at: now.Add(2 * time.Hour)},
		stubWakeup{name: "sooner", at: now.Add(time.Hour)},
	}
	got := EvaluateWakeups(context.Background(), probes, now, discardLog())
	assert.Equal(t, now.Add(time.Hour), got)
}

func TestEvaluateWakeups_DiscardsNonFuture(t *testing.T) {
	now := time.Now()
	probes := []Wakeup{stubWakeup{name: "past", at: now.Add(-time.Hour)}}
	got := EvaluateWakeups(context.Background(), probes, now, discardLog())
	assert.True(t, got.IsZero())
}

func TestEvaluateWakeups_IgnoresTemporaryError(t *testing.T) {
	now := time.Now()
	probes := []Wakeup{
		stubWakeup{name: "flaky", err: NewTemporaryError("flaky", errors.New("boom"))},
		stubWakeup{name: "ok", at: now.Add(time.Hour)},
	}
	got := EvaluateWakeups(context.Background(), probes, now, discardLog())
	assert.Equal(t, now.Add(time.Hour), got)
}

func TestEvaluateWakeups_NoOpinionIsZero(t *testing.T) {
	got := EvaluateWakeups(context.Background(), []Wakeup{stubWakeup{name: "none"}}, time.Now(), discardLog())
	assert.True(t, got.IsZero())
}
