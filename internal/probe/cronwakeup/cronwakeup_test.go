package cronwakeup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbluth/autosuspend/internal/probe"
)

func TestNewWakeup_RequiresSchedule(t *testing.T) {
	_, err := newWakeup("cron", probe.Options{})
	assert.Error(t, err)
}

func TestNewWakeup_InvalidScheduleFails(t *testing.T) {
	_, err := newWakeup("cron", probe.Options{"schedule": "not a cron expression"})
	assert.Error(t, err)
	assert.IsType(t, &probe.ConfigurationError{}, err)
}

func TestNextWakeup_DailyAtSix(t *testing.T) {
	p, err := newWakeup("cron", probe.Options{"schedule": "0 6 * * *"})
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	next, err := p.NextWakeup(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 2, 6, 0, 0, 0, time.UTC), next)
}

func TestNextWakeup_AlwaysInFuture(t *testing.T) {
	p, err := newWakeup("cron", probe.Options{"schedule": "* * * * *"})
	require.NoError(t, err)

	now := time.Now()
	next, err := p.NextWakeup(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, next.After(now))
}
