package stub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbluth/autosuspend/internal/probe"
)

func TestNewWakeup_RequiresUnitAndValue(t *testing.T) {
	_, err := newWakeup("periodic", probe.Options{})
	assert.Error(t, err)

	_, err = newWakeup("periodic", probe.Options{"unit": "hours"})
	assert.Error(t, err)
}

func TestNewWakeup_UnknownUnitFails(t *testing.T) {
	_, err := newWakeup("periodic", probe.Options{"unit": "fortnights", "value": "1"})
	assert.Error(t, err)
	assert.IsType(t, &probe.ConfigurationError{}, err)
}

func TestNextWakeup_AddsDelta(t *testing.T) {
	p, err := newWakeup("periodic", probe.Options{"unit": "hours", "value": "6"})
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	next, err := p.NextWakeup(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(6*time.Hour), next)
}

func TestNextWakeup_Minutes(t *testing.T) {
	p, err := newWakeup("periodic", probe.Options{"unit": "minutes", "value": "90"})
	require.NoError(t, err)

	now := time.Now()
	next, err := p.NextWakeup(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(90*time.Minute), next)
}
