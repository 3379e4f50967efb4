package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReal_NowIsUTC(t *testing.T) {
	got := Real{}.Now()
	assert.Equal(t, time.UTC, got.Location())
}

func TestFake_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	assert.Equal(t, start, f.Now())

	next := f.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), next)
	assert.Equal(t, next, f.Now())

	explicit := start.Add(24 * time.Hour)
	f.Set(explicit)
	assert.Equal(t, explicit, f.Now())
}
