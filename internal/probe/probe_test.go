package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporaryError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewTemporaryError("myprobe", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "myprobe")
	assert.Contains(t, err.Error(), "temporary")
}

func TestPermanentError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewPermanentError("myprobe", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "permanent")
}

func TestConfigurationError_Message(t *testing.T) {
	err := NewConfigurationError("missing %q", "key")
	assert.Equal(t, `missing "key"`, err.Error())
}
