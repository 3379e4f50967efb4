package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCommonParams_PrependsEnabledAndClass(t *testing.T) {
	params := WithCommonParams(Param{Name: "threshold", Type: TypeNumber})
	require.Len(t, params, 3)
	assert.Equal(t, "enabled", params[0].Name)
	assert.Equal(t, "class", params[1].Name)
	assert.Equal(t, "threshold", params[2].Name)
}

func TestMinMax(t *testing.T) {
	min := Min(0)
	max := Max(100)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 0.0, *min)
	assert.Equal(t, 100.0, *max)
}
