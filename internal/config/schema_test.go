package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchema_IncludesGeneralParameters(t *testing.T) {
	schema := BuildSchema()
	assert.Equal(t, GeneralParameters, schema.General)
	assert.NotNil(t, schema.ActivityChecks)
	assert.NotNil(t, schema.WakeupChecks)
}

func TestSchema_ToJSON(t *testing.T) {
	schema := BuildSchema()
	out, err := schema.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "general_parameters")
	assert.Contains(t, decoded, "activity_checks")
	assert.Contains(t, decoded, "wakeup_checks")
}
