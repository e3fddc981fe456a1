package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatJSON(t *testing.T) {
	t.Run("present marshals as number", func(t *testing.T) {
		b, err := json.Marshal(FloatOf(36.67))
		require.NoError(t, err)
		assert.Equal(t, "36.67", string(b))
	})

	t.Run("absent marshals as sentinel", func(t *testing.T) {
		b, err := json.Marshal(Float{})
		require.NoError(t, err)
		assert.Equal(t, `"N/A"`, string(b))
	})

	t.Run("unmarshal number", func(t *testing.T) {
		var f Float
		require.NoError(t, json.Unmarshal([]byte("12.5"), &f))
		assert.Equal(t, FloatOf(12.5), f)
	})

	t.Run("unmarshal sentinel", func(t *testing.T) {
		var f Float
		require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &f))
		assert.False(t, f.Valid)
	})

	t.Run("unmarshal garbage fails", func(t *testing.T) {
		var f Float
		assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &f))
	})
}

func TestFloatString(t *testing.T) {
	assert.Equal(t, "N/A", Float{}.String())
	assert.Equal(t, "10", FloatOf(10).String())
	assert.Equal(t, "36.67", FloatOf(36.67).String())
}

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		ID:        "rec-1",
		RunID:     "run-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Endpoint:  "https://example.com",
		Status:    StatusAPIError,
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	// Field names are the dashboard payload contract.
	assert.Equal(t, "https://example.com", raw["api"])
	assert.Equal(t, "API_ERROR", raw["status"])
	assert.Equal(t, "N/A", raw["value"])
	assert.Equal(t, "N/A", raw["max_value"])
	assert.Equal(t, "N/A", raw["min_value"])
	assert.Equal(t, "N/A", raw["avg_value"])
}
