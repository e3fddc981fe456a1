package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []float64
	}{
		{
			name: "nested objects in sorted key order",
			in: map[string]any{
				"a": 10.0,
				"b": map[string]any{"c": 20.0, "d": 80.0},
			},
			want: []float64{10, 20, 80},
		},
		{
			name: "array order preserved",
			in:   []any{3.0, []any{2.0, 1.0}, 4.0},
			want: []float64{3, 2, 1, 4},
		},
		{
			name: "booleans are not numbers",
			in:   map[string]any{"a": true, "b": false, "c": 1.5},
			want: []float64{1.5},
		},
		{
			name: "strings and nulls ignored",
			in:   map[string]any{"x": "no numbers here", "y": nil},
			want: nil,
		},
		{
			name: "scalar number",
			in:   42.0,
			want: []float64{42},
		},
		{
			name: "scalar string",
			in:   "42",
			want: nil,
		},
		{
			name: "integers and json.Number",
			in:   []any{1, int64(2), json.Number("3.5"), float32(4)},
			want: []float64{1, 2, 3.5, 4},
		},
		{
			name: "invalid json.Number ignored",
			in:   []any{json.Number("not-a-number"), 7.0},
			want: []float64{7},
		},
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
		{
			name: "deeply nested mix",
			in: map[string]any{
				"b": []any{map[string]any{"z": 5.0}, "skip", 6.0},
				"a": map[string]any{"inner": []any{1.0, true}},
			},
			want: []float64{1, 5, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Numbers(tt.in))
		})
	}
}

func TestNumbersDecodedDocument(t *testing.T) {
	var doc any
	err := json.Unmarshal([]byte(`{"a": 10, "b": {"c": 20, "d": 80}}`), &doc)
	assert.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 80}, Numbers(doc))
}
