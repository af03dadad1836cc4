package value_objects_test

import (
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected value_objects.Priority
		wantErr  bool
	}{
		{"low", "LOW", value_objects.PriorityLow, false},
		{"medium", "MEDIUM", value_objects.PriorityMedium, false},
		{"high", "HIGH", value_objects.PriorityHigh, false},
		{"case insensitive", "high", value_objects.PriorityHigh, false},
		{"empty defaults to medium", "", value_objects.PriorityMedium, false},
		{"urgent is not a priority", "URGENT", value_objects.PriorityMedium, true},
		{"invalid", "invalid", value_objects.PriorityMedium, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := value_objects.ParsePriority(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPriorityFromOrdinal(t *testing.T) {
	for i, want := range value_objects.AllPriorities() {
		p, err := value_objects.PriorityFromOrdinal(i)
		require.NoError(t, err)
		assert.Equal(t, want, p)
		assert.Equal(t, i, p.Ordinal())
	}

	for _, n := range []int{-1, 3, 99} {
		_, err := value_objects.PriorityFromOrdinal(n)
		assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "LOW", value_objects.PriorityLow.String())
	assert.Equal(t, "Medium", value_objects.PriorityMedium.Label())
	assert.Equal(t, "UNKNOWN", value_objects.Priority(7).String())
	assert.Equal(t, value_objects.PriorityMedium, value_objects.DefaultPriority)
}

func TestPriority_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		P value_objects.Priority `json:"priority"`
	}{value_objects.PriorityHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"priority":"HIGH"}`, string(payload))

	var decoded struct {
		P value_objects.Priority `json:"priority"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"priority":"low"}`), &decoded))
	assert.Equal(t, value_objects.PriorityLow, decoded.P)

	assert.Error(t, json.Unmarshal([]byte(`{"priority":"NOPE"}`), &decoded))

	_, err = json.Marshal(value_objects.Priority(9))
	assert.Error(t, err)
}
