package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"time value", want.In(time.FixedZone("CET", 3600)), want},
		{"rfc3339 string", "2026-03-14T09:26:53.589Z", want},
		{"sqlite default string", "2026-03-14 09:26:53.589+00:00", want},
		{"bytes", []byte("2026-03-14T09:26:53.589Z"), want},
		{"date only", "2026-03-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTime_Errors(t *testing.T) {
	_, err := ParseTime(nil)
	assert.Error(t, err)

	_, err = ParseTime(42)
	assert.Error(t, err)

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestParseNullableTime(t *testing.T) {
	got, err := ParseNullableTime(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseNullableTime("2026-03-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 14, got.Day())
}
