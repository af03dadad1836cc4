package value_objects_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	d, err := value_objects.ParseDeadline("2026-12-24")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-24", d.String())

	_, err = value_objects.ParseDeadline("24/12/2026")
	assert.ErrorIs(t, err, value_objects.ErrInvalidDeadline)

	none, err := value_objects.ParseOptionalDeadline("")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestNewDeadline_DropsTimeOfDay(t *testing.T) {
	a := value_objects.NewDeadline(time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC))
	b := value_objects.NewDeadline(time.Date(2026, 5, 1, 0, 1, 0, 0, time.UTC))
	assert.True(t, a.Equals(b))
}

func TestDeadline_DaysUntil(t *testing.T) {
	d, _ := value_objects.ParseDeadline("2026-05-10")

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"ten days before", time.Date(2026, 4, 30, 18, 0, 0, 0, time.UTC), 10},
		{"same day", time.Date(2026, 5, 10, 23, 0, 0, 0, time.UTC), 0},
		{"past deadline clamps to zero", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DaysUntil(tt.now))
		})
	}
}

func TestDeadline_DaysUntilFarFuture(t *testing.T) {
	d, err := value_objects.ParseDeadline("9999-12-31")
	require.NoError(t, err)

	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 2912151, d.DaysUntil(now))
}
