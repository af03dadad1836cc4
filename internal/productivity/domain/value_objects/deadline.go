package value_objects

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDeadline = errors.New("invalid deadline")

// DateLayout is the wire and form format of a deadline.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Deadline is a calendar date with no time of day.
type Deadline struct {
	date time.Time
}

// NewDeadline truncates t to its calendar date.
func NewDeadline(t time.Time) Deadline {
	y, m, d := t.Date()
	return Deadline{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDeadline parses "YYYY-MM-DD".
func ParseDeadline(s string) (Deadline, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Deadline{}, fmt.Errorf("%w %q: %w", ErrInvalidDeadline, s, err)
	}
	return NewDeadline(t), nil
}

// ParseOptionalDeadline returns nil for an empty string.
func ParseOptionalDeadline(s string) (*Deadline, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDeadline(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Time returns midnight UTC of the deadline date.
func (d Deadline) Time() time.Time {
	return d.date
}

func (d Deadline) String() string {
	return d.date.Format(DateLayout)
}

// Equals compares calendar dates.
func (d Deadline) Equals(other Deadline) bool {
	return d.date.Equal(other.date)
}

// DaysUntil counts whole days from now's calendar date to the deadline.
// A deadline in the past yields 0, never a negative number.
func (d Deadline) DaysUntil(now time.Time) int {
	today := NewDeadline(now).date
	// Both are UTC midnights, so the difference is a whole number of days.
	// Unix seconds avoid time.Duration's ~292 year range.
	days := int((d.date.Unix() - today.Unix()) / secondsPerDay)
	if days < 0 {
		return 0
	}
	return days
}
