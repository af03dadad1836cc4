package database

import (
	"fmt"
	"time"
)

// Layouts SQLite hands back for values written as time.Time, plus plain dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
}

// ParseTime converts a scanned column value into a time. pgx yields time.Time
// while SQLite yields text, so repositories scan timestamps into an any.
func ParseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTimeString(t)
	case []byte:
		return parseTimeString(string(t))
	case nil:
		return time.Time{}, fmt.Errorf("parse time: null value")
	default:
		return time.Time{}, fmt.Errorf("parse time: unsupported type %T", v)
	}
}

// ParseNullableTime is ParseTime for nullable columns.
func ParseNullableTime(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := ParseTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time: unrecognized format %q", s)
}
