package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// Priority represents task urgency. The zero value is PriorityLow; tasks are
// created with DefaultPriority instead.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// DefaultPriority applies when none is given.
const DefaultPriority = PriorityMedium

var ErrInvalidPriority = errors.New("invalid priority value")

var priorityNames = [...]string{
	PriorityLow:    "LOW",
	PriorityMedium: "MEDIUM",
	PriorityHigh:   "HIGH",
}

// AllPriorities lists every priority in ordinal order, for form dropdowns.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority accepts a priority name in any case. An empty string yields
// DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}
	for p, name := range priorityNames {
		if strings.EqualFold(name, s) {
			return Priority(p), nil
		}
	}
	return DefaultPriority, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// PriorityFromOrdinal converts 0..2 into a priority.
func PriorityFromOrdinal(n int) (Priority, error) {
	p := Priority(n)
	if !p.IsValid() {
		return DefaultPriority, fmt.Errorf("%w: ordinal %d", ErrInvalidPriority, n)
	}
	return p, nil
}

// String returns the stored name, e.g. "HIGH".
func (p Priority) String() string {
	if !p.IsValid() {
		return "UNKNOWN"
	}
	return priorityNames[p]
}

// Label is the display form, e.g. "High".
func (p Priority) Label() string {
	s := p.String()
	return s[:1] + strings.ToLower(s[1:])
}

// Ordinal returns 0 for LOW through 2 for HIGH.
func (p Priority) Ordinal() int {
	return int(p)
}

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: ordinal %d", ErrInvalidPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
