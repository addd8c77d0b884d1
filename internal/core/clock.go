package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" or "HH:MM:SS". A seconds component is
// truncated, never rounded: widgets display minute precision only.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, ErrInvalidTime)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, ErrInvalidTime)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, ErrInvalidTime)
	}
	ct := ClockTime{Hour: h, Minute: m}
	if !ct.IsValid() {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, ErrInvalidTime)
	}
	return ct, nil
}

func (c ClockTime) IsValid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// String returns the canonical 24-hour form, always exactly 5 characters.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Display12Hour returns the 12-hour display form: "9:05 AM", "12:00 PM".
// Hour 0 maps to 12 AM, hour 12 stays 12 PM; minutes are kept verbatim.
func (c ClockTime) Display12Hour() string {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}
