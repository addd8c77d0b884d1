// Package core provides the domain types shared by the snapshot pipeline:
// civil dates, wall-clock times, and money as integer cents.
package core

import (
	"errors"
	"fmt"
	"time"
)

// Date is a civil date pinned to UTC midnight. The pipeline never works
// with instants finer than a day except through ClockTime.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its civil date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// ISO returns the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// LongDisplay returns a long-form weekday/month/day string, e.g.
// "Monday, January 2".
func (d Date) LongDisplay() string {
	return d.Format("Monday, January 2")
}

// AddDays returns the date shifted by n civil days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// Equal reports whether two dates name the same civil day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// WeekStart returns the Monday of the ISO week containing the date.
// All week arithmetic in the pipeline uses this Monday-start convention.
func (d Date) WeekStart() Date {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started six days earlier
	}
	return d.AddDays(1 - wd)
}
