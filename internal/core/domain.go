package core

import (
	"errors"
	"strings"
)

type (
	// HabitRecord is a trackable habit scoped to a single week.
	// WeekStart is always the Monday of the week the record belongs to.
	HabitRecord struct {
		ID        string
		Name      string
		Color     string
		WeekStart Date
	}

	// HabitCompletion marks a habit as done on a given date. Storage may
	// hold several completions for the same habit and date; any completion
	// on a date counts as done.
	HabitCompletion struct {
		HabitID string
		Date    Date
	}

	Expense struct {
		ID          int64
		Amount      Money
		CategoryID  string
		Date        Date
		Description string
	}

	TimeBlock struct {
		ID    int64
		Title string
		Start ClockTime
		End   ClockTime
		Date  Date
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidTime   = errors.New("invalid time")
)

func (h HabitRecord) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if len(h.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return h.WeekStart.Validate()
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (b TimeBlock) Validate() error {
	if err := b.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if len(b.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if !b.Start.IsValid() || !b.End.IsValid() {
		return ErrInvalidTime
	}
	return nil
}
