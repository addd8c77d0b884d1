// Package services orchestrates CRUD mutations against the primary store
// and notifies the snapshot pipeline after each one. A pipeline failure
// is never surfaced to the caller: the mutation stands on its own.
package services

import (
	"context"
	"fmt"
	"time"

	"dayboard/internal/core"
	"dayboard/internal/rollover"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
)

// HabitService owns habit and completion mutations.
type HabitService struct {
	storage  *storage.SQLiteRepository
	resolver *rollover.Resolver
	notifier WidgetNotifier
}

func NewHabitService(storage *storage.SQLiteRepository, resolver *rollover.Resolver, notifier WidgetNotifier) *HabitService {
	return &HabitService{storage: storage, resolver: resolver, notifier: notifier}
}

// CurrentWeekHabits lists the habits for the week containing now,
// running rollover if the week is still empty.
func (s *HabitService) CurrentWeekHabits(ctx context.Context, now time.Time) ([]core.HabitRecord, error) {
	return s.resolver.CurrentWeekHabits(ctx, core.DateOf(now))
}

// CreateHabit adds a habit to the current week and refreshes the habit
// widget.
func (s *HabitService) CreateHabit(ctx context.Context, name, color string, now time.Time) (core.HabitRecord, error) {
	habit, err := s.storage.CreateHabit(ctx, core.HabitRecord{
		Name:      name,
		Color:     color,
		WeekStart: core.DateOf(now).WeekStart(),
	})
	if err != nil {
		return core.HabitRecord{}, fmt.Errorf("create habit: %w", err)
	}

	s.notify(ctx, "habit_created")
	return habit, nil
}

// DeleteHabit removes a habit and its completions.
func (s *HabitService) DeleteHabit(ctx context.Context, id string) error {
	if err := s.storage.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	s.notify(ctx, "habit_deleted")
	return nil
}

// CompleteHabit marks a habit done on a date.
func (s *HabitService) CompleteHabit(ctx context.Context, habitID string, date core.Date) error {
	if err := s.storage.AddCompletion(ctx, core.HabitCompletion{HabitID: habitID, Date: date}); err != nil {
		return fmt.Errorf("complete habit: %w", err)
	}

	s.notify(ctx, "completion_created")
	return nil
}

// UncompleteHabit removes a habit's completions on a date.
func (s *HabitService) UncompleteHabit(ctx context.Context, habitID string, date core.Date) error {
	if err := s.storage.DeleteCompletion(ctx, habitID, date); err != nil {
		return fmt.Errorf("uncomplete habit: %w", err)
	}

	s.notify(ctx, "completion_deleted")
	return nil
}

func (s *HabitService) notify(ctx context.Context, reason string) {
	if s.notifier != nil {
		s.notifier.WidgetChanged(ctx, snapshot.KindHabit, reason)
	}
}
