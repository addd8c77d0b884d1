// Package rollover keeps a non-empty habit set for the current week by
// cloning the previous week's habits when a new week begins.
package rollover

import (
	"context"
	"fmt"
	"log/slog"

	"dayboard/internal/core"
)

// Store is the slice of the primary store the resolver needs.
type Store interface {
	HabitsForWeek(ctx context.Context, weekStart core.Date) ([]core.HabitRecord, error)
	CloneHabitsToWeek(ctx context.Context, sourceWeekStart, targetWeekStart core.Date) ([]core.HabitRecord, error)
}

// Resolver guarantees the current ISO week (Monday start) has habit
// records whenever the previous week had any. The clone fires only when
// the current week is empty at call time, so repeated invocations within
// a week never duplicate records.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// CurrentWeekHabits returns the habit set for the week containing today,
// cloning the previous week's set first if the current week is empty.
// An empty result is valid: it means the previous week was empty too.
func (r *Resolver) CurrentWeekHabits(ctx context.Context, today core.Date) ([]core.HabitRecord, error) {
	weekStart := today.WeekStart()

	habits, err := r.store.HabitsForWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("query current week habits: %w", err)
	}
	if len(habits) > 0 {
		return habits, nil
	}

	previousWeekStart := weekStart.AddDays(-7)
	if _, err := r.store.CloneHabitsToWeek(ctx, previousWeekStart, weekStart); err != nil {
		return nil, fmt.Errorf("clone habits from %s: %w", previousWeekStart.ISO(), err)
	}

	slog.InfoContext(ctx, "Week rollover resolved",
		"week_start", weekStart.ISO(),
		"previous_week", previousWeekStart.ISO())

	// Re-query rather than trusting the clone result: a concurrent caller
	// may have populated the week first.
	habits, err = r.store.HabitsForWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("re-query current week habits: %w", err)
	}
	return habits, nil
}
