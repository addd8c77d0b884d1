package snapshot

import (
	"context"

	"dayboard/internal/core"
)

// Ports for the primary record store, consumer side.
type (
	// RecordReader is the read surface of the primary store the
	// aggregator depends on.
	RecordReader interface {
		CompletionsForDateRange(ctx context.Context, from, to core.Date) ([]core.HabitCompletion, error)
		ExpensesForDate(ctx context.Context, date core.Date) ([]core.Expense, error)
		TimeBlocksForDate(ctx context.Context, date core.Date) ([]core.TimeBlock, error)
	}

	// HabitSource yields the habit records for the week containing now,
	// performing week rollover when needed.
	HabitSource interface {
		CurrentWeekHabits(ctx context.Context, today core.Date) ([]core.HabitRecord, error)
	}
)
