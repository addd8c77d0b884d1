package snapshot

import (
	"context"
	"log/slog"
	"time"

	"dayboard/internal/core"
)

type (
	// HabitSummary lists today's still-unfinished habits in stored order.
	HabitSummary struct {
		Unfinished []core.HabitRecord
	}

	// FinanceSummary is today's expense count and cent-exact total.
	FinanceSummary struct {
		ExpenseCount int
		Total        core.Money
	}

	// PlannerSummary is today's schedule.
	PlannerSummary struct {
		Date   core.Date
		Blocks []core.TimeBlock
	}
)

// Aggregator turns raw records into the per-widget summaries. A read
// failure degrades the affected summary to its zero value and is logged;
// it never propagates, so one failing summary cannot starve the others.
type Aggregator struct {
	records RecordReader
	habits  HabitSource
}

func NewAggregator(records RecordReader, habits HabitSource) *Aggregator {
	return &Aggregator{records: records, habits: habits}
}

// UnfinishedHabits returns the current week's habits that have no
// completion dated today. Empty input yields an empty summary.
func (a *Aggregator) UnfinishedHabits(ctx context.Context, now time.Time) HabitSummary {
	today := core.DateOf(now)

	habits, err := a.habits.CurrentWeekHabits(ctx, today)
	if err != nil {
		slog.WarnContext(ctx, "Habit summary degraded to empty",
			"error", err, "date", today.ISO())
		return HabitSummary{}
	}

	completions, err := a.records.CompletionsForDateRange(ctx, today, today)
	if err != nil {
		slog.WarnContext(ctx, "Completion read failed, treating all habits as unfinished",
			"error", err, "date", today.ISO())
		completions = nil
	}

	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.HabitID] = true
	}

	var unfinished []core.HabitRecord
	for _, h := range habits {
		if !done[h.ID] {
			unfinished = append(unfinished, h)
		}
	}
	return HabitSummary{Unfinished: unfinished}
}

// TodaySpending returns the count and cent-rounded sum of today's expenses.
func (a *Aggregator) TodaySpending(ctx context.Context, now time.Time) FinanceSummary {
	today := core.DateOf(now)

	expenses, err := a.records.ExpensesForDate(ctx, today)
	if err != nil {
		slog.WarnContext(ctx, "Finance summary degraded to zero",
			"error", err, "date", today.ISO())
		return FinanceSummary{}
	}

	amounts := make([]core.Money, 0, len(expenses))
	for _, e := range expenses {
		amounts = append(amounts, e.Amount)
	}
	return FinanceSummary{
		ExpenseCount: len(expenses),
		Total:        core.SumAmounts(amounts),
	}
}

// TodaySchedule returns today's time blocks in stored (start time) order.
func (a *Aggregator) TodaySchedule(ctx context.Context, now time.Time) PlannerSummary {
	today := core.DateOf(now)

	blocks, err := a.records.TimeBlocksForDate(ctx, today)
	if err != nil {
		slog.WarnContext(ctx, "Planner summary degraded to empty",
			"error", err, "date", today.ISO())
		return PlannerSummary{Date: today}
	}
	return PlannerSummary{Date: today, Blocks: blocks}
}
