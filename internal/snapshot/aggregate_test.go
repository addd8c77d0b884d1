package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"dayboard/internal/core"
)

type fakeRecords struct {
	completions []core.HabitCompletion
	expenses    []core.Expense
	blocks      []core.TimeBlock

	failCompletions bool
	failExpenses    bool
	failBlocks      bool
}

func (f *fakeRecords) CompletionsForDateRange(context.Context, core.Date, core.Date) ([]core.HabitCompletion, error) {
	if f.failCompletions {
		return nil, errors.New("store unavailable")
	}
	return f.completions, nil
}

func (f *fakeRecords) ExpensesForDate(context.Context, core.Date) ([]core.Expense, error) {
	if f.failExpenses {
		return nil, errors.New("store unavailable")
	}
	return f.expenses, nil
}

func (f *fakeRecords) TimeBlocksForDate(context.Context, core.Date) ([]core.TimeBlock, error) {
	if f.failBlocks {
		return nil, errors.New("store unavailable")
	}
	return f.blocks, nil
}

type fakeHabits struct {
	habits []core.HabitRecord
	fail   bool
}

func (f *fakeHabits) CurrentWeekHabits(context.Context, core.Date) ([]core.HabitRecord, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return f.habits, nil
}

var testNow = time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

func TestUnfinishedHabits(t *testing.T) {
	week := core.NewDate(2026, 8, 24)
	habits := &fakeHabits{habits: []core.HabitRecord{
		{ID: "a", Name: "Read", WeekStart: week},
		{ID: "b", Name: "Run", WeekStart: week},
		{ID: "c", Name: "Meditate", WeekStart: week},
	}}
	records := &fakeRecords{completions: []core.HabitCompletion{
		{HabitID: "b", Date: core.NewDate(2026, 8, 26)},
		{HabitID: "b", Date: core.NewDate(2026, 8, 26)}, // duplicate still counts once
	}}

	agg := NewAggregator(records, habits)
	summary := agg.UnfinishedHabits(context.Background(), testNow)

	if len(summary.Unfinished) != 2 {
		t.Fatalf("got %d unfinished, want 2", len(summary.Unfinished))
	}
	// Stored order preserved.
	if summary.Unfinished[0].ID != "a" || summary.Unfinished[1].ID != "c" {
		t.Errorf("unfinished order = %s,%s, want a,c",
			summary.Unfinished[0].ID, summary.Unfinished[1].ID)
	}
}

func TestUnfinishedHabits_EmptyInput(t *testing.T) {
	agg := NewAggregator(&fakeRecords{}, &fakeHabits{})
	summary := agg.UnfinishedHabits(context.Background(), testNow)
	if len(summary.Unfinished) != 0 {
		t.Errorf("empty input should yield empty summary, got %d", len(summary.Unfinished))
	}
}

func TestUnfinishedHabits_HabitReadFailureDegrades(t *testing.T) {
	agg := NewAggregator(&fakeRecords{}, &fakeHabits{fail: true})
	summary := agg.UnfinishedHabits(context.Background(), testNow)
	if len(summary.Unfinished) != 0 {
		t.Errorf("failing habit source must degrade to empty, got %d", len(summary.Unfinished))
	}
}

func TestUnfinishedHabits_CompletionFailureKeepsHabits(t *testing.T) {
	habits := &fakeHabits{habits: []core.HabitRecord{{ID: "a", Name: "Read"}}}
	agg := NewAggregator(&fakeRecords{failCompletions: true}, habits)
	summary := agg.UnfinishedHabits(context.Background(), testNow)
	if len(summary.Unfinished) != 1 {
		t.Errorf("completion failure should leave all habits unfinished, got %d", len(summary.Unfinished))
	}
}

func TestTodaySpending(t *testing.T) {
	records := &fakeRecords{expenses: []core.Expense{
		{Amount: core.Money{Cents: 450}},
		{Amount: core.Money{Cents: 999}},
		{Amount: core.Money{Cents: 301}},
	}}
	agg := NewAggregator(records, &fakeHabits{})
	summary := agg.TodaySpending(context.Background(), testNow)
	if summary.ExpenseCount != 3 {
		t.Errorf("count = %d, want 3", summary.ExpenseCount)
	}
	if summary.Total.Cents != 1750 {
		t.Errorf("total = %d cents, want 1750", summary.Total.Cents)
	}
}

func TestTodaySpending_FailureDegradesOthersUnaffected(t *testing.T) {
	records := &fakeRecords{
		failExpenses: true,
		blocks:       []core.TimeBlock{{ID: 1, Title: "Standup", Start: core.ClockTime{Hour: 9}, End: core.ClockTime{Hour: 10}}},
	}
	agg := NewAggregator(records, &fakeHabits{})

	finance := agg.TodaySpending(context.Background(), testNow)
	if finance.ExpenseCount != 0 || finance.Total.Cents != 0 {
		t.Errorf("failing expense read must yield zero summary, got %+v", finance)
	}

	// The planner summary still computes.
	planner := agg.TodaySchedule(context.Background(), testNow)
	if len(planner.Blocks) != 1 {
		t.Errorf("planner summary affected by finance failure: got %d blocks", len(planner.Blocks))
	}
}

func TestTodaySchedule(t *testing.T) {
	records := &fakeRecords{blocks: []core.TimeBlock{
		{ID: 1, Title: "Standup", Start: core.ClockTime{Hour: 9}, End: core.ClockTime{Hour: 10}},
	}}
	agg := NewAggregator(records, &fakeHabits{})
	summary := agg.TodaySchedule(context.Background(), testNow)
	if !summary.Date.Equal(core.NewDate(2026, 8, 26)) {
		t.Errorf("date = %s, want 2026-08-26", summary.Date.ISO())
	}
	if len(summary.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(summary.Blocks))
	}
}
