package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"dayboard/internal/core"
	"dayboard/internal/rollover"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
)

type recordingNotifier struct {
	mu      sync.Mutex
	reasons []string
	kinds   []snapshot.Kind
}

func (n *recordingNotifier) WidgetChanged(_ context.Context, kind snapshot.Kind, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
	n.reasons = append(n.reasons, reason)
}

func (n *recordingNotifier) last() (snapshot.Kind, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.kinds) == 0 {
		return "", ""
	}
	return n.kinds[len(n.kinds)-1], n.reasons[len(n.reasons)-1]
}

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

var wednesday = time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

func TestHabitService_CreateAndComplete(t *testing.T) {
	repo := newTestStorage(t)
	notifier := &recordingNotifier{}
	svc := NewHabitService(repo, rollover.NewResolver(repo), notifier)
	ctx := context.Background()

	habit, err := svc.CreateHabit(ctx, "Run", "red", wednesday)
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if !habit.WeekStart.Equal(core.NewDate(2026, 8, 24)) {
		t.Errorf("week start = %s, want the Monday 2026-08-24", habit.WeekStart.ISO())
	}
	if kind, reason := notifier.last(); kind != snapshot.KindHabit || reason != "habit_created" {
		t.Errorf("notification = %s/%s", kind, reason)
	}

	if err := svc.CompleteHabit(ctx, habit.ID, core.DateOf(wednesday)); err != nil {
		t.Fatalf("CompleteHabit: %v", err)
	}
	if _, reason := notifier.last(); reason != "completion_created" {
		t.Errorf("reason = %s, want completion_created", reason)
	}

	habits, err := svc.CurrentWeekHabits(ctx, wednesday)
	if err != nil {
		t.Fatalf("CurrentWeekHabits: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("got %d habits, want 1", len(habits))
	}
}

func TestHabitService_CurrentWeekRunsRollover(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewHabitService(repo, rollover.NewResolver(repo), nil)
	ctx := context.Background()

	// Seed last week only.
	lastWeek := wednesday.AddDate(0, 0, -7)
	if _, err := svc.CreateHabit(ctx, "Read", "blue", lastWeek); err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	habits, err := svc.CurrentWeekHabits(ctx, wednesday)
	if err != nil {
		t.Fatalf("CurrentWeekHabits: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("rollover result = %+v, want one cloned habit", habits)
	}
	if !habits[0].WeekStart.Equal(core.NewDate(2026, 8, 24)) {
		t.Errorf("cloned week start = %s", habits[0].WeekStart.ISO())
	}
}

func TestExpenseService_MutationsNotify(t *testing.T) {
	repo := newTestStorage(t)
	notifier := &recordingNotifier{}
	svc := NewExpenseService(repo, notifier)
	ctx := context.Background()

	e, err := svc.CreateExpense(ctx, core.Expense{
		Amount:     core.Money{Cents: 999},
		CategoryID: "food",
		Date:       core.DateOf(wednesday),
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if kind, _ := notifier.last(); kind != snapshot.KindFinance {
		t.Errorf("notification kind = %s, want finance", kind)
	}

	if err := svc.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, reason := notifier.last(); reason != "expense_deleted" {
		t.Errorf("reason = %s", reason)
	}
}

func TestPlannerService_MutationsNotify(t *testing.T) {
	repo := newTestStorage(t)
	notifier := &recordingNotifier{}
	svc := NewPlannerService(repo, notifier)
	ctx := context.Background()

	b, err := svc.CreateTimeBlock(ctx, core.TimeBlock{
		Title: "Standup",
		Start: core.ClockTime{Hour: 9},
		End:   core.ClockTime{Hour: 10},
		Date:  core.DateOf(wednesday),
	})
	if err != nil {
		t.Fatalf("CreateTimeBlock: %v", err)
	}
	if kind, reason := notifier.last(); kind != snapshot.KindPlanner || reason != "time_block_created" {
		t.Errorf("notification = %s/%s", kind, reason)
	}

	b.Title = "Standup (late)"
	if err := svc.UpdateTimeBlock(ctx, b); err != nil {
		t.Fatalf("UpdateTimeBlock: %v", err)
	}
	if err := svc.DeleteTimeBlock(ctx, b.ID); err != nil {
		t.Fatalf("DeleteTimeBlock: %v", err)
	}
	if _, reason := notifier.last(); reason != "time_block_deleted" {
		t.Errorf("reason = %s", reason)
	}
}

func TestMutationSucceedsWithNilNotifier(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewExpenseService(repo, nil)

	if _, err := svc.CreateExpense(context.Background(), core.Expense{
		Amount:     core.Money{Cents: 100},
		CategoryID: "misc",
		Date:       core.DateOf(wednesday),
	}); err != nil {
		t.Fatalf("CreateExpense with nil notifier: %v", err)
	}
}
