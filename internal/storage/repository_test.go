package storage

import (
	"context"
	"path/filepath"
	"testing"

	"dayboard/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestHabitsForWeek_Order(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	week := core.NewDate(2026, 8, 24)

	names := []string{"Read", "Run", "Meditate"}
	for _, name := range names {
		if _, err := repo.CreateHabit(ctx, core.HabitRecord{Name: name, Color: "red", WeekStart: week}); err != nil {
			t.Fatalf("CreateHabit(%s): %v", name, err)
		}
	}

	habits, err := repo.HabitsForWeek(ctx, week)
	if err != nil {
		t.Fatalf("HabitsForWeek: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("got %d habits, want 3", len(habits))
	}
	for i, name := range names {
		if habits[i].Name != name {
			t.Errorf("habit %d = %s, want %s (stored order must be preserved)", i, habits[i].Name, name)
		}
	}

	// Different week is isolated.
	other, err := repo.HabitsForWeek(ctx, week.AddDays(7))
	if err != nil {
		t.Fatalf("HabitsForWeek(next): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("next week should be empty, got %d", len(other))
	}
}

func TestCloneHabitsToWeek(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	prev := core.NewDate(2026, 8, 17)
	cur := core.NewDate(2026, 8, 24)

	seed := []core.HabitRecord{
		{Name: "A", Color: "red", WeekStart: prev},
		{Name: "B", Color: "blue", WeekStart: prev},
		{Name: "C", Color: "green", WeekStart: prev},
	}
	ids := map[string]bool{}
	for _, h := range seed {
		created, err := repo.CreateHabit(ctx, h)
		if err != nil {
			t.Fatalf("CreateHabit: %v", err)
		}
		ids[created.ID] = true
	}

	clones, err := repo.CloneHabitsToWeek(ctx, prev, cur)
	if err != nil {
		t.Fatalf("CloneHabitsToWeek: %v", err)
	}
	if len(clones) != 3 {
		t.Fatalf("got %d clones, want 3", len(clones))
	}
	for i, c := range clones {
		if c.Name != seed[i].Name || c.Color != seed[i].Color {
			t.Errorf("clone %d = %s/%s, want %s/%s", i, c.Name, c.Color, seed[i].Name, seed[i].Color)
		}
		if ids[c.ID] {
			t.Errorf("clone %d reused source id %s", i, c.ID)
		}
		if !c.WeekStart.Equal(cur) {
			t.Errorf("clone %d week = %s, want %s", i, c.WeekStart.ISO(), cur.ISO())
		}
	}

	// Cloning again is a no-op: the target week is no longer empty.
	again, err := repo.CloneHabitsToWeek(ctx, prev, cur)
	if err != nil {
		t.Fatalf("second CloneHabitsToWeek: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second clone produced %d habits, want 0", len(again))
	}
	habits, err := repo.HabitsForWeek(ctx, cur)
	if err != nil {
		t.Fatalf("HabitsForWeek: %v", err)
	}
	if len(habits) != 3 {
		t.Errorf("current week has %d habits after double clone, want 3", len(habits))
	}
}

func TestCloneHabitsToWeek_EmptySource(t *testing.T) {
	repo := newTestRepo(t)

	clones, err := repo.CloneHabitsToWeek(context.Background(),
		core.NewDate(2026, 8, 17), core.NewDate(2026, 8, 24))
	if err != nil {
		t.Fatalf("CloneHabitsToWeek: %v", err)
	}
	if len(clones) != 0 {
		t.Errorf("empty source produced %d clones, want 0", len(clones))
	}
}

func TestCompletions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	week := core.NewDate(2026, 8, 24)
	today := core.NewDate(2026, 8, 26)

	h, err := repo.CreateHabit(ctx, core.HabitRecord{Name: "Run", WeekStart: week})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	if err := repo.AddCompletion(ctx, core.HabitCompletion{HabitID: h.ID, Date: today}); err != nil {
		t.Fatalf("AddCompletion: %v", err)
	}
	// Duplicates are allowed in storage.
	if err := repo.AddCompletion(ctx, core.HabitCompletion{HabitID: h.ID, Date: today}); err != nil {
		t.Fatalf("duplicate AddCompletion: %v", err)
	}

	got, err := repo.CompletionsForDateRange(ctx, today, today)
	if err != nil {
		t.Fatalf("CompletionsForDateRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d completions, want 2", len(got))
	}

	// Range excludes other days.
	got, err = repo.CompletionsForDateRange(ctx, today.AddDays(1), today.AddDays(1))
	if err != nil {
		t.Fatalf("CompletionsForDateRange: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d completions outside range, want 0", len(got))
	}

	if err := repo.DeleteCompletion(ctx, h.ID, today); err != nil {
		t.Fatalf("DeleteCompletion: %v", err)
	}
	got, err = repo.CompletionsForDateRange(ctx, today, today)
	if err != nil {
		t.Fatalf("CompletionsForDateRange: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d completions after delete, want 0", len(got))
	}
}

func TestExpensesForDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	today := core.NewDate(2026, 8, 30)

	for _, cents := range []int64{450, 999, 301} {
		if _, err := repo.CreateExpense(ctx, core.Expense{
			Amount:     core.Money{Cents: cents},
			CategoryID: "food",
			Date:       today,
		}); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}
	// Different day, must not be counted.
	if _, err := repo.CreateExpense(ctx, core.Expense{
		Amount:     core.Money{Cents: 10000},
		CategoryID: "rent",
		Date:       today.AddDays(-1),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	expenses, err := repo.ExpensesForDate(ctx, today)
	if err != nil {
		t.Fatalf("ExpensesForDate: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("got %d expenses, want 3", len(expenses))
	}
	if total := func() int64 {
		var t int64
		for _, e := range expenses {
			t += e.Amount.Cents
		}
		return t
	}(); total != 1750 {
		t.Errorf("total = %d cents, want 1750", total)
	}
}

func TestTimeBlocks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	today := core.NewDate(2026, 8, 30)

	b, err := repo.CreateTimeBlock(ctx, core.TimeBlock{
		Title: "Standup",
		Start: core.ClockTime{Hour: 9, Minute: 0},
		End:   core.ClockTime{Hour: 10, Minute: 0},
		Date:  today,
	})
	if err != nil {
		t.Fatalf("CreateTimeBlock: %v", err)
	}

	b.Title = "Standup (moved)"
	b.Start = core.ClockTime{Hour: 9, Minute: 30}
	if err := repo.UpdateTimeBlock(ctx, b); err != nil {
		t.Fatalf("UpdateTimeBlock: %v", err)
	}

	blocks, err := repo.TimeBlocksForDate(ctx, today)
	if err != nil {
		t.Fatalf("TimeBlocksForDate: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Title != "Standup (moved)" || blocks[0].Start.String() != "09:30" {
		t.Errorf("block = %q %s, want %q 09:30", blocks[0].Title, blocks[0].Start.String(), "Standup (moved)")
	}

	if err := repo.DeleteTimeBlock(ctx, b.ID); err != nil {
		t.Fatalf("DeleteTimeBlock: %v", err)
	}
	blocks, err = repo.TimeBlocksForDate(ctx, today)
	if err != nil {
		t.Fatalf("TimeBlocksForDate: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks after delete, want 0", len(blocks))
	}
}

func TestTimeBlocksForDate_LegacySecondsSuffix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Rows written by older app versions carry HH:MM:SS times.
	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO time_blocks (title, start_time, end_time, date) VALUES (?, ?, ?, ?)`,
		"Legacy", "09:00:00", "10:00", "2026-08-30"); err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	blocks, err := repo.TimeBlocksForDate(ctx, core.NewDate(2026, 8, 30))
	if err != nil {
		t.Fatalf("TimeBlocksForDate: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if got := blocks[0].Start.String(); got != "09:00" {
		t.Errorf("start = %q, want 09:00 (seconds truncated)", got)
	}
}
