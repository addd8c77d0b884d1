package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"dayboard/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the primary record store. The snapshot pipeline only
// reads from it; the CRUD services own all writes except the week-clone
// operation used by the rollover resolver.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// dsn enables WAL and a busy timeout. The API server and the sync worker
// open the same file, so writers have to wait on each other instead of
// failing with SQLITE_BUSY.
func dsn(dbPath string) string {
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// DB exposes the underlying handle so the snapshot fallback store can
// live in the same database file.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// HabitsForWeek returns the habit records stamped with the given week start,
// in stored order.
func (r *SQLiteRepository) HabitsForWeek(ctx context.Context, weekStart core.Date) ([]core.HabitRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, week_start FROM habits
		 WHERE week_start = ? ORDER BY position, created_at, id`,
		weekStart.ISO())
	if err != nil {
		return nil, fmt.Errorf("query habits for week %s: %w", weekStart.ISO(), err)
	}
	defer rows.Close()

	return scanHabits(rows)
}

// CreateHabit inserts a habit record. A missing id is minted here; the
// record is appended after the week's existing habits.
func (r *SQLiteRepository) CreateHabit(ctx context.Context, h core.HabitRecord) (core.HabitRecord, error) {
	if err := h.Validate(); err != nil {
		return core.HabitRecord{}, err
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (id, name, color, week_start, position)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM habits WHERE week_start = ?))`,
		h.ID, h.Name, h.Color, h.WeekStart.ISO(), h.WeekStart.ISO())
	if err != nil {
		return core.HabitRecord{}, fmt.Errorf("create habit: %w", err)
	}

	slog.InfoContext(ctx, "Habit saved",
		"habit_id", h.ID,
		"name", h.Name,
		"week_start", h.WeekStart.ISO())

	return h, nil
}

// DeleteHabit removes a habit together with its completions.
func (r *SQLiteRepository) DeleteHabit(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, id); err != nil {
		return fmt.Errorf("delete habit completions: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// CloneHabitsToWeek copies every habit of sourceWeekStart into
// targetWeekStart with fresh ids and no completions. The copy runs in one
// transaction that re-checks the target week is still empty, so concurrent
// or repeated calls never produce duplicate clones.
func (r *SQLiteRepository) CloneHabitsToWeek(ctx context.Context, sourceWeekStart, targetWeekStart core.Date) ([]core.HabitRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin clone transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM habits WHERE week_start = ?`, targetWeekStart.ISO(),
	).Scan(&existing); err != nil {
		return nil, fmt.Errorf("count target week habits: %w", err)
	}
	if existing > 0 {
		// Someone else already populated the week; nothing to clone.
		return nil, nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, color, week_start FROM habits
		 WHERE week_start = ? ORDER BY position, created_at, id`,
		sourceWeekStart.ISO())
	if err != nil {
		return nil, fmt.Errorf("query source week habits: %w", err)
	}
	source, err := scanHabits(rows)
	if err != nil {
		return nil, err
	}

	clones := make([]core.HabitRecord, 0, len(source))
	for i, h := range source {
		clone := core.HabitRecord{
			ID:        uuid.NewString(),
			Name:      h.Name,
			Color:     h.Color,
			WeekStart: targetWeekStart,
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habits (id, name, color, week_start, position) VALUES (?, ?, ?, ?, ?)`,
			clone.ID, clone.Name, clone.Color, clone.WeekStart.ISO(), i+1); err != nil {
			return nil, fmt.Errorf("insert cloned habit: %w", err)
		}
		clones = append(clones, clone)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit clone transaction: %w", err)
	}

	slog.InfoContext(ctx, "Cloned habits to new week",
		"source_week", sourceWeekStart.ISO(),
		"target_week", targetWeekStart.ISO(),
		"count", len(clones))

	return clones, nil
}

// AddCompletion marks a habit done on a date. Duplicate completions for the
// same habit and date are allowed; readers treat any completion as done.
func (r *SQLiteRepository) AddCompletion(ctx context.Context, c core.HabitCompletion) error {
	if c.HabitID == "" {
		return core.ErrEmptyName
	}
	if err := c.Date.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habit_completions (habit_id, date) VALUES (?, ?)`,
		c.HabitID, c.Date.ISO())
	if err != nil {
		return fmt.Errorf("add completion: %w", err)
	}

	slog.InfoContext(ctx, "Habit completion saved",
		"habit_id", c.HabitID,
		"date", c.Date.ISO())

	return nil
}

// DeleteCompletion removes every completion for the habit on the date.
func (r *SQLiteRepository) DeleteCompletion(ctx context.Context, habitID string, date core.Date) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_completions WHERE habit_id = ? AND date = ?`,
		habitID, date.ISO())
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

// CompletionsForDateRange returns completions with from <= date <= to.
func (r *SQLiteRepository) CompletionsForDateRange(ctx context.Context, from, to core.Date) ([]core.HabitCompletion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT habit_id, date FROM habit_completions
		 WHERE date >= ? AND date <= ? ORDER BY date, id`,
		from.ISO(), to.ISO())
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var completions []core.HabitCompletion
	for rows.Next() {
		var habitID, dateStr string
		if err := rows.Scan(&habitID, &dateStr); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("scan completion date: %w", err)
		}
		completions = append(completions, core.HabitCompletion{HabitID: habitID, Date: date})
	}
	return completions, rows.Err()
}

func scanHabits(rows *sql.Rows) ([]core.HabitRecord, error) {
	defer rows.Close()

	var habits []core.HabitRecord
	for rows.Next() {
		var h core.HabitRecord
		var weekStart string
		if err := rows.Scan(&h.ID, &h.Name, &h.Color, &weekStart); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		ws, err := core.ParseDate(weekStart)
		if err != nil {
			return nil, fmt.Errorf("scan habit week start: %w", err)
		}
		h.WeekStart = ws
		habits = append(habits, h)
	}
	return habits, rows.Err()
}
