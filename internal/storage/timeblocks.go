package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"dayboard/internal/core"
)

// CreateTimeBlock inserts a time block and returns it with its assigned id.
// Start and end are stored in canonical HH:MM form.
func (r *SQLiteRepository) CreateTimeBlock(ctx context.Context, b core.TimeBlock) (core.TimeBlock, error) {
	if err := b.Validate(); err != nil {
		return core.TimeBlock{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO time_blocks (title, start_time, end_time, date)
		 VALUES (?, ?, ?, ?)`,
		b.Title, b.Start.String(), b.End.String(), b.Date.ISO())
	if err != nil {
		return core.TimeBlock{}, fmt.Errorf("create time block: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.TimeBlock{}, fmt.Errorf("time block insert id: %w", err)
	}
	b.ID = id

	slog.InfoContext(ctx, "Time block saved",
		"id", b.ID,
		"title", b.Title,
		"date", b.Date.ISO(),
		"start", b.Start.String())

	return b, nil
}

// UpdateTimeBlock replaces the stored title, times and date of a block.
func (r *SQLiteRepository) UpdateTimeBlock(ctx context.Context, b core.TimeBlock) error {
	if err := b.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE time_blocks SET title = ?, start_time = ?, end_time = ?, date = ? WHERE id = ?`,
		b.Title, b.Start.String(), b.End.String(), b.Date.ISO(), b.ID)
	if err != nil {
		return fmt.Errorf("update time block %d: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTimeBlock removes a time block by id.
func (r *SQLiteRepository) DeleteTimeBlock(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete time block %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TimeBlocksForDate returns the blocks scheduled on a civil date ordered by
// start time. Stored times carrying a legacy seconds suffix are truncated
// to minute precision while scanning.
func (r *SQLiteRepository) TimeBlocksForDate(ctx context.Context, date core.Date) ([]core.TimeBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, start_time, end_time, date FROM time_blocks
		 WHERE date = ? ORDER BY start_time, id`,
		date.ISO())
	if err != nil {
		return nil, fmt.Errorf("query time blocks for %s: %w", date.ISO(), err)
	}
	defer rows.Close()

	var blocks []core.TimeBlock
	for rows.Next() {
		var b core.TimeBlock
		var startStr, endStr, dateStr string
		if err := rows.Scan(&b.ID, &b.Title, &startStr, &endStr, &dateStr); err != nil {
			return nil, fmt.Errorf("scan time block: %w", err)
		}
		if b.Start, err = core.ParseClockTime(startStr); err != nil {
			return nil, fmt.Errorf("scan time block start: %w", err)
		}
		if b.End, err = core.ParseClockTime(endStr); err != nil {
			return nil, fmt.Errorf("scan time block end: %w", err)
		}
		if b.Date, err = core.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("scan time block date: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
