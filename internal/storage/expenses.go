package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"dayboard/internal/core"
)

// CreateExpense inserts an expense and returns it with its assigned id.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, category_id, date, description)
		 VALUES (?, ?, ?, ?)`,
		e.Amount.Cents, e.CategoryID, e.Date.ISO(), e.Description)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense insert id: %w", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"category", e.CategoryID,
		"date", e.Date.ISO())

	return e, nil
}

// DeleteExpense removes an expense by id.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExpensesForDate returns the expenses recorded on a civil date, in
// insertion order.
func (r *SQLiteRepository) ExpensesForDate(ctx context.Context, date core.Date) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, category_id, date, description FROM expenses
		 WHERE date = ? ORDER BY id`,
		date.ISO())
	if err != nil {
		return nil, fmt.Errorf("query expenses for %s: %w", date.ISO(), err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var dateStr string
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.CategoryID, &dateStr, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("scan expense date: %w", err)
		}
		e.Date = d
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
